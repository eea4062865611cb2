// Package external names the collaborators this module deliberately does not
// implement: the einops-style pattern compiler, and the typed-array view
// utilities a host language would wrap around a tensor's raw buffer. Both
// sit outside this tensor engine's own scope, but they are still real
// extension points other code in this tree can depend on -- so they get a
// concrete, named, interface-only contract here rather than being left
// undocumented.
package external

import "github.com/sebffischer/gotensor/axes"

// PatternCompiler resolves an einops-style rearrange/reduce/repeat pattern
// against a set of input axes (possibly with unknown sizes, see the axes
// package) into a concrete output axes.Axes. No implementation lives in this
// module; a caller wanting pattern-based reshaping supplies their own.
type PatternCompiler interface {
	// Compile resolves pattern against the named inputs' axes, returning the
	// output axes once every axis referenced in pattern can be inferred.
	Compile(pattern string, inputs map[string]axes.Axes) (axes.Axes, error)
}

// TypedArrayView wraps a tensor's raw backend buffer in a host-language
// typed-array-like view (e.g. a Float32Array-equivalent), without copying.
// No implementation lives in this module.
type TypedArrayView interface {
	// Len returns the number of elements the view exposes.
	Len() int
	// At returns the element at the given flat (contiguous) index.
	At(i int) any
	// Set assigns the element at the given flat index.
	Set(i int, value any)
}
