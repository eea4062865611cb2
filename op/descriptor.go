package op

import "github.com/sebffischer/gotensor/shape"

// ReduceParams carries the axis list and keep-dims flag for Sum/Mean/Max/Min
// (Softmax/LogSoftmax use SoftmaxParams).
type ReduceParams struct {
	Axes     []int
	KeepDims bool
}

// PermuteParams carries the axis permutation for Permute.
type PermuteParams struct {
	Axes []int
}

// SliceParams carries the per-axis slice specifiers for Slice.
type SliceParams struct {
	Specs                []shape.AxisSpec
	ReturnViewIfPossible bool
}

// ReshapeParams carries the target dims for Reshape/View (View's -1
// wildcard, if any, is still unresolved at this point; shape.View resolves
// it against the input's size).
type ReshapeParams struct {
	Dims []int
}

// SoftmaxParams carries the normalized axis Softmax/LogSoftmax operate along.
type SoftmaxParams struct {
	Axis int
}

// Descriptor is the immutable, tagged record passed to a Backend: the
// operation kind, its already-computed output storage descriptor, its
// input descriptors, and any op-specific params. Descriptors form an
// immutable tree -- no back-references, and a Dispatcher never mutates one
// in place; contiguity coercion builds a new Descriptor with replacement
// inputs instead.
type Descriptor struct {
	Op     Tag
	Output shape.Shape
	Inputs []shape.Shape
	Params any
}

// Clone returns a deep-ish copy (Inputs and Output are cloned; Params is
// copied by reference since op-specific param structs are themselves
// treated as immutable once attached to a Descriptor).
func (d Descriptor) Clone() Descriptor {
	inputs := make([]shape.Shape, len(d.Inputs))
	for i, in := range d.Inputs {
		inputs[i] = in.Clone()
	}
	return Descriptor{
		Op:     d.Op,
		Output: d.Output.Clone(),
		Inputs: inputs,
		Params: d.Params,
	}
}

// WithInputs returns a copy of d with Inputs replaced -- used by the
// dispatcher's contiguity-coercion rewrite, which never edits d in place.
func (d Descriptor) WithInputs(inputs []shape.Shape) Descriptor {
	out := d
	out.Inputs = inputs
	return out
}
