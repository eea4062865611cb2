package op

import "github.com/sebffischer/gotensor/platform"

// Handle is an opaque reference to backend-owned device memory. A Backend is
// the only thing that may interpret it; the dispatcher and tensor facade
// only ever pass it back to the same Backend that issued it.
type Handle interface{}

// Backend is the collaborator that owns device memory and executes
// Descriptors, returning new Handles. The numeric kernel itself (the code
// that actually multiplies numbers) lives entirely behind this interface;
// no implementation of the arithmetic is specified here, see backend/cpu for
// the one reference implementation this module ships.
type Backend interface {
	// ID identifies this backend; two tensors interact only if their
	// handles were issued by backends with equal ID.
	ID() string
	// Platform reports the execution platform this backend runs on.
	Platform() platform.Platform

	// Allocate reserves device memory for n bytes, uninitialized.
	Allocate(n int) (Handle, error)
	// Write copies bytes into the memory referenced by h.
	Write(h Handle, data []byte) error
	// Read copies the memory referenced by h back to the host.
	Read(h Handle) ([]byte, error)
	// Dispose releases the memory referenced by h. Idempotent.
	Dispose(h Handle) error

	// Execute runs the operation descriptor against the given input
	// handles (one per d.Inputs entry, same order) and returns the output
	// handle. On failure the returned handle must be nil/invalid; no
	// handle may leak from a failed Execute.
	Execute(d Descriptor, inputs []Handle) (Handle, error)

	// SupportsNonContiguous reports whether this backend's kernel for tag
	// can consume non-contiguous inputs directly. The Dispatcher coerces
	// inputs to contiguous copies before Execute when this is false.
	SupportsNonContiguous(tag Tag) bool
}
