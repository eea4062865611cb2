// Package tensor implements the user-facing facade: a Tensor pairs a
// shape.Shape storage descriptor with the op.Handle that owns its bytes on
// some op.Backend. Most methods assemble an op.Descriptor and call
// op.Dispatcher.Dispatch; the facade touches a backend's memory directly
// only through host round-trips: creation, read-back, AsType, clone,
// move_to, and the copy a Slice or Reshape materializes.
//
// A Tensor follows the Allocated -> Readable/Writable -> Disposed state
// machine: every method below fails with errs.UseAfterDispose once Dispose
// has run. Dispose is idempotent.
package tensor

import (
	"sync/atomic"

	"github.com/sebffischer/gotensor/dtype"
	"github.com/sebffischer/gotensor/errs"
	"github.com/sebffischer/gotensor/op"
	"github.com/sebffischer/gotensor/shape"
)

// Tensor is the value every creation function and operation method returns.
type Tensor struct {
	disp   *op.Dispatcher
	shape  shape.Shape
	handle op.Handle

	disposed *atomic.Bool
}

// Options configures a creation function's backend, target dtype and
// conversion policy. Backend is required. DType left at its zero value
// (dtype.InvalidDType) means "infer" for FromNested and "float32" for
// Zeros/Ones/Identity. A nil Policy means dtype.DefaultPolicy() -- note that
// dtype.StrictPolicy() is itself the zero dtype.Policy value, so Policy must
// be a pointer: a caller explicitly requesting strict conversion must not be
// silently overridden by a looser process-wide default.
type Options struct {
	Backend op.Backend
	DType   dtype.DType
	Policy  *dtype.Policy
}

func (o Options) policy() dtype.Policy {
	if o.Policy != nil {
		return *o.Policy
	}
	return dtype.DefaultPolicy()
}

func (o Options) dtypeOrDefault(fallback dtype.DType) dtype.DType {
	if o.DType.Ok() {
		return o.DType
	}
	return fallback
}

func newTensor(backend op.Backend, s shape.Shape, h op.Handle) Tensor {
	return Tensor{disp: op.NewDispatcher(backend), shape: s, handle: h, disposed: new(atomic.Bool)}
}

// Shape returns a defensive clone of t's storage descriptor.
func (t *Tensor) Shape() shape.Shape { return t.shape.Clone() }

// DType returns t's element dtype.
func (t *Tensor) DType() dtype.DType { return t.shape.DType }

// NumAxes returns t's rank.
func (t *Tensor) NumAxes() int { return t.shape.NumAxes() }

// Size returns t's total element count.
func (t *Tensor) Size() int { return t.shape.Size() }

// IsView reports whether t's descriptor is a view over another tensor's
// buffer (shares bytes; mutation through one is visible through the other).
func (t *Tensor) IsView() bool { return t.shape.IsView }

// Backend returns the op.Backend t's handle belongs to.
func (t *Tensor) Backend() op.Backend { return t.disp.Backend }

func (t *Tensor) checkAlive() error {
	if t.disposed == nil || t.disposed.Load() {
		return errs.UseAfterDisposeErr(nil, "tensor: use of disposed or zero-value tensor")
	}
	return nil
}

// Dispose releases the backend memory t owns. Idempotent. Tensors sharing a
// buffer through a view relationship each hold the same handle; disposing
// one invalidates reads through every tensor still wrapping that handle --
// the reference cpu backend does not reference-count (see §9's "reference-
// counted … backend handles" note, left to the backend implementation), so
// sequencing disposal of a view's producer is the caller's responsibility.
func (t *Tensor) Dispose() error {
	if t.disposed == nil {
		return errs.UseAfterDisposeErr(nil, "tensor: dispose of zero-value tensor")
	}
	if t.disposed.Swap(true) {
		return nil
	}
	if err := t.disp.Backend.Dispose(t.handle); err != nil {
		return errs.BackendErrorErr(nil, "tensor: dispose failed: %s", err)
	}
	return nil
}

// dispatch builds an op.Descriptor from the given pieces and runs it through
// t's Dispatcher, wrapping the resulting handle back up as a Tensor.
func (t *Tensor) dispatch(tag op.Tag, outShape shape.Shape, inputs []shape.Shape, handles []op.Handle, params any) (Tensor, error) {
	d := op.Descriptor{Op: tag, Output: outShape, Inputs: inputs, Params: params}
	h, err := t.disp.Dispatch(d, handles)
	if err != nil {
		return Tensor{}, err
	}
	return newTensor(t.disp.Backend, outShape, h), nil
}

// toFloatDType is the "to-float" helper §4.F's unary/mean promotion rules
// name: everything except Float64 promotes to Float32, Float64 stays put.
func toFloatDType(dt dtype.DType) dtype.DType {
	if dt == dtype.Float64 {
		return dtype.Float64
	}
	return dtype.Float32
}

// sameBackend requires a and b's handles to belong to backends with equal
// ID, per §4.F's "two tensors interact only if on the same backend id" rule.
func sameBackend(a, b *Tensor) error {
	if a.disp.Backend.ID() != b.disp.Backend.ID() {
		return errs.DeviceMismatchErr(
			map[string]any{"a": a.disp.Backend.ID(), "b": b.disp.Backend.ID()},
			"tensor: operands belong to different backends (%s vs %s)", a.disp.Backend.ID(), b.disp.Backend.ID(),
		)
	}
	return nil
}
