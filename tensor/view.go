package tensor

import (
	"github.com/sebffischer/gotensor/op"
	"github.com/sebffischer/gotensor/shape"
)

// Reshape returns a new Tensor over dims (total size must match t's). If t
// is already row-major contiguous, the result is a zero-copy view sharing
// t's buffer; otherwise this method itself calls op.Materialize to
// repack t's bytes into a contiguous buffer first (shape.IsCopyNeeded is
// the decision point), then reshapes that copy.
//
// This materialize-if-needed call is a different trigger than the one the
// Dispatcher applies inside Dispatch: the dispatcher's own coercion keys off
// Backend.SupportsNonContiguous(tag) -- an accommodation for a specific
// backend kernel's limits -- while this one is a semantic requirement of
// reshape itself (a non-contiguous buffer's bytes cannot be reinterpreted
// under new dims without first being laid out in row-major order). Reshape
// calls op.Materialize directly rather than going through Dispatch a second
// time, since the repacked handle is the final answer, not an input to a
// further op.
func (t *Tensor) Reshape(dims []int) (Tensor, error) {
	if err := t.checkAlive(); err != nil {
		return Tensor{}, err
	}
	src := t.shape
	h := t.handle
	if shape.IsCopyNeeded(src) {
		materialized, newHandle, err := op.Materialize(t.disp.Backend, src, h)
		if err != nil {
			return Tensor{}, err
		}
		src = materialized
		h = newHandle
	}
	out, err := shape.Reshape(src, dims)
	if err != nil {
		return Tensor{}, err
	}
	return t.dispatch(op.Reshape, out, []shape.Shape{src}, []op.Handle{h}, op.ReshapeParams{Dims: dims})
}

// View is Reshape with NumPy's single "-1" wildcard dimension, resolved
// against t's total size. Materializes a contiguous copy first under the
// same rule Reshape documents.
func (t *Tensor) View(dims []int) (Tensor, error) {
	if err := t.checkAlive(); err != nil {
		return Tensor{}, err
	}
	src := t.shape
	h := t.handle
	if shape.IsCopyNeeded(src) {
		materialized, newHandle, err := op.Materialize(t.disp.Backend, src, h)
		if err != nil {
			return Tensor{}, err
		}
		src = materialized
		h = newHandle
	}
	out, err := shape.View(src, dims)
	if err != nil {
		return Tensor{}, err
	}
	return t.dispatch(op.View, out, []shape.Shape{src}, []op.Handle{h}, op.ReshapeParams{Dims: dims})
}

// Transpose swaps t's last two axes, returning a view (rank < 2 returns a
// clone of t unchanged).
func (t *Tensor) Transpose() (Tensor, error) {
	if err := t.checkAlive(); err != nil {
		return Tensor{}, err
	}
	out, err := shape.Transpose(t.shape)
	if err != nil {
		return Tensor{}, err
	}
	return t.dispatch(op.Transpose, out, []shape.Shape{t.shape}, []op.Handle{t.handle}, nil)
}

// Permute reorders t's axes according to axes (a permutation of [0, rank)),
// returning a view.
func (t *Tensor) Permute(axes []int) (Tensor, error) {
	if err := t.checkAlive(); err != nil {
		return Tensor{}, err
	}
	out, err := shape.Permute(t.shape, axes)
	if err != nil {
		return Tensor{}, err
	}
	return t.dispatch(op.Permute, out, []shape.Shape{t.shape}, []op.Handle{t.handle}, op.PermuteParams{Axes: axes})
}

// Slice applies per-axis slice specifiers to t. By default (returnViewIfPossible
// false) the result is always materialized into a fresh contiguous buffer --
// this is the reference backend's default slicing behavior; pass true to
// get a zero-copy view back when the computed slice happens to be legally
// expressible as one (shape.Slice reports mustCopy either way; this method
// honors it by calling op.Materialize on the view shape.Slice computed, the
// same semantic-requirement trigger Reshape/View document above, not the
// dispatcher's per-backend coercion).
func (t *Tensor) Slice(specs []shape.AxisSpec, returnViewIfPossible bool) (Tensor, error) {
	if err := t.checkAlive(); err != nil {
		return Tensor{}, err
	}
	view, mustCopy, err := shape.Slice(t.shape, specs, returnViewIfPossible)
	if err != nil {
		return Tensor{}, err
	}
	if !mustCopy {
		return t.dispatch(op.Slice, view, []shape.Shape{t.shape}, []op.Handle{t.handle}, op.SliceParams{Specs: specs, ReturnViewIfPossible: returnViewIfPossible})
	}
	materialized, newHandle, err := op.Materialize(t.disp.Backend, view, t.handle)
	if err != nil {
		return Tensor{}, err
	}
	return newTensor(t.disp.Backend, materialized, newHandle), nil
}
