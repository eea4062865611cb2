package tensor

import (
	"github.com/sebffischer/gotensor/op"
	"github.com/sebffischer/gotensor/shape"
)

// reduce dispatches a Sum/Mean/Max/Min reduction over axes (nil meaning
// "reduce all axes"). Sum/Max/Min preserve t's dtype; Mean always promotes
// to float via the to-float helper.
func (t *Tensor) reduce(tag op.Tag, axes []int, keepDims bool) (Tensor, error) {
	if err := t.checkAlive(); err != nil {
		return Tensor{}, err
	}
	outDims, err := shape.ReduceShape(t.shape.Dims, axes, keepDims)
	if err != nil {
		return Tensor{}, err
	}
	outDType := t.shape.DType
	if !op.PreservesDType(tag) {
		outDType = toFloatDType(outDType)
	}
	out, err := shape.Make(outDType, outDims...)
	if err != nil {
		return Tensor{}, err
	}
	return t.dispatch(tag, out, []shape.Shape{t.shape}, []op.Handle{t.handle}, op.ReduceParams{Axes: axes, KeepDims: keepDims})
}

// Sum reduces t by summing over axes (nil reduces all axes to a scalar).
// Dtype is preserved.
func (t *Tensor) Sum(axes []int, keepDims bool) (Tensor, error) {
	return t.reduce(op.Sum, axes, keepDims)
}

// Mean reduces t by averaging over axes (nil reduces all axes to a
// scalar), always promoting to float.
func (t *Tensor) Mean(axes []int, keepDims bool) (Tensor, error) {
	return t.reduce(op.Mean, axes, keepDims)
}

// Max reduces t by taking the maximum over axes (nil reduces all axes to a
// scalar). Dtype is preserved.
func (t *Tensor) Max(axes []int, keepDims bool) (Tensor, error) {
	return t.reduce(op.Max, axes, keepDims)
}

// Min reduces t by taking the minimum over axes (nil reduces all axes to a
// scalar). Dtype is preserved.
func (t *Tensor) Min(axes []int, keepDims bool) (Tensor, error) {
	return t.reduce(op.Min, axes, keepDims)
}

// softmax dispatches Softmax/LogSoftmax along a single normalized axis,
// promoting an integer/boolean input to float via the to-float helper.
func (t *Tensor) softmax(tag op.Tag, axis int) (Tensor, error) {
	if err := t.checkAlive(); err != nil {
		return Tensor{}, err
	}
	normalized, err := shape.NormalizeAxes([]int{axis}, t.shape.NumAxes())
	if err != nil {
		return Tensor{}, err
	}
	out, err := shape.Make(toFloatDType(t.shape.DType), t.shape.Dims...)
	if err != nil {
		return Tensor{}, err
	}
	return t.dispatch(tag, out, []shape.Shape{t.shape}, []op.Handle{t.handle}, op.SoftmaxParams{Axis: normalized[0]})
}

// Softmax applies softmax along axis, promoting an integer/boolean input to
// float.
func (t *Tensor) Softmax(axis int) (Tensor, error) { return t.softmax(op.Softmax, axis) }

// LogSoftmax applies log-softmax along axis, promoting an integer/boolean
// input to float.
func (t *Tensor) LogSoftmax(axis int) (Tensor, error) { return t.softmax(op.LogSoftmax, axis) }
