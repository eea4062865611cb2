package tensor

import (
	"github.com/sebffischer/gotensor/dtype"
	"github.com/sebffischer/gotensor/op"
	"github.com/sebffischer/gotensor/shape"
)

// unary dispatches a one-input op.Tag. Tags in op.Unary promote an
// integer/boolean input to float (toFloatDType); Square/Neg/Abs preserve
// the input dtype per op.PreservesDType.
func (t *Tensor) unary(tag op.Tag) (Tensor, error) {
	if err := t.checkAlive(); err != nil {
		return Tensor{}, err
	}
	outDType := t.shape.DType
	if !op.PreservesDType(tag) {
		outDType = toFloatDType(outDType)
	}
	out, err := shape.Make(outDType, t.shape.Dims...)
	if err != nil {
		return Tensor{}, err
	}
	return t.dispatch(tag, out, []shape.Shape{t.shape}, []op.Handle{t.handle}, nil)
}

// Neg negates every element; dtype is preserved.
func (t *Tensor) Neg() (Tensor, error) { return t.unary(op.Neg) }

// Abs takes the absolute value of every element; dtype is preserved.
func (t *Tensor) Abs() (Tensor, error) { return t.unary(op.Abs) }

// Square squares every element; dtype is preserved.
func (t *Tensor) Square() (Tensor, error) { return t.unary(op.Square) }

// Sin applies sine element-wise, promoting an integer/boolean input to
// float32 (float64 stays float64).
func (t *Tensor) Sin() (Tensor, error) { return t.unary(op.Sin) }

// Cos applies cosine element-wise, promoting an integer/boolean input to
// float32 (float64 stays float64).
func (t *Tensor) Cos() (Tensor, error) { return t.unary(op.Cos) }

// Exp applies the exponential function element-wise, promoting an
// integer/boolean input to float32 (float64 stays float64).
func (t *Tensor) Exp() (Tensor, error) { return t.unary(op.Exp) }

// Log applies the natural logarithm element-wise, promoting an
// integer/boolean input to float32 (float64 stays float64).
func (t *Tensor) Log() (Tensor, error) { return t.unary(op.Log) }

// Sqrt applies the square root element-wise, promoting an integer/boolean
// input to float32 (float64 stays float64).
func (t *Tensor) Sqrt() (Tensor, error) { return t.unary(op.Sqrt) }

// binary dispatches a two-input, broadcasting op.Tag. The output dtype is
// dtype.Promote(t, other)'s result and the output shape is shape.Broadcast
// of the two operand dims; both operands must belong to the same backend.
func (t *Tensor) binary(tag op.Tag, other *Tensor) (Tensor, error) {
	if err := t.checkAlive(); err != nil {
		return Tensor{}, err
	}
	if err := other.checkAlive(); err != nil {
		return Tensor{}, err
	}
	if err := sameBackend(t, other); err != nil {
		return Tensor{}, err
	}

	outDims, err := shape.Broadcast(t.shape.Dims, other.shape.Dims)
	if err != nil {
		return Tensor{}, err
	}
	outDType, err := dtype.Promote(t.shape.DType, other.shape.DType)
	if err != nil {
		return Tensor{}, err
	}
	out, err := shape.Make(outDType, outDims...)
	if err != nil {
		return Tensor{}, err
	}
	return t.dispatch(tag, out, []shape.Shape{t.shape, other.shape}, []op.Handle{t.handle, other.handle}, nil)
}

// Add computes t + other with NumPy-style broadcasting and dtype promotion.
func (t *Tensor) Add(other *Tensor) (Tensor, error) { return t.binary(op.Add, other) }

// Sub computes t - other with NumPy-style broadcasting and dtype promotion.
func (t *Tensor) Sub(other *Tensor) (Tensor, error) { return t.binary(op.Sub, other) }

// Mul computes t * other (element-wise) with NumPy-style broadcasting and
// dtype promotion.
func (t *Tensor) Mul(other *Tensor) (Tensor, error) { return t.binary(op.Mul, other) }

// Div computes t / other (element-wise) with NumPy-style broadcasting and
// dtype promotion.
func (t *Tensor) Div(other *Tensor) (Tensor, error) { return t.binary(op.Div, other) }

// AsType converts t to a different dtype, materializing a new contiguous
// buffer: values are read back to the host, converted under policy, and
// written into a fresh allocation on t's backend (directly, not through a
// dispatched op).
func (t *Tensor) AsType(to dtype.DType, policy dtype.Policy) (Tensor, []string, error) {
	if err := t.checkAlive(); err != nil {
		return Tensor{}, nil, err
	}
	values, err := t.flatValues()
	if err != nil {
		return Tensor{}, nil, err
	}
	converted, warnings, err := dtype.ConvertArray(values, t.shape.DType, to, policy)
	if err != nil {
		return Tensor{}, nil, err
	}
	raw, err := packElements(to, converted)
	if err != nil {
		return Tensor{}, nil, err
	}
	s, err := shape.Make(to, t.shape.Dims...)
	if err != nil {
		return Tensor{}, nil, err
	}
	out, err := allocateFilled(t.disp.Backend, s, raw)
	return out, warnings, err
}

// flatValues reads t's elements back to the host in row-major logical
// order (following t.shape's strides/offset, so a view or non-contiguous
// tensor reads correctly without first being materialized) and decodes each
// one to its dtype's canonical Go representation.
func (t *Tensor) flatValues() ([]any, error) {
	raw, err := t.disp.Backend.Read(t.handle)
	if err != nil {
		return nil, err
	}
	size := t.shape.Size()
	out := make([]any, size)
	flat := 0
	walkShape(t.shape, func(_ int, srcElem int) {
		v, lerr := loadElement(raw, t.shape.DType, srcElem)
		if lerr == nil {
			out[flat] = v
		}
		flat++
	})
	return out, nil
}
