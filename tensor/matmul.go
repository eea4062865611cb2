package tensor

import (
	"github.com/sebffischer/gotensor/dtype"
	"github.com/sebffischer/gotensor/op"
	"github.com/sebffischer/gotensor/shape"
)

// Matmul computes the matrix product of t and other, following NumPy's
// matmul broadcasting rules (shape.MatmulShape): batch dims must match
// exactly (no broadcasting across batches), a rank-1 operand's
// corresponding output axis is squeezed away, and the contracted dimension
// must agree. Output dtype is dtype.Promote(t, other)'s result.
func (t *Tensor) Matmul(other *Tensor) (Tensor, error) {
	if err := t.checkAlive(); err != nil {
		return Tensor{}, err
	}
	if err := other.checkAlive(); err != nil {
		return Tensor{}, err
	}
	if err := sameBackend(t, other); err != nil {
		return Tensor{}, err
	}

	outDims, err := shape.MatmulShape(t.shape.Dims, other.shape.Dims)
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
	return t.dispatch(op.Matmul, out, []shape.Shape{t.shape, other.shape}, []op.Handle{t.handle, other.handle}, nil)
}
