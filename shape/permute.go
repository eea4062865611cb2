package shape

import "github.com/sebffischer/gotensor/errs"

// Transpose swaps the last two dims (and their strides) of s, returning a
// view. Rank < 2 is returned unchanged (transpose is identity for scalars
// and vectors).
func Transpose(s Shape) (Shape, error) {
	if s.NumAxes() < 2 {
		return s.Clone(), nil
	}
	n := s.NumAxes()
	dims := append([]int(nil), s.Dims...)
	strides := append([]int(nil), s.Strides...)
	dims[n-1], dims[n-2] = dims[n-2], dims[n-1]
	strides[n-1], strides[n-2] = strides[n-2], strides[n-1]
	return MakeView(s.DType, dims, strides, s.Offset, s.Writeable, s.Aligned)
}

// Permute reorders s's dims and strides according to axes, a permutation of
// [0, rank) (negative axes normalize against rank). Returns a view.
func Permute(s Shape, axes []int) (Shape, error) {
	rank := s.NumAxes()
	if len(axes) != rank {
		return Shape{}, errs.ShapeMismatchErr(
			map[string]any{"rank": rank, "axes": axes},
			"shape: permute needs exactly %d axes, got %d (%v)", rank, len(axes), axes,
		)
	}
	normalized, err := NormalizeAxes(axes, rank)
	if err != nil {
		return Shape{}, err
	}

	dims := make([]int, rank)
	strides := make([]int, rank)
	for i, ax := range normalized {
		dims[i] = s.Dims[ax]
		strides[i] = s.Strides[ax]
	}
	return MakeView(s.DType, dims, strides, s.Offset, s.Writeable, s.Aligned)
}
