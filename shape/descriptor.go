// Package shape implements the storage descriptor every operation in this
// module threads through: dtype, dims, strides, size, layout flags and
// offset, plus the shape-algebra (broadcast, matmul, reduce, slice, view,
// permute) that derives a new descriptor's dims/strides from an input one.
//
// Shape widens atype.ArrayType (dtype + dims) with the storage-layer fields
// ArrayType never carried -- strides, offset, and the view/writeable/aligned
// flags -- because a tensor's storage descriptor must track not just its
// logical type but which bytes of which buffer it addresses.
package shape

import (
	"fmt"
	"slices"

	"github.com/sebffischer/gotensor/atype"
	"github.com/sebffischer/gotensor/dtype"
	"github.com/sebffischer/gotensor/errs"
)

// MaxRank is the highest rank a Shape may carry.
const MaxRank = 8

// Shape is the (dtype, dims, strides, size, layout-flags, offset) record
// carried through every operation. Dims and Strides are always the same
// length; Strides are in element counts, not bytes.
type Shape struct {
	DType   dtype.DType
	Dims    []int
	Strides []int
	Offset  int

	IsView    bool
	Writeable bool
	Aligned   bool
}

// NumAxes returns the rank (number of dimensions).
func (s Shape) NumAxes() int { return len(s.Dims) }

// Size returns the product of all dims (empty product = 1, matching a
// scalar's size of one element).
func (s Shape) Size() int {
	size := 1
	for _, d := range s.Dims {
		size *= d
	}
	return size
}

// ArrayType projects this Shape down to its dtype+dims, discarding storage
// layout -- the view atype and the rest of this module's non-layout-aware
// code operate on.
func (s Shape) ArrayType() atype.ArrayType {
	return atype.Make(s.DType, s.Dims...)
}

// CContiguous reports whether Strides match the canonical row-major strides
// of Dims, offset is zero, and size is non-zero. Empty shapes (any dim zero)
// are contiguous vacuously per the zero-size convention, but since offset
// must also be zero that still requires checking.
func (s Shape) CContiguous() bool {
	if s.Offset != 0 {
		return false
	}
	if s.Size() == 0 {
		return true
	}
	return slices.Equal(s.Strides, CStrides(s.Dims))
}

// FContiguous reports whether Strides match the canonical column-major
// strides of Dims, under the same offset/size rules as CContiguous.
func (s Shape) FContiguous() bool {
	if s.Offset != 0 {
		return false
	}
	if s.Size() == 0 {
		return true
	}
	return slices.Equal(s.Strides, FStrides(s.Dims))
}

// String implements fmt.Stringer for diagnostics.
func (s Shape) String() string {
	return fmt.Sprintf("(%s)%v strides=%v offset=%d view=%t", s.DType, s.Dims, s.Strides, s.Offset, s.IsView)
}

// Clone returns a deep copy.
func (s Shape) Clone() Shape {
	return Shape{
		DType:     s.DType,
		Dims:      slices.Clone(s.Dims),
		Strides:   slices.Clone(s.Strides),
		Offset:    s.Offset,
		IsView:    s.IsView,
		Writeable: s.Writeable,
		Aligned:   s.Aligned,
	}
}

// Equal compares dtype, dims and strides (but not offset/view/writeable/
// aligned, which describe storage identity rather than logical shape).
func (s Shape) Equal(other Shape) bool {
	return s.DType == other.DType && slices.Equal(s.Dims, other.Dims) && slices.Equal(s.Strides, other.Strides)
}

// Make builds a fresh, non-view, C-contiguous Shape for newly allocated
// storage: offset zero, writeable and aligned true, c_contiguous true per
// the "operations that inherently produce copies" rule.
func Make(dt dtype.DType, dims ...int) (Shape, error) {
	if len(dims) > MaxRank {
		return Shape{}, errs.RankExceededErr(map[string]any{"rank": len(dims), "max": MaxRank}, "shape: rank %d exceeds max rank %d", len(dims), MaxRank)
	}
	for _, d := range dims {
		if d < 0 {
			return Shape{}, errs.DtypeValidationErr(map[string]any{"dims": dims}, "shape: dims must be non-negative, got %v", dims)
		}
	}
	return Shape{
		DType:     dt,
		Dims:      slices.Clone(dims),
		Strides:   CStrides(dims),
		Offset:    0,
		IsView:    false,
		Writeable: true,
		Aligned:   true,
	}, nil
}

// MakeView builds a Shape describing a view into existing storage: IsView is
// forced true and Writeable/Aligned are carried over from the parent
// explicitly by the caller (reshape, transpose, permute, slice-as-view all
// compute these before calling this).
func MakeView(dt dtype.DType, dims, strides []int, offset int, writeable, aligned bool) (Shape, error) {
	if len(dims) > MaxRank {
		return Shape{}, errs.RankExceededErr(map[string]any{"rank": len(dims), "max": MaxRank}, "shape: rank %d exceeds max rank %d", len(dims), MaxRank)
	}
	if len(dims) != len(strides) {
		return Shape{}, errs.ShapeMismatchErr(map[string]any{"dims": dims, "strides": strides}, "shape: dims length %d != strides length %d", len(dims), len(strides))
	}
	return Shape{
		DType:     dt,
		Dims:      slices.Clone(dims),
		Strides:   slices.Clone(strides),
		Offset:    offset,
		IsView:    true,
		Writeable: writeable,
		Aligned:   aligned,
	}, nil
}
