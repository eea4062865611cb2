package shape

import "github.com/sebffischer/gotensor/errs"

// Reshape computes the output Shape for reshaping s to newDims, which must
// have equal total size. If s is already C-contiguous the result is a view
// over the same offset sharing s's buffer; otherwise the caller must first
// materialize a contiguous copy (IsCopyNeeded reports which case applies),
// and Reshape is then called again against that copy (which is always
// C-contiguous, so it always takes the view branch).
func Reshape(s Shape, newDims []int) (Shape, error) {
	if s.Size() != product(newDims) {
		return Shape{}, errs.ReshapeMismatchErr(
			map[string]any{"from": s.Dims, "to": newDims},
			"shape: cannot reshape %v (size %d) to %v (size %d)", s.Dims, s.Size(), newDims, product(newDims),
		)
	}
	if !s.CContiguous() {
		return Shape{}, errs.ReshapeMismatchErr(
			map[string]any{"from": s.Dims, "to": newDims},
			"shape: reshape of non-contiguous input requires materializing a contiguous copy first",
		)
	}
	return MakeView(s.DType, newDims, CStrides(newDims), s.Offset, s.Writeable, s.Aligned)
}

// IsCopyNeeded reports whether reshaping s requires the caller to
// materialize a contiguous copy first (true) or can produce a direct view
// (false, when s is already C-contiguous).
func IsCopyNeeded(s Shape) bool {
	return !s.CContiguous()
}

// View resolves one -1 wildcard dimension in dims against s's total size
// (requiring s be contiguous -- the caller must ensure-contiguous first) and
// returns the resulting view Shape.
func View(s Shape, dims []int) (Shape, error) {
	if !s.CContiguous() {
		return Shape{}, errs.ReshapeMismatchErr(map[string]any{"from": s.Dims, "to": dims}, "shape: view requires a contiguous input")
	}

	wildcardIdx := -1
	known := 1
	for i, d := range dims {
		if d == -1 {
			if wildcardIdx != -1 {
				return Shape{}, errs.ViewAmbiguousErr(map[string]any{"dims": dims}, "shape: view accepts at most one -1 wildcard, got %v", dims)
			}
			wildcardIdx = i
			continue
		}
		if d < 0 {
			return Shape{}, errs.DtypeValidationErr(map[string]any{"dims": dims}, "shape: view dims must be -1 or non-negative, got %v", dims)
		}
		known *= d
	}

	resolved := make([]int, len(dims))
	copy(resolved, dims)
	if wildcardIdx == -1 {
		if known != s.Size() {
			return Shape{}, errs.ViewAmbiguousErr(map[string]any{"from": s.Dims, "to": dims}, "shape: view size %d does not match input size %d", known, s.Size())
		}
	} else {
		if known == 0 || s.Size()%known != 0 {
			return Shape{}, errs.ViewAmbiguousErr(map[string]any{"from": s.Dims, "to": dims}, "shape: view size %d does not divide evenly into %v", s.Size(), dims)
		}
		resolved[wildcardIdx] = s.Size() / known
	}

	return MakeView(s.DType, resolved, CStrides(resolved), s.Offset, s.Writeable, s.Aligned)
}

func product(dims []int) int {
	p := 1
	for _, d := range dims {
		p *= d
	}
	return p
}
