package shape

// CStrides returns the canonical row-major (C-order) strides for dims:
// stride[i] = product of dims[i+1:]. Strides are element counts.
func CStrides(dims []int) []int {
	n := len(dims)
	strides := make([]int, n)
	if n == 0 {
		return strides
	}
	current := 1
	for i := n - 1; i >= 0; i-- {
		strides[i] = current
		current *= dims[i]
	}
	return strides
}

// FStrides returns the canonical column-major (Fortran-order) strides for
// dims: stride[i] = product of dims[:i].
func FStrides(dims []int) []int {
	n := len(dims)
	strides := make([]int, n)
	if n == 0 {
		return strides
	}
	current := 1
	for i := 0; i < n; i++ {
		strides[i] = current
		current *= dims[i]
	}
	return strides
}

// RecomputeContiguity does nothing: the layout flags it would refresh
// (CContiguous/FContiguous) are derived on demand from Dims/Strides/Offset,
// so a Shape mutated in place needs no refresh. No operation in this
// package calls it.
func (s *Shape) RecomputeContiguity() {
	// CContiguous/FContiguous are computed on demand from Dims/Strides/Offset;
	// nothing to cache here, this exists so call sites that mutate a Shape
	// in place have a single documented place to call after doing so.
}

// AsCopy returns a clone of s with the layout flags "operations that
// inherently produce copies" (§4.D) require: not a view, C-contiguous,
// not F-contiguous, zero offset. Writeable and Aligned are forced true since
// a freshly materialized buffer is always writeable and aligned.
func (s Shape) AsCopy() Shape {
	out := s.Clone()
	out.Strides = CStrides(out.Dims)
	out.Offset = 0
	out.IsView = false
	out.Writeable = true
	out.Aligned = true
	return out
}
