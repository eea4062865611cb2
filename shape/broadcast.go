package shape

import "github.com/sebffischer/gotensor/errs"

// Broadcast computes the NumPy-style broadcast shape of two dim lists:
// shapes are right-aligned, missing left-prefix dims act as 1, and per
// dimension a and b are compatible if equal or one of them is 1 (the
// broadcast dim is the max of the two). Commutative: Broadcast(a, b) and
// Broadcast(b, a) always agree.
func Broadcast(a, b []int) ([]int, error) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		da := dimAt(a, i, n)
		db := dimAt(b, i, n)
		switch {
		case da == db:
			out[n-1-i] = da
		case da == 1:
			out[n-1-i] = db
		case db == 1:
			out[n-1-i] = da
		default:
			return nil, errs.ShapeMismatchErr(
				map[string]any{"a": a, "b": b, "op": "broadcast"},
				"shape: cannot broadcast %v and %v", a, b,
			)
		}
	}
	return out, nil
}

// dimAt returns the dimension i positions from the right of dims, within a
// right-aligned window of total width n; positions past dims' own left edge
// are treated as an implicit size-1 prefix dim.
func dimAt(dims []int, i, n int) int {
	idx := len(dims) - 1 - i
	if idx < 0 {
		return 1
	}
	return dims[idx]
}
