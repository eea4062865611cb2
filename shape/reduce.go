package shape

import "github.com/sebffischer/gotensor/errs"

// NormalizeAxes resolves negative axes (axis + rank) against rank and
// rejects duplicates or still out-of-range values after normalization.
func NormalizeAxes(axes []int, rank int) ([]int, error) {
	out := make([]int, len(axes))
	seen := make(map[int]bool, len(axes))
	for i, ax := range axes {
		n := ax
		if n < 0 {
			n += rank
		}
		if n < 0 || n >= rank {
			return nil, errs.BoundsErr(map[string]any{"axis": ax, "rank": rank}, "shape: axis %d out of range for rank %d", ax, rank)
		}
		if seen[n] {
			return nil, errs.PermutationDuplicateErr(map[string]any{"axis": n}, "shape: duplicate axis %d", n)
		}
		seen[n] = true
		out[i] = n
	}
	return out, nil
}

// ReduceShape computes the output dims of reducing dims along axes (nil
// meaning "reduce all") under keepDims.
func ReduceShape(dims []int, axes []int, keepDims bool) ([]int, error) {
	rank := len(dims)
	if axes == nil {
		if keepDims {
			out := make([]int, rank)
			for i := range out {
				out[i] = 1
			}
			return out, nil
		}
		return []int{}, nil
	}

	normalized, err := NormalizeAxes(axes, rank)
	if err != nil {
		return nil, err
	}
	reduced := make([]bool, rank)
	for _, ax := range normalized {
		reduced[ax] = true
	}

	out := make([]int, 0, rank)
	for i, d := range dims {
		if !reduced[i] {
			out = append(out, d)
			continue
		}
		if keepDims {
			out = append(out, 1)
		}
	}
	return out, nil
}
