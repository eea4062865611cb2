package shape

import "github.com/sebffischer/gotensor/errs"

// MatmulShape computes the output dims of a matmul between dim lists a and
// b, following NumPy's matmul broadcasting rules:
//   - both operands must be rank >= 1.
//   - the contracted dimension (a's last dim against b's second-to-last dim,
//     or b's only dim if b is rank 1) must match.
//   - batch dims (everything but the trailing one or two) must match
//     exactly -- no broadcasting across batches.
//   - a rank-1 operand's corresponding output axis is squeezed away.
func MatmulShape(a, b []int) ([]int, error) {
	if len(a) < 1 || len(b) < 1 {
		return nil, errs.ShapeMismatchErr(
			map[string]any{"a": a, "b": b, "op": "matmul"},
			"shape: matmul operands must have rank >= 1, got %v and %v", a, b,
		)
	}

	aIs1D := len(a) == 1
	bIs1D := len(b) == 1

	ka := a[len(a)-1]
	var kb int
	if bIs1D {
		kb = b[len(b)-1]
	} else {
		kb = b[len(b)-2]
	}
	if ka != kb {
		return nil, errs.ShapeMismatchErr(
			map[string]any{"a": a, "b": b, "op": "matmul"},
			"shape: matmul inner dims mismatch: %d (from %v) != %d (from %v)", ka, a, kb, b,
		)
	}

	aBatch, m := matrixPrefix(a, aIs1D, true)
	bBatch, n := matrixPrefix(b, bIs1D, false)

	batch, err := matchBatch(aBatch, bBatch)
	if err != nil {
		return nil, err
	}

	out := make([]int, 0, len(batch)+2)
	out = append(out, batch...)
	if !aIs1D {
		out = append(out, m)
	}
	if !bIs1D {
		out = append(out, n)
	}
	return out, nil
}

// matrixPrefix splits dims into its batch prefix and the output row (isRow
// true) or column (isRow false) extent of its trailing matrix, accounting
// for the 1D-operand squeeze.
func matrixPrefix(dims []int, is1D, isRow bool) (batch []int, extent int) {
	if is1D {
		// A bare vector contributes no batch dims and its own axis is
		// squeezed out of the output entirely (extent unused by caller).
		return nil, 0
	}
	if isRow {
		extent = dims[len(dims)-2]
	} else {
		extent = dims[len(dims)-1]
	}
	return dims[:len(dims)-2], extent
}

// matchBatch requires aBatch and bBatch to match exactly once right-aligned,
// treating missing left-prefix dims as absent (not size-1-broadcastable --
// matmul batch dims do not broadcast), and returns the longer prefix.
func matchBatch(aBatch, bBatch []int) ([]int, error) {
	n := len(aBatch)
	if len(bBatch) > n {
		n = len(bBatch)
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		da, aOk := batchDimAt(aBatch, i, n)
		db, bOk := batchDimAt(bBatch, i, n)
		switch {
		case aOk && bOk:
			if da != db {
				return nil, errs.ShapeMismatchErr(
					map[string]any{"a": aBatch, "b": bBatch, "op": "matmul-batch"},
					"shape: matmul batch dims mismatch: %v vs %v", aBatch, bBatch,
				)
			}
			out[n-1-i] = da
		case aOk:
			out[n-1-i] = da
		case bOk:
			out[n-1-i] = db
		}
	}
	return out, nil
}

func batchDimAt(dims []int, i, n int) (int, bool) {
	idx := len(dims) - 1 - i
	if idx < 0 {
		return 0, false
	}
	return dims[idx], true
}
