package shape

import "github.com/sebffischer/gotensor/errs"

// AxisSpec is one axis's slice specification: exactly one of Index (drops
// the axis), Full (keeps the axis unchanged), or Start/Stop/Step (a ranged
// slice) applies. A zero-value AxisSpec means Full.
type AxisSpec struct {
	Index *int
	Full  bool

	Start *int
	Stop  *int
	Step  *int
}

// FullAxis returns an AxisSpec that keeps the axis unchanged.
func FullAxis() AxisSpec { return AxisSpec{Full: true} }

// IndexAxis returns an AxisSpec that selects a single element at i, removing
// the axis from the output.
func IndexAxis(i int) AxisSpec { return AxisSpec{Index: &i} }

// RangeAxis returns an AxisSpec selecting [start, stop) stepping by step;
// any of the three may be nil to take its default (start=0, stop=dim,
// step=1).
func RangeAxis(start, stop, step *int) AxisSpec { return AxisSpec{Start: start, Stop: stop, Step: step} }

// Slice computes the view Shape produced by slicing s per-axis with specs,
// then resolves the Open-Question decision on materialization: by default
// (returnViewIfPossible false) the shape is marked as requiring the caller to
// materialize a contiguous copy (the core mandate); when returnViewIfPossible
// is true the view Shape is returned as-is (every result of Apply is a legal
// strided view, so no further check is made). This package has no buffer
// access, so "materializing" here only means reporting whether the caller
// must copy -- the actual byte copy happens one layer up, in tensor.Slice
// via op.Materialize.
func Slice(s Shape, specs []AxisSpec, returnViewIfPossible bool) (view Shape, mustCopy bool, err error) {
	view, err = Apply(s, specs)
	if err != nil {
		return Shape{}, false, err
	}
	return view, !returnViewIfPossible, nil
}

// Apply computes the view Shape produced by slicing s per-axis with specs
// (one entry per axis of s; a missing trailing entry defaults to Full).
// The returned Shape is always a view over s's buffer -- whether the caller
// materializes a contiguous copy from it (the default reference-backend
// behavior) is a decision made above this layer.
func Apply(s Shape, specs []AxisSpec) (Shape, error) {
	rank := s.NumAxes()
	if len(specs) > rank {
		return Shape{}, errs.BoundsErr(map[string]any{"rank": rank, "specs": len(specs)}, "shape: slice has more specs (%d) than axes (%d)", len(specs), rank)
	}

	dims := make([]int, 0, rank)
	strides := make([]int, 0, rank)
	offset := s.Offset

	for axis := 0; axis < rank; axis++ {
		spec := AxisSpec{Full: true}
		if axis < len(specs) {
			spec = specs[axis]
		}
		dim := s.Dims[axis]
		stride := s.Strides[axis]

		switch {
		case spec.Index != nil:
			idx := normalizeIndex(*spec.Index, dim)
			if idx < 0 || idx >= dim {
				return Shape{}, errs.BoundsErr(map[string]any{"axis": axis, "index": *spec.Index, "dim": dim}, "shape: slice index %d out of bounds for axis %d (dim %d)", *spec.Index, axis, dim)
			}
			offset += idx * stride
			// axis dropped: neither dims nor strides get an entry.

		case spec.Full:
			dims = append(dims, dim)
			strides = append(strides, stride)

		default:
			start, stop, step, err := resolveRange(spec, dim)
			if err != nil {
				return Shape{}, err
			}
			outDim := rangeLen(start, stop, step)
			dims = append(dims, outDim)
			strides = append(strides, stride*step)
			if outDim > 0 {
				offset += start * stride
			}
		}
	}

	return MakeView(s.DType, dims, strides, offset, s.Writeable, s.Aligned)
}

func normalizeIndex(i, dim int) int {
	if i < 0 {
		return dim + i
	}
	return i
}

// resolveRange applies slice defaults and negative-index normalization:
// start defaults to 0 (or dim-1 for negative step), stop defaults to dim (or
// "before index 0" for negative step), step defaults to 1. Step 0 is an
// error.
func resolveRange(spec AxisSpec, dim int) (start, stop, step int, err error) {
	step = 1
	if spec.Step != nil {
		step = *spec.Step
	}
	if step == 0 {
		return 0, 0, 0, errs.SliceStepZeroErr(map[string]any{"dim": dim}, "shape: slice step cannot be zero")
	}

	if step > 0 {
		start = 0
		stop = dim
	} else {
		start = dim - 1
		stop = -1
	}
	if spec.Start != nil {
		start = clampIndex(normalizeIndex(*spec.Start, dim), dim)
	}
	if spec.Stop != nil {
		stop = clampStop(normalizeIndex(*spec.Stop, dim), dim, step)
	}
	return start, stop, step, nil
}

func clampIndex(i, dim int) int {
	if i < 0 {
		return 0
	}
	if i > dim {
		return dim
	}
	return i
}

func clampStop(i, dim, step int) int {
	if step > 0 {
		if i < 0 {
			return 0
		}
		if i > dim {
			return dim
		}
		return i
	}
	if i < -1 {
		return -1
	}
	if i >= dim {
		return dim - 1
	}
	return i
}

// rangeLen returns ceil((stop-start)/step) clamped to >= 0.
func rangeLen(start, stop, step int) int {
	if step > 0 {
		if stop <= start {
			return 0
		}
		return (stop - start + step - 1) / step
	}
	// step < 0: iterate start, start+step, ... while > stop.
	if start <= stop {
		return 0
	}
	diff := start - stop
	negStep := -step
	return (diff + negStep - 1) / negStep
}
