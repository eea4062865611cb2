// Package axes models shapes whose axis sizes may not all be known yet --
// the representation an external einops-style pattern compiler works with
// while it is still resolving a rearrange/reduce pattern against concrete
// input shapes. It is deliberately distinct from shape.Shape: every
// shape.Shape axis is always fully known (a tensor's storage descriptor
// requires concrete dims to compute its size and strides), so this package
// exists only at the pattern-compiler boundary, before axis sizes are pinned
// down.
package axes

import "errors"

// Axis represents a single dimension which can be known or unknown.
type Axis struct {
	size  uint
	known bool
}

// KnownAxis returns an Axis of the given, already-resolved size.
func KnownAxis(size uint) Axis {
	return Axis{size: size, known: true}
}

// UnknownAxis returns an Axis whose size has not been resolved yet.
func UnknownAxis() Axis {
	return Axis{}
}

// Axes represents the shape of an array, where each dimension can be known or unknown.
type Axes []Axis

func (a Axes) NumAxes() int {
	return len(a)
}

func (a Axis) Size() (uint, error) {
	if !a.known {
		return 0, errors.New("axis size is unknown")
	}
	return a.size, nil
}

func (a Axis) Known() bool {
	return a.known
}

func (a Axes) Known() bool {
	for _, axis := range a {
		if !axis.known {
			return false
		}
	}
	return true
}

// Resolved returns the sizes of all axes, erroring if any axis is still unknown.
func (a Axes) Resolved() ([]uint, error) {
	sizes := make([]uint, len(a))
	for i, axis := range a {
		size, err := axis.Size()
		if err != nil {
			return nil, err
		}
		sizes[i] = size
	}
	return sizes, nil
}
