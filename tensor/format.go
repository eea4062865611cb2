package tensor

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/sebffischer/gotensor/errs"
)

// ToNested reads t's buffer back through its shape's strides and offset
// (honoring views without materializing a copy) and reconstructs a nested
// Go slice structure matching t's dims.
func (t *Tensor) ToNested() (any, error) {
	if err := t.checkAlive(); err != nil {
		return nil, err
	}
	values, err := t.flatValues()
	if err != nil {
		return nil, err
	}
	return buildNested(values, t.shape.Dims, t.shape.DType.GoType()), nil
}

// buildNested recursively reshapes a flat, row-major values slice into
// nested slices matching dims. dims == nil (rank 0, a scalar) returns the
// single value itself, unwrapped.
func buildNested(values []any, dims []int, elemType reflect.Type) any {
	if len(dims) == 0 {
		if len(values) == 0 {
			return nil
		}
		return values[0]
	}
	n := dims[0]
	if len(dims) == 1 {
		out := reflect.MakeSlice(reflect.SliceOf(elemType), n, n)
		for i := 0; i < n; i++ {
			out.Index(i).Set(reflect.ValueOf(values[i]))
		}
		return out.Interface()
	}
	childSize := 1
	for _, d := range dims[1:] {
		childSize *= d
	}
	childType := nestedSliceType(dims[1:], elemType)
	out := reflect.MakeSlice(reflect.SliceOf(childType), n, n)
	for i := 0; i < n; i++ {
		child := buildNested(values[i*childSize:(i+1)*childSize], dims[1:], elemType)
		out.Index(i).Set(reflect.ValueOf(child))
	}
	return out.Interface()
}

// nestedSliceType computes the reflect.Type of a (possibly nested) slice of
// elemType with rank len(dims).
func nestedSliceType(dims []int, elemType reflect.Type) reflect.Type {
	t := elemType
	for range dims {
		t = reflect.SliceOf(t)
	}
	return t
}

// Item returns t's single element, unwrapping however many size-1 dims t
// has. Fails unless t.Size() == 1.
func (t *Tensor) Item() (any, error) {
	if err := t.checkAlive(); err != nil {
		return nil, err
	}
	if t.shape.Size() != 1 {
		return nil, errs.BoundsErr(
			map[string]any{"size": t.shape.Size()},
			"tensor: item requires size 1, got %d", t.shape.Size(),
		)
	}
	values, err := t.flatValues()
	if err != nil {
		return nil, err
	}
	return values[0], nil
}

const (
	formatTruncateThreshold = 1000
	formatEdgeItems         = 3
)

// Format produces a human-readable, multi-line rendering of t, truncating
// any axis whose length exceeds formatTruncateThreshold with an ellipsis
// marker, keeping formatEdgeItems elements from each end. The threshold is
// compared with each axis length, not with the total element count: a
// tensor with more elements than the threshold but no axis longer than it
// is printed in full.
func (t *Tensor) Format() (string, error) {
	if err := t.checkAlive(); err != nil {
		return "", err
	}
	values, err := t.flatValues()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	formatAxis(&b, values, t.shape.Dims, 0)
	return b.String(), nil
}

// formatAxis recursively renders dims[0]'s axis of a row-major values
// slice, truncating that axis when its length exceeds formatTruncateThreshold.
func formatAxis(b *strings.Builder, values []any, dims []int, depth int) {
	if len(dims) == 0 {
		if len(values) > 0 {
			fmt.Fprintf(b, "%v", values[0])
		}
		return
	}
	n := dims[0]
	childSize := 1
	for _, d := range dims[1:] {
		childSize *= d
	}
	truncate := n > formatTruncateThreshold && n > 2*formatEdgeItems

	b.WriteByte('[')
	write := func(i int) {
		if i > 0 {
			if len(dims) == 1 {
				b.WriteString(", ")
			} else {
				b.WriteString(",\n" + strings.Repeat(" ", depth+1))
			}
		}
		formatAxis(b, values[i*childSize:(i+1)*childSize], dims[1:], depth+1)
	}
	if !truncate {
		for i := 0; i < n; i++ {
			write(i)
		}
	} else {
		for i := 0; i < formatEdgeItems; i++ {
			write(i)
		}
		b.WriteString(", ..., ")
		for i := n - formatEdgeItems; i < n; i++ {
			write(i)
		}
	}
	b.WriteByte(']')
}

// String implements fmt.Stringer via Format, surfacing any read failure
// inline rather than panicking.
func (t *Tensor) String() string {
	s, err := t.Format()
	if err != nil {
		return fmt.Sprintf("<tensor: %s>", err)
	}
	return s
}
