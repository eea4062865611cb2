package tensor

import (
	"fmt"
	"unsafe"

	"github.com/sebffischer/gotensor/atype"
	"github.com/sebffischer/gotensor/dtype"
	"github.com/sebffischer/gotensor/errs"
	"github.com/sebffischer/gotensor/shape"
)

// walkShape visits every logical element of s in row-major order, calling
// visit(flatOutIndex, srcElementIndex) for each -- srcElementIndex already
// accounts for s's offset and strides, so a view or non-contiguous tensor
// reads correctly without materializing a copy first. Mirrors op's
// unexported walkStrided on this side of the backend boundary.
func walkShape(s shape.Shape, visit func(flatOut, srcElem int)) {
	dims, strides, offset := s.Dims, s.Strides, s.Offset
	rank := len(dims)
	if rank == 0 {
		visit(0, offset)
		return
	}
	size := s.Size()
	if size == 0 {
		return
	}
	indices := make([]int, rank)
	for flat := 0; flat < size; flat++ {
		srcElem := offset
		for axis, idx := range indices {
			srcElem += idx * strides[axis]
		}
		visit(flat, srcElem)
		for axis := rank - 1; axis >= 0; axis-- {
			indices[axis]++
			if indices[axis] < dims[axis] {
				break
			}
			indices[axis] = 0
		}
	}
}

// packElements encodes values -- already converted to dt's canonical Go
// representation -- into a freshly allocated row-major byte buffer. It uses
// atype.UnsafeSliceForDType's unsafe.Pointer cast over the raw buffer rather
// than hand-rolled per-element byte shifting, following the same precedent
// backend/cpu/codec.go applies on the backend side of the boundary.
func packElements(dt dtype.DType, values []any) ([]byte, error) {
	raw := make([]byte, len(values)*dt.ByteSize())
	if len(values) == 0 {
		return raw, nil
	}
	slice, err := atype.UnsafeSliceForDType(dt, unsafe.Pointer(&raw[0]), len(values))
	if err != nil {
		return nil, errs.DtypeValidationErr(map[string]any{"dtype": dt.String()}, "tensor: %s", err)
	}
	if err := assignInto(slice, values, dt); err != nil {
		return nil, err
	}
	return raw, nil
}

func assignInto(slice any, values []any, dt dtype.DType) error {
	switch dst := slice.(type) {
	case []bool:
		for i, v := range values {
			x, ok := v.(bool)
			if !ok {
				return mismatchErr(dt, v)
			}
			dst[i] = x
		}
	case []int8:
		for i, v := range values {
			x, ok := v.(int8)
			if !ok {
				return mismatchErr(dt, v)
			}
			dst[i] = x
		}
	case []uint8:
		for i, v := range values {
			x, ok := v.(uint8)
			if !ok {
				return mismatchErr(dt, v)
			}
			dst[i] = x
		}
	case []int16:
		for i, v := range values {
			x, ok := v.(int16)
			if !ok {
				return mismatchErr(dt, v)
			}
			dst[i] = x
		}
	case []uint16:
		for i, v := range values {
			x, ok := v.(uint16)
			if !ok {
				return mismatchErr(dt, v)
			}
			dst[i] = x
		}
	case []int32:
		for i, v := range values {
			x, ok := v.(int32)
			if !ok {
				return mismatchErr(dt, v)
			}
			dst[i] = x
		}
	case []uint32:
		for i, v := range values {
			x, ok := v.(uint32)
			if !ok {
				return mismatchErr(dt, v)
			}
			dst[i] = x
		}
	case []int64:
		for i, v := range values {
			x, ok := v.(int64)
			if !ok {
				return mismatchErr(dt, v)
			}
			dst[i] = x
		}
	case []uint64:
		for i, v := range values {
			x, ok := v.(uint64)
			if !ok {
				return mismatchErr(dt, v)
			}
			dst[i] = x
		}
	case []float32:
		for i, v := range values {
			x, ok := v.(float32)
			if !ok {
				return mismatchErr(dt, v)
			}
			dst[i] = x
		}
	case []float64:
		for i, v := range values {
			x, ok := v.(float64)
			if !ok {
				return mismatchErr(dt, v)
			}
			dst[i] = x
		}
	default:
		return errs.DtypeValidationErr(map[string]any{"dtype": dt.String()}, "tensor: unsupported dtype for packing")
	}
	return nil
}

func mismatchErr(dt dtype.DType, v any) error {
	return errs.DtypeValidationErr(
		map[string]any{"dtype": dt.String(), "numpy_tag": dt.NumpyTag(), "value": fmt.Sprintf("%v", v)},
		"tensor: value %v (%T) does not match dtype %s's Go representation", v, v, dt,
	)
}

// loadElement reads the element at idx (an element index, not byte index)
// of raw as dt, returning it as dt's canonical Go representation. Unlike
// backend/cpu's loadFloat64, this never widens to float64 -- round-tripping
// through a nested Go value (ToNested, Item) needs the exact typed value.
func loadElement(raw []byte, dt dtype.DType, idx int) (any, error) {
	slice, err := atype.UnsafeSliceForDType(dt, unsafe.Pointer(&raw[idx*dt.ByteSize()]), 1)
	if err != nil {
		return nil, errs.DtypeValidationErr(map[string]any{"dtype": dt.String()}, "tensor: %s", err)
	}
	switch s := slice.(type) {
	case []bool:
		return s[0], nil
	case []int8:
		return s[0], nil
	case []uint8:
		return s[0], nil
	case []int16:
		return s[0], nil
	case []uint16:
		return s[0], nil
	case []int32:
		return s[0], nil
	case []uint32:
		return s[0], nil
	case []int64:
		return s[0], nil
	case []uint64:
		return s[0], nil
	case []float32:
		return s[0], nil
	case []float64:
		return s[0], nil
	default:
		return nil, errs.DtypeValidationErr(map[string]any{"dtype": dt.String()}, "tensor: unsupported dtype %s", dt)
	}
}
