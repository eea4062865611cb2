package cpu

import (
	"unsafe"

	"github.com/sebffischer/gotensor/dtype"
)

// elemPtr returns an unsafe pointer to raw's idx-th element of dt's byte
// width, following atype.UnsafeSliceForDType's precedent of viewing a raw
// backend buffer through an unsafe.Pointer cast to the dtype's native Go
// type rather than hand-rolled byte shifting.
func elemPtr(raw []byte, dt dtype.DType, idx int) unsafe.Pointer {
	return unsafe.Pointer(&raw[idx*dt.ByteSize()])
}

// loadFloat64 reads the element at idx (element index, not byte index) of
// raw, interpreted as dt, and widens it to float64 for elementwise/reduction
// math. Bool reads as 0/1.
func loadFloat64(raw []byte, dt dtype.DType, idx int) float64 {
	p := elemPtr(raw, dt, idx)
	switch dt {
	case dtype.Bool:
		if *(*bool)(p) {
			return 1
		}
		return 0
	case dtype.Int8:
		return float64(*(*int8)(p))
	case dtype.Uint8:
		return float64(*(*uint8)(p))
	case dtype.Int16:
		return float64(*(*int16)(p))
	case dtype.Uint16:
		return float64(*(*uint16)(p))
	case dtype.Int32:
		return float64(*(*int32)(p))
	case dtype.Uint32:
		return float64(*(*uint32)(p))
	case dtype.Int64:
		return float64(*(*int64)(p))
	case dtype.Uint64:
		return float64(*(*uint64)(p))
	case dtype.Float32:
		return float64(*(*float32)(p))
	case dtype.Float64:
		return *(*float64)(p)
	default:
		return 0
	}
}

// storeFloat64 narrows v into raw's idx-th element as dt, truncating toward
// zero for integer targets (callers are expected to have already rounded/
// clamped per the active conversion policy where that matters; the kernels
// in exec.go only call this with values already legal for dt).
func storeFloat64(raw []byte, dt dtype.DType, idx int, v float64) {
	p := elemPtr(raw, dt, idx)
	switch dt {
	case dtype.Bool:
		*(*bool)(p) = v != 0
	case dtype.Int8:
		*(*int8)(p) = int8(v)
	case dtype.Uint8:
		*(*uint8)(p) = uint8(v)
	case dtype.Int16:
		*(*int16)(p) = int16(v)
	case dtype.Uint16:
		*(*uint16)(p) = uint16(v)
	case dtype.Int32:
		*(*int32)(p) = int32(v)
	case dtype.Uint32:
		*(*uint32)(p) = uint32(v)
	case dtype.Int64:
		*(*int64)(p) = int64(v)
	case dtype.Uint64:
		*(*uint64)(p) = uint64(v)
	case dtype.Float32:
		*(*float32)(p) = float32(v)
	case dtype.Float64:
		*(*float64)(p) = v
	}
}
