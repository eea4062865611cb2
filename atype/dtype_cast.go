package atype

import (
	"reflect"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/sebffischer/gotensor/dtype"
)

// ConvertTo converts any scalar (typically returned by reading back a single
// tensor element) of one of the eleven supported dtypes to T.
// Returns 0 if value is not one of the supported numeric Go types.
func ConvertTo[T dtype.Number](value any) T {
	if t, ok := value.(T); ok {
		return t
	}
	switch v := value.(type) {
	case float64:
		return T(v)
	case float32:
		return T(v)
	case int:
		return T(v)
	case int64:
		return T(v)
	case int32:
		return T(v)
	case int16:
		return T(v)
	case int8:
		return T(v)
	case uint64:
		return T(v)
	case uint32:
		return T(v)
	case uint16:
		return T(v)
	case uint8:
		return T(v)
	}
	return T(0)
}

// UnsafeSliceForDType creates a slice of the corresponding dtype and casts it
// to any, using unsafe.Slice over a raw backend buffer. len is the number of
// DType elements (not bytes).
func UnsafeSliceForDType(dt dtype.DType, unsafePtr unsafe.Pointer, length int) (any, error) {
	switch dt {
	case dtype.Int64:
		return unsafe.Slice((*int64)(unsafePtr), length), nil
	case dtype.Int32:
		return unsafe.Slice((*int32)(unsafePtr), length), nil
	case dtype.Int16:
		return unsafe.Slice((*int16)(unsafePtr), length), nil
	case dtype.Int8:
		return unsafe.Slice((*int8)(unsafePtr), length), nil
	case dtype.Uint64:
		return unsafe.Slice((*uint64)(unsafePtr), length), nil
	case dtype.Uint32:
		return unsafe.Slice((*uint32)(unsafePtr), length), nil
	case dtype.Uint16:
		return unsafe.Slice((*uint16)(unsafePtr), length), nil
	case dtype.Uint8:
		return unsafe.Slice((*uint8)(unsafePtr), length), nil
	case dtype.Bool:
		return unsafe.Slice((*bool)(unsafePtr), length), nil
	case dtype.Float32:
		return unsafe.Slice((*float32)(unsafePtr), length), nil
	case dtype.Float64:
		return unsafe.Slice((*float64)(unsafePtr), length), nil
	default:
		return nil, errors.Errorf("unknown dtype %q (%d) in UnsafeSliceForDType", dt, dt)
	}
}

// CastAsDType casts a numeric value to the Go type corresponding to dt. If
// value is a (possibly multi-level) slice, it recursively allocates and
// casts a new slice of the same shape.
func CastAsDType(value any, dt dtype.DType) any {
	typeOf := reflect.TypeOf(value)
	valueOf := reflect.ValueOf(value)
	newTypeOf := typeForSliceDType(typeOf, dt)
	if typeOf.Kind() != reflect.Slice && typeOf.Kind() != reflect.Array {
		if dt == dtype.Bool {
			return !valueOf.IsZero()
		}
		return valueOf.Convert(newTypeOf).Interface()
	}

	newValueOf := reflect.MakeSlice(newTypeOf, valueOf.Len(), valueOf.Len())
	for ii := 0; ii < valueOf.Len(); ii++ {
		elem := CastAsDType(valueOf.Index(ii).Interface(), dt)
		newValueOf.Index(ii).Set(reflect.ValueOf(elem))
	}
	return newValueOf.Interface()
}

// typeForSliceDType recursively converts a type that is a (multi-dimension)
// slice of some type to the same shape of slices over dt's Go type.
// Arrays are converted to slices.
func typeForSliceDType(valueType reflect.Type, dt dtype.DType) reflect.Type {
	if valueType.Kind() != reflect.Slice && valueType.Kind() != reflect.Array {
		return dt.GoType()
	}
	subType := typeForSliceDType(valueType.Elem(), dt)
	return reflect.SliceOf(subType)
}
