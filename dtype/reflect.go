package dtype

import "reflect"

// Number constrains the eleven dtypes' Go-native numeric element types (bool
// is deliberately excluded: FromGenericsType/Scalar[T] callers want a single
// scalar numeric type, and Go's generic type system has no way to write a
// constraint that also covers bool cleanly alongside numeric widening).
type Number interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

var goTypes = [numDTypes]reflect.Type{
	Bool:    reflect.TypeOf(false),
	Int8:    reflect.TypeOf(int8(0)),
	Uint8:   reflect.TypeOf(uint8(0)),
	Int16:   reflect.TypeOf(int16(0)),
	Uint16:  reflect.TypeOf(uint16(0)),
	Int32:   reflect.TypeOf(int32(0)),
	Uint32:  reflect.TypeOf(uint32(0)),
	Int64:   reflect.TypeOf(int64(0)),
	Uint64:  reflect.TypeOf(uint64(0)),
	Float32: reflect.TypeOf(float32(0)),
	Float64: reflect.TypeOf(float64(0)),
}

// GoType returns the reflect.Type backing dt's canonical Go representation,
// or nil for InvalidDType.
func (dt DType) GoType() reflect.Type {
	if !dt.Ok() {
		return nil
	}
	return goTypes[dt]
}

// FromGoType resolves the dtype whose canonical Go representation is t, or
// InvalidDType if t isn't one of the eleven.
func FromGoType(t reflect.Type) DType {
	for dt := Bool; dt < numDTypes; dt++ {
		if goTypes[dt] == t {
			return dt
		}
	}
	return InvalidDType
}

// FromGenericsType resolves the dtype for a generic numeric type parameter,
// e.g. FromGenericsType[int32]() == Int32.
func FromGenericsType[T Number]() DType {
	var zero T
	return FromGoType(reflect.TypeOf(zero))
}
