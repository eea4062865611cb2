// Package atype defines ArrayType and associated tools.
//
// ArrayType represents the array type (dtype and axes) of a tensor, before
// any storage (strides, offset, layout) enters the picture -- see the shape
// package for the full storage descriptor built on top of ArrayType.
//
// ## Glossary
//
//   - NumAxes: number of axes of an Array.
//   - Axis: is the axis of an Array (plural: axes).
//   - AxisLength: the length of an axis in an Array. See the example below.
//     The length of an axis can also be 0.
//   - DType: the data type of the unit element in an array. See the dtype package for possible values.
//   - Scalar: Refers to an Array with 0 axes.
//
// Example: The multi-dimensional array `[][]int32{{0, 1, 2}, {3, 4, 5}}` if converted to an Array
// would have array type `(int32)[2 3]`. We say it has 2 axes (num_axes=2), axis 0 has
// length 2, and axis 1 has length 3. This array type could be created with
// `atype.Make(int32, 2, 3)`.
//
// ## Asserts
//
// One delicate part of operating on tensors is keeping tabs on their array
// type -- there's no compile-time checking of shapes, so validation only
// happens at runtime. To facilitate that, and to serve as code documentation,
// this package provides two variations of _assert_ functionality. Examples:
//
// AssertNumAxes and AssertAxisLengths check that the number of axes and axis lengths of the given
// object (that has an `ArrayType` method) match, otherwise it panics. The `-1` means
// the axis length is unchecked (it can be anything).
//
//	func matmulOutputType(a, b ArrayType) ArrayType {
//		atype.AssertNumAxes(a, 2)
//		atype.AssertNumAxes(b, 2)
//		atype.AssertAxisLengths(b, a.AxisLengths[1], -1)
//		return Make(a.DType, a.AxisLengths[0], b.AxisLengths[1])
//	}
//
// If you don't want to panic, use the `Check*` variants, which return an error instead.
package atype

import (
	"encoding/gob"
	"fmt"
	"reflect"
	"slices"

	"github.com/pkg/errors"
	"github.com/sebffischer/gotensor/dtype"
)

// ArrayType represents the array type (dtype and axes) of either an Array or from some computation node
// that wraps an Array (e.g., when building a Graph).
//
// Use Make to create a new array type. See examples in the package documentation.
type ArrayType struct {
	// DType is the data type of the unit element in a tensor.
	DType dtype.DType

	// AxisLengths is the length of each axis. Its length determines the number of axes.
	AxisLengths []int
}

// Make returns an ArrayType structure filled with the values given.
func Make(dtype dtype.DType, axisLengths ...int) ArrayType {
	at := ArrayType{AxisLengths: slices.Clone(axisLengths), DType: dtype}
	for _, length := range axisLengths {
		if length < 0 {
			panic(errors.Errorf("atype.Make(%s): cannot create an array type with an axis with length < 0", at))
		}
	}
	return at
}

// Scalar returns a scalar ArrayType for the given type.
func Scalar[T dtype.Number]() ArrayType {
	return ArrayType{DType: dtype.FromGenericsType[T]()}
}

// Invalid returns an invalid array type.
//
// Invalid().Ok() == false.
func Invalid() ArrayType {
	return ArrayType{DType: dtype.InvalidDType}
}

// Ok returns whether this is a valid ArrayType. A "zero" array type, that is just instantiating it with ArrayType{} will be invalid.
func (at ArrayType) Ok() bool { return at.DType != dtype.InvalidDType }

// NumAxes returns the number of axes of the array.
func (at ArrayType) NumAxes() int { return len(at.AxisLengths) }

// IsScalar returns whether the array type represents a scalar, that is there are no axes.
func (at ArrayType) IsScalar() bool { return at.Ok() && at.NumAxes() == 0 }

// AxisLength returns the length of the given axis. axis can take negative numbers, in which
// case it counts as starting from the end -- so axis=-1 refers to the last axis.
// Like with a slice indexing, it panics for an out-of-bound axis.
func (at ArrayType) AxisLength(axis int) int {
	adjustedAxis := axis
	if adjustedAxis < 0 {
		adjustedAxis += at.NumAxes()
	}
	if adjustedAxis < 0 || adjustedAxis >= at.NumAxes() {
		panic(errors.Errorf("ArrayType.AxisLength(%d) out-of-bounds for NumAxes %d (arrayType=%s)", axis, at.NumAxes(), at))
	}
	return at.AxisLengths[adjustedAxis]
}

func (at ArrayType) ArrayType() ArrayType { return at }

// String implements stringer, pretty-prints the array type.
func (at ArrayType) String() string {
	if at.NumAxes() == 0 {
		return fmt.Sprintf("(%s)", at.DType)
	}
	return fmt.Sprintf("(%s)%v", at.DType, at.AxisLengths)
}

// Size returns the number of elements (not bytes) for this array type. It's the product of all axis lengths.
//
// For the number of bytes used to store an array with this array type, see ArrayType.Memory.
// TODO: Rename to numElemenets
func (at ArrayType) Size() (size int) {
	size = 1
	for _, length := range at.AxisLengths {
		size *= length
	}
	return
}

// IsZeroSize returns whether any of the axis lengths is zero, in which case
// it's an empty array type, with no data attached to it.
//
// Notice scalars are not zero in size -- they have size one, but zero axes.
// TODO: Rename to HasZeroElements()
func (at ArrayType) IsZeroSize() bool {
	for _, length := range at.AxisLengths {
		if length == 0 {
			return true
		}
	}
	return false

}

// Memory returns the memory used to store an array of the given array type, the same as the size in bytes.
func (at ArrayType) Memory() uintptr {
	return uintptr(at.DType.ByteSize()) * uintptr(at.Size())
}

// Equal compares two array types for equality: dtype and axis lengths are compared.
func (at ArrayType) Equal(other ArrayType) bool {
	if at.DType != other.DType {
		return false
	}
	if at.NumAxes() != other.NumAxes() {
		return false
	}
	if at.IsScalar() {
		return true
	}
	// For normal array types just compare axis lengths.
	return slices.Equal(at.AxisLengths, other.AxisLengths)
}

// EqualAxes compares two array types for equality of axis lengths. Dtypes can be different.
func (at ArrayType) EqualAxes(other ArrayType) bool {
	if at.NumAxes() != other.NumAxes() {
		return false
	}
	if at.IsScalar() {
		return true
	}
	// For normal array types just compare axis lengths.
	return slices.Equal(at.AxisLengths, other.AxisLengths)
}

// Clone returns a new deep copy of the array type.
func (at ArrayType) Clone() (cloned ArrayType) {
	cloned.DType = at.DType
	cloned.AxisLengths = slices.Clone(at.AxisLengths)
	return
}

// GobSerialize serializes the array type in binary format.
func (at ArrayType) GobSerialize(encoder *gob.Encoder) (err error) {
	enc := func(e any) {
		if err != nil {
			return
		}
		err = encoder.Encode(e)
		if err != nil {
			err = errors.Wrapf(err, "failed to serialize ArrayType %s", at)
		}
	}
	enc(at.DType)
	enc(at.AxisLengths)
	return
}

// GobDeserialize deserializes an ArrayType. Returns new ArrayType or an error.
func GobDeserialize(decoder *gob.Decoder) (at ArrayType, err error) {
	dec := func(data any) {
		if err != nil {
			return
		}
		err = decoder.Decode(data)
		if err != nil {
			err = errors.Wrapf(err, "failed to deserialize ArrayType")
		}
	}
	dec(&at.DType)
	dec(&at.AxisLengths)
	return
}

// ConcatenateAxes of two array types. The resulting number of axes is the sum of both numbers of axes. They must
// have the same dtype. If any of them is a scalar, the resulting array type will be a copy of the other.
// TODO: Not sure how much I like this name
func ConcatenateAxes(at1, at2 ArrayType) (result ArrayType) {
	if at1.DType == dtype.InvalidDType || at2.DType == dtype.InvalidDType {
		return
	}
	if at1.DType != at2.DType {
		return
	}
	if at1.IsScalar() {
		return at2.Clone()
	} else if at2.IsScalar() {
		return at1.Clone()
	}
	result.DType = at1.DType
	result.AxisLengths = make([]int, at1.NumAxes()+at2.NumAxes())
	copy(result.AxisLengths, at1.AxisLengths)
	copy(result.AxisLengths[at1.NumAxes():], at2.AxisLengths)
	return
}

// FromAnyValue attempts to convert a Go "any" value to its expected array type.
// Accepted values are plain-old-data (POD) types (ints, floats), slices (or multiple level of slices) of POD.
//
// It returns the expected array type.
//
// Example:
//
//	arrayType := atype.FromAnyValue([][]float64{{0, 0}}) // Returns array type (float64)[1 2]
func FromAnyValue(v any) (arrayType ArrayType, err error) {
	err = arrayTypeForAnyValueRecursive(&arrayType, reflect.ValueOf(v), reflect.TypeOf(v))
	return
}

func arrayTypeForAnyValueRecursive(arrayType *ArrayType, v reflect.Value, t reflect.Type) error {
	if t.Kind() != reflect.Slice {
		// If it's not a slice, it must be one of the supported scalar types.
		arrayType.DType = dtype.FromGoType(t)
		if arrayType.DType == dtype.InvalidDType {
			return errors.Errorf("cannot convert type %q to a valid backend array type (maybe type not supported yet?)", t)
		}
		return nil
	}

	// Slice: recurse into its element type (again slices or a supported POD).
	t = t.Elem()
	arrayType.AxisLengths = append(arrayType.AxisLengths, v.Len())
	arrayTypePrefix := arrayType.Clone()

	// The first element is the reference
	if v.Len() == 0 {
		return errors.Errorf("value with empty slice not valid for array type conversion: %T: %v -- it wouldn't be possible to figure out the inner axis lengths", v.Interface(), v)
	}
	v0 := v.Index(0)
	err := arrayTypeForAnyValueRecursive(arrayType, v0, t)
	if err != nil {
		return err
	}

	// Test that other elements have the same array type as the first one.
	for ii := 1; ii < v.Len(); ii++ {
		arrayTypeTest := arrayTypePrefix.Clone()
		err = arrayTypeForAnyValueRecursive(&arrayTypeTest, v.Index(ii), t)
		if err != nil {
			return err
		}
		if !arrayType.Equal(arrayTypeTest) {
			return fmt.Errorf("sub-slices have irregular array types, found array types %q, and %q", arrayType, arrayTypeTest)
		}
	}
	return nil
}
