// Package dtype implements the numeric dtype registry: the eleven concrete
// scalar types a Tensor's storage can hold, their metadata, the symmetric
// promotion table between them, and the policy-driven conversion engine.
//
// Instances of DType are process-wide singletons identified by name; the
// promotion table is computed once at package init and validated for
// symmetry, self-identity and membership (failure is a fatal init error, per
// the startup-validator design in the promotion engine, see promotion.go).
package dtype

import "github.com/pkg/errors"

// DType identifies one of the eleven supported scalar element types.
//
// TODO: once a GPU/accelerator backend is added, widen this set the way
// gopjrt/gomlx do (float16, bfloat16, complex, fp8 variants); the eleven
// values below are exactly the set this module's Data Model commits to.
type DType int32

const (
	// InvalidDType is the zero value; never a valid tensor element type.
	InvalidDType DType = iota
	Bool
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64

	numDTypes // sentinel, not a real dtype
)

// Kind classifies how values of a dtype are represented in Go.
type Kind int8

const (
	// KindInvalid is the zero Kind, paired only with InvalidDType.
	KindInvalid Kind = iota
	// KindBoolean: a Go bool.
	KindBoolean
	// KindInteger: a fixed-width Go integer (signed or unsigned).
	KindInteger
	// KindFloat: a Go float32 or float64.
	KindFloat
)

// StorageKind identifies the flat backend storage-array family a dtype is
// physically encoded in. Bool and Uint8 intentionally share one StorageKind
// ("8-bit unsigned"): a raw backend buffer cannot distinguish them, which is
// why inferring a dtype back from a raw buffer always resolves to Uint8 (see
// StorageArrayKind and StorageArrayKindOf in registry.go).
type StorageKind int8

const (
	StorageInvalid StorageKind = iota
	Storage8Unsigned
	Storage8Signed
	Storage16Unsigned
	Storage16Signed
	Storage32Unsigned
	Storage32Signed
	Storage64Unsigned
	Storage64Signed
	Storage32Float
	Storage64Float
)

type meta struct {
	name        string
	byteSize    int
	signed      bool
	integer     bool
	kind        Kind
	storageKind StorageKind
	// min/max hold the numeric range as float64. This is exact for every
	// width except the Int64 and Uint64 maxima, which lose precision past
	// 2^53; callers needing the exact 64-bit bounds should special-case
	// dt == Int64 and dt == Uint64.
	min, max float64
	numpyTag string
}

var metas = [numDTypes]meta{
	InvalidDType: {name: "invalid"},
	Bool: {
		name: "bool", byteSize: 1, signed: false, integer: true,
		kind: KindBoolean, storageKind: Storage8Unsigned,
		min: 0, max: 1, numpyTag: "b1",
	},
	Int8: {
		name: "int8", byteSize: 1, signed: true, integer: true,
		kind: KindInteger, storageKind: Storage8Signed,
		min: -128, max: 127, numpyTag: "i1",
	},
	Uint8: {
		name: "uint8", byteSize: 1, signed: false, integer: true,
		kind: KindInteger, storageKind: Storage8Unsigned,
		min: 0, max: 255, numpyTag: "u1",
	},
	Int16: {
		name: "int16", byteSize: 2, signed: true, integer: true,
		kind: KindInteger, storageKind: Storage16Signed,
		min: -32768, max: 32767, numpyTag: "i2",
	},
	Uint16: {
		name: "uint16", byteSize: 2, signed: false, integer: true,
		kind: KindInteger, storageKind: Storage16Unsigned,
		min: 0, max: 65535, numpyTag: "u2",
	},
	Int32: {
		name: "int32", byteSize: 4, signed: true, integer: true,
		kind: KindInteger, storageKind: Storage32Signed,
		min: -2147483648, max: 2147483647, numpyTag: "i4",
	},
	Uint32: {
		name: "uint32", byteSize: 4, signed: false, integer: true,
		kind: KindInteger, storageKind: Storage32Unsigned,
		min: 0, max: 4294967295, numpyTag: "u4",
	},
	Int64: {
		name: "int64", byteSize: 8, signed: true, integer: true,
		kind: KindInteger, storageKind: Storage64Signed,
		min: -9223372036854775808, max: 9223372036854775807, numpyTag: "i8",
	},
	Uint64: {
		name: "uint64", byteSize: 8, signed: false, integer: true,
		kind: KindInteger, storageKind: Storage64Unsigned,
		min: 0, max: 18446744073709551615, numpyTag: "u8",
	},
	Float32: {
		name: "float32", byteSize: 4, signed: true, integer: false,
		kind: KindFloat, storageKind: Storage32Float,
		numpyTag: "f4",
	},
	Float64: {
		name: "float64", byteSize: 8, signed: true, integer: false,
		kind: KindFloat, storageKind: Storage64Float,
		numpyTag: "f8",
	},
}

// Ok reports whether dt is one of the eleven supported dtypes.
func (dt DType) Ok() bool { return dt > InvalidDType && dt < numDTypes }

// String implements fmt.Stringer, returning the canonical lower-case name.
func (dt DType) String() string {
	if !dt.Ok() {
		return "invalid"
	}
	return metas[dt].name
}

// ByteSize returns the number of bytes one element of dt occupies.
func (dt DType) ByteSize() int { return metas[dt].byteSize }

// Signed reports whether dt is a signed numeric type. Float types are signed.
func (dt DType) Signed() bool { return metas[dt].signed }

// IsInteger reports whether dt is bool or a fixed-width integer type.
func (dt DType) IsInteger() bool { return metas[dt].integer }

// IsFloat reports whether dt is float32 or float64.
func (dt DType) IsFloat() bool { return metas[dt].kind == KindFloat }

// IsBool reports whether dt is exactly Bool.
func (dt DType) IsBool() bool { return dt == Bool }

// Kind returns the value-kind of dt (boolean, integer, float).
func (dt DType) Kind() Kind { return metas[dt].kind }

// StorageKind returns the flat storage-array family backing dt.
func (dt DType) StorageKind() StorageKind { return metas[dt].storageKind }

// Range returns the inclusive [min, max] of values representable by dt.
// For Float32/Float64 the range is not meaningful for finiteness checks --
// floats additionally accept NaN/Inf, callers should special-case
// dt.IsFloat() rather than rely on Range for float dtypes.
func (dt DType) Range() (min, max float64) {
	m := metas[dt]
	return m.min, m.max
}

// NumpyTag returns dt's NumPy-compatible short tag ("i2", "u8", "f4", "b1"),
// used only for diagnostics -- never for wire encoding (the wire byte order
// is backend-defined, see the backend/cpu package).
func (dt DType) NumpyTag() string { return metas[dt].numpyTag }

// FromNumpyTag resolves a NumPy-style short tag back to a DType.
func FromNumpyTag(tag string) (DType, error) {
	for dt := Bool; dt < numDTypes; dt++ {
		if metas[dt].numpyTag == tag {
			return dt, nil
		}
	}
	return InvalidDType, errors.Errorf("dtype: unknown numpy tag %q", tag)
}
