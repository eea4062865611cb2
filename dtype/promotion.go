package dtype

import (
	"math"
	"math/big"

	"github.com/pkg/errors"
)

// promotionTable is the precomputed symmetric 11x11 lookup described in
// spec §4.B. It is built once from promotePair (the rule-driven generator
// mandated by the design note in §9) and validated for symmetry,
// self-identity and membership in init -- a violation is a fatal
// initialization error, since nothing downstream can recover from a broken
// promotion table.
var promotionTable [numDTypes][numDTypes]DType

func init() {
	for a := Bool; a < numDTypes; a++ {
		for b := Bool; b < numDTypes; b++ {
			promotionTable[a][b] = promotePair(a, b)
		}
	}
	validatePromotionTable()
}

func validatePromotionTable() {
	for a := Bool; a < numDTypes; a++ {
		for b := Bool; b < numDTypes; b++ {
			result := promotionTable[a][b]
			if !result.Ok() {
				panic(errors.Errorf("dtype: promotion table membership violated: promote(%s, %s) = %s is not a valid dtype", a, b, result))
			}
			if promotionTable[b][a] != result {
				panic(errors.Errorf("dtype: promotion table asymmetric: promote(%s, %s) = %s but promote(%s, %s) = %s", a, b, result, b, a, promotionTable[b][a]))
			}
		}
		if promotionTable[a][a] != a {
			panic(errors.Errorf("dtype: promotion table not self-identical: promote(%s, %s) = %s", a, a, promotionTable[a][a]))
		}
	}
}

// promotePair derives the promoted dtype for one (a, b) pair by applying the
// rules of spec §4.B directly, rather than hand-listing all 55 unordered
// pairs. The table above is this function tabulated and validated once.
func promotePair(a, b DType) DType {
	if a == b {
		return a
	}
	if a == Bool {
		return b
	}
	if b == Bool {
		return a
	}

	aFloat, bFloat := a.IsFloat(), b.IsFloat()
	switch {
	case !aFloat && !bFloat:
		return promoteIntegers(a, b)
	case aFloat && bFloat:
		return Float64 // the only distinct pair left is (Float32, Float64).
	default:
		intDT, floatDT := a, b
		if aFloat {
			intDT, floatDT = b, a
		}
		return promoteIntFloat(intDT, floatDT)
	}
}

// promoteIntegers promotes two distinct non-bool integer dtypes.
func promoteIntegers(a, b DType) DType {
	if a.Signed() == b.Signed() {
		if a.ByteSize() >= b.ByteSize() {
			return a
		}
		return b
	}

	signedDT, unsignedDT := a, b
	if !a.Signed() {
		signedDT, unsignedDT = b, a
	}

	// Any uint64/int64 mixture: no integer type represents both ranges.
	if unsignedDT == Uint64 || signedDT == Int64 && unsignedDT == Uint64 {
		return Float64
	}

	required := smallestSignedHolding(unsignedDT)
	if signedDT.ByteSize() >= required.ByteSize() {
		return signedDT
	}
	return required
}

// smallestSignedHolding returns the narrowest signed integer dtype whose
// range fully contains u's range.
func smallestSignedHolding(u DType) DType {
	_, umax := u.Range()
	for _, candidate := range [...]DType{Int16, Int32, Int64} {
		_, cmax := candidate.Range()
		if cmax >= umax {
			return candidate
		}
	}
	return Int64
}

// promoteIntFloat promotes a non-bool integer dtype against a float dtype.
func promoteIntFloat(intDT, floatDT DType) DType {
	if floatDT == Float64 {
		return Float64
	}
	// floatDT == Float32.
	switch intDT {
	case Int8, Uint8, Int16, Uint16:
		return Float32
	default: // Int32, Uint32, Int64, Uint64
		return Float64
	}
}

// Promote returns the common dtype for a binary operation between a and b,
// per the symmetric promotion table (spec §4.B).
func Promote(a, b DType) (DType, error) {
	if !a.Ok() || !b.Ok() {
		return InvalidDType, errors.Errorf("dtype: cannot promote invalid dtype(s) %s, %s", a, b)
	}
	return promotionTable[a][b], nil
}

// PromoteMany left-folds Promote over dtypes. Errors if dtypes is empty.
func PromoteMany(dtypes []DType) (DType, error) {
	if len(dtypes) == 0 {
		return InvalidDType, errors.New("dtype: PromoteMany requires at least one dtype")
	}
	result := dtypes[0]
	if !result.Ok() {
		return InvalidDType, errors.Errorf("dtype: cannot promote invalid dtype %s", result)
	}
	for _, dt := range dtypes[1:] {
		var err error
		result, err = Promote(result, dt)
		if err != nil {
			return InvalidDType, err
		}
	}
	return result, nil
}

// CanPromote reports whether a and b can be promoted. It is always true for
// any two valid dtypes in this system -- the promotion table is total.
func CanPromote(a, b DType) bool {
	return a.Ok() && b.Ok()
}

// CommonTypeOfValues infers the smallest dtype holding each value (via
// smallestHolderOf's per-value inference, not DefaultFor) and folds
// the results through Promote. Used by Tensor creation from nested data
// without an explicit dtype.
func CommonTypeOfValues(values []any) (DType, error) {
	if len(values) == 0 {
		return InvalidDType, errors.New("dtype: CommonTypeOfValues requires at least one value")
	}
	dtypes := make([]DType, len(values))
	for i, v := range values {
		dtypes[i] = smallestHolderOf(v)
	}
	return PromoteMany(dtypes)
}

// smallestHolderOf infers the smallest-width dtype that exactly represents
// v, per spec §4.B's value-inference sub-algorithm: per-value
// signed/unsigned tightness, float32 when round-trip-exact, else float64.
func smallestHolderOf(v any) DType {
	switch x := v.(type) {
	case bool:
		return Bool
	case *big.Int:
		if x.Sign() < 0 {
			return Int64
		}
		return Uint64
	case float32:
		return Float32
	case float64:
		return smallestHolderOfFloat(x)
	default:
		if f, ok := asFloat64(v); ok {
			return smallestHolderOfInt(f)
		}
		return Float64
	}
}

// smallestHolderOfFloat picks int tightness for integral values that fit an
// integer dtype's range, and the float32/float64 round-trip test otherwise
// -- this is how a value like Number.MAX_VALUE (integral but far outside any
// integer dtype's range) still resolves to Float64.

func smallestHolderOfFloat(v float64) DType {
	if !math.IsNaN(v) && !math.IsInf(v, 0) && v == math.Trunc(v) {
		if dt := smallestHolderOfInt(v); dt != Float64 {
			return dt
		}
	}
	if v == float64(float32(v)) {
		return Float32
	}
	return Float64
}

func smallestHolderOfInt(v float64) DType {
	order := [...]DType{Int8, Uint8, Int16, Uint16, Int32, Uint32, Int64, Uint64}
	for _, dt := range order {
		min, max := dt.Range()
		if v >= min && v <= max {
			return dt
		}
	}
	return Float64
}
