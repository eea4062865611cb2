package dtype

import "github.com/sebffischer/gotensor/errs"

// SafeCastAllowed reports whether from can be converted to to without ever
// losing information, per the static safe-cast lattice of spec §4.C:
//
//	bool -> anything
//	intN -> intM, uintN -> uintM for M >= N (same signedness, widening)
//	uintN -> int(2N) and any wider signed type
//	int8/uint8/int16/uint16 -> float32
//	int8/uint8/int16/uint16/int32/uint32 -> float64
//	int64/uint64 -> float64
//	float32 -> float64
//
// This lattice is a static approximation (matching NumPy's can_cast 'safe'
// rule): it does not itself run a conversion, so it cannot observe a runtime
// value. In particular int64/uint64 -> float64 is deemed safe even though a
// specific large magnitude value could round; per spec this is a property of
// the dtype pair, not of any one value.
func SafeCastAllowed(from, to DType) bool {
	if !from.Ok() || !to.Ok() {
		return false
	}
	if from == to || from == Bool {
		return true
	}
	if from.IsFloat() {
		return from == Float32 && to == Float64
	}
	if to.IsFloat() {
		if to == Float32 {
			return isNarrowInteger(from)
		}
		return true // every integer dtype safely casts to float64 per the lattice above.
	}
	// Both from and to are non-bool integer dtypes.
	if from.Signed() == to.Signed() {
		return to.ByteSize() >= from.ByteSize()
	}
	if !from.Signed() && to.Signed() {
		return to.ByteSize() >= 2*from.ByteSize()
	}
	return false // signed -> unsigned is never in the safe lattice.
}

func isNarrowInteger(dt DType) bool {
	switch dt {
	case Int8, Uint8, Int16, Uint16:
		return true
	default:
		return false
	}
}

// SafeCast converts value from one dtype to another, refusing up front any
// pair SafeCastAllowed rejects, then performing the conversion under
// StrictPolicy (a safe cast should never need to clamp, wrap or truncate).
func SafeCast(value any, from, to DType) (any, error) {
	if !SafeCastAllowed(from, to) {
		return nil, newSafeCastErr(from, to)
	}
	result, _, err := Convert(value, from, to, StrictPolicy())
	return result, err
}

// WouldBeLossy reports whether converting value from one dtype to another
// under StrictPolicy would fail -- i.e. whether this specific value, not
// just the dtype pair, would lose information.
func WouldBeLossy(value any, from, to DType) bool {
	_, _, err := Convert(value, from, to, StrictPolicy())
	return err != nil
}

func newSafeCastErr(from, to DType) error {
	return errs.DtypeValidationErr(
		map[string]any{"from": from.String(), "to": to.String()},
		"no value-independent safe cast exists from %s to %s", from, to,
	)
}
