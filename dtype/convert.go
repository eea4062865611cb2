package dtype

import (
	"fmt"
	"math"
	"math/big"

	"github.com/pkg/errors"

	"github.com/sebffischer/gotensor/errs"
)

// isBigintKind reports whether dt's canonical Go representation is *big.Int
// rather than a plain sized Go numeric type. This mirrors how the original
// typed-tensor library backs Int64/Uint64 with a JS bigint (since a JS
// Number cannot hold 64-bit integers exactly) while every narrower integer
// and both float dtypes are backed by a plain JS number.
func isBigintKind(dt DType) bool { return dt == Int64 || dt == Uint64 }

// Convert converts value (of dtype from) to dtype to under policy, per the
// source/target value-kind matrix in spec §4.C. It returns the converted
// value (typed as to's canonical Go representation), any warnings
// (non-fatal notices accompanying a successful permissive conversion), or an
// error if the policy forbids what the conversion would otherwise do.
func Convert(value any, from, to DType, policy Policy) (any, []string, error) {
	if !from.Ok() || !to.Ok() {
		return nil, nil, errors.Errorf("dtype: Convert: invalid dtype(s) from=%s to=%s", from, to)
	}
	if from == to {
		return value, nil, nil
	}

	switch {
	case from == Bool:
		return convertFromBool(value, to)
	case to == Bool:
		return convertToBool(value, from, policy)
	case isBigintKind(from) && isBigintKind(to):
		return convertBigToBig(value, from, to, policy)
	case isBigintKind(from):
		return convertBigToNumber(value, from, to, policy)
	case isBigintKind(to):
		return convertNumberToBig(value, from, to, policy)
	default:
		return convertNumberToNumber(value, from, to, policy)
	}
}

// ConvertArray maps Convert element-wise. It fails on the first element that
// fails, otherwise returns the fully converted slice plus all warnings, each
// prefixed with its element index.
func ConvertArray(values []any, from, to DType, policy Policy) ([]any, []string, error) {
	out := make([]any, len(values))
	var warnings []string
	for i, v := range values {
		converted, warns, err := Convert(v, from, to, policy)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "element %d", i)
		}
		out[i] = converted
		for _, w := range warns {
			warnings = append(warnings, fmt.Sprintf("element %d: %s", i, w))
		}
	}
	return out, warnings, nil
}

// --- bool edges ---------------------------------------------------------

func convertFromBool(value any, to DType) (any, []string, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, nil, errors.Errorf("dtype: convertFromBool: value %v is not a bool", value)
	}
	var f float64
	if b {
		f = 1
	}
	return castNumberToDType(f, to), nil, nil
}

func convertToBool(value any, from DType, policy Policy) (any, []string, error) {
	if isBigintKind(from) {
		bi, err := asBigInt(value)
		if err != nil {
			return nil, nil, err
		}
		return bi.Sign() != 0, nil, nil
	}
	f, err := asFloat64Checked(value)
	if err != nil {
		return nil, nil, err
	}
	if math.IsNaN(f) {
		if policy.NaNHandling == NaNError {
			return nil, nil, convSpecialValueErr(from, Bool, f, "NaN cannot convert to bool under strict policy")
		}
		return true, nil, nil // NumPy/PyTorch rule: any non-finite value is truthy.
	}
	if math.IsInf(f, 0) {
		if policy.InfinityHandling == InfinityError {
			return nil, nil, convSpecialValueErr(from, Bool, f, "infinity cannot convert to bool under strict policy")
		}
		return true, nil, nil
	}
	return f != 0, nil, nil
}

// --- number <-> number (neither side is Int64/Uint64) -------------------

func convertNumberToNumber(value any, from, to DType, policy Policy) (any, []string, error) {
	f, err := asFloat64Checked(value)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string

	if nf, warn, err := handleNonFinite(f, from, to, policy); err != nil {
		return nil, nil, err
	} else if warn != "" || math.IsNaN(f) || math.IsInf(f, 0) {
		f = nf
		if warn != "" {
			warnings = append(warnings, warn)
		}
	}

	if to.IsInteger() && f != math.Trunc(f) {
		if !policy.AllowPrecisionLoss {
			return nil, nil, convPrecisionLossErr(from, to, f, fmt.Sprintf("non-integer value %v cannot convert to %s under strict policy", f, to))
		}
		truncated := math.Trunc(f)
		warnings = append(warnings, fmt.Sprintf("precision loss: %v truncated to %v", f, truncated))
		f = truncated
	}

	if to == Float32 {
		v32 := float32(f)
		if float64(v32) != f {
			if !policy.AllowPrecisionLoss {
				return nil, nil, convPrecisionLossErr(from, to, f, fmt.Sprintf("value %v loses precision converting to float32", f))
			}
			warnings = append(warnings, fmt.Sprintf("precision loss: %v rounded to %v converting to float32", f, v32))
		}
		return v32, warnings, nil
	}
	if to == Float64 {
		return f, warnings, nil
	}

	result, overflowed, err := applyIntegerOverflow(f, to, policy)
	if err != nil {
		return nil, nil, convOverflowErr(from, to, f, err.Error())
	}
	if overflowed != "" {
		warnings = append(warnings, overflowed)
	}
	return result, warnings, nil
}

// handleNonFinite resolves NaN/+-Inf per policy when converting towards an
// integer target representation (int target or bigint target). It is a
// no-op (returns f unchanged, no warning) when f is finite.
func handleNonFinite(f float64, from, to DType, policy Policy) (float64, string, error) {
	if !to.IsInteger() {
		return f, "", nil // float target accepts NaN/Inf as-is.
	}
	min, max := to.Range()
	if math.IsNaN(f) {
		switch policy.NaNHandling {
		case NaNError:
			return 0, "", convSpecialValueErr(from, to, f, "NaN cannot convert to an integer dtype under strict policy")
		default:
			return 0, "NaN converted to 0", nil
		}
	}
	if math.IsInf(f, 1) {
		if policy.InfinityHandling == InfinityError {
			return 0, "", convSpecialValueErr(from, to, f, "+Inf cannot convert to an integer dtype under strict policy")
		}
		return max, fmt.Sprintf("+Inf clamped to %v", max), nil
	}
	if math.IsInf(f, -1) {
		if policy.InfinityHandling == InfinityError {
			return 0, "", convSpecialValueErr(from, to, f, "-Inf cannot convert to an integer dtype under strict policy")
		}
		return min, fmt.Sprintf("-Inf clamped to %v", min), nil
	}
	return f, "", nil
}

// applyIntegerOverflow range-checks a (by now integral) float64 against to's
// range and applies policy.OverflowHandling. Returns the typed result.
func applyIntegerOverflow(f float64, to DType, policy Policy) (any, string, error) {
	min, max := to.Range()
	if f >= min && f <= max {
		return castNumberToDType(f, to), "", nil
	}
	if !policy.AllowOverflow || policy.OverflowHandling == OverflowError {
		return nil, "", errors.Errorf("value %v out of range [%v, %v] for %s", f, min, max, to)
	}
	switch policy.OverflowHandling {
	case OverflowClamp:
		clamped := f
		if f < min {
			clamped = min
		} else if f > max {
			clamped = max
		}
		return castNumberToDType(clamped, to), fmt.Sprintf("overflow: %v clamped to %v", f, clamped), nil
	case OverflowWrap:
		return wrapToDType(f, to), fmt.Sprintf("overflow: %v wrapped", f), nil
	default:
		return nil, "", errors.Errorf("value %v out of range [%v, %v] for %s", f, min, max, to)
	}
}

// --- number <-> bigint (Int64/Uint64 on one side) ------------------------

func convertNumberToBig(value any, from, to DType, policy Policy) (any, []string, error) {
	f, err := asFloat64Checked(value)
	if err != nil {
		return nil, nil, err
	}
	var warnings []string

	if math.IsNaN(f) {
		if policy.NaNHandling == NaNError {
			return nil, nil, convSpecialValueErr(from, to, f, "NaN cannot convert to an integer dtype under strict policy")
		}
		return bigForDType(big.NewInt(0), to), append(warnings, "NaN converted to 0"), nil
	}
	if math.IsInf(f, 0) {
		if policy.InfinityHandling == InfinityError {
			return nil, nil, convSpecialValueErr(from, to, f, "infinity cannot convert to an integer dtype under strict policy")
		}
		min, max := to.Range()
		bound := max
		if math.IsInf(f, -1) {
			bound = min
		}
		bi, _ := big.NewFloat(bound).Int(nil)
		return bigForDType(bi, to), append(warnings, fmt.Sprintf("infinity clamped to %v", bound)), nil
	}
	if f != math.Trunc(f) {
		if !policy.AllowPrecisionLoss {
			return nil, nil, convPrecisionLossErr(from, to, f, fmt.Sprintf("non-integer value %v cannot convert to %s under strict policy", f, to))
		}
		truncated := math.Trunc(f)
		warnings = append(warnings, fmt.Sprintf("precision loss: %v truncated to %v", f, truncated))
		f = truncated
	}

	bi, _ := big.NewFloat(f).Int(nil)
	result, overflowWarn, err := applyBigOverflow(bi, to, policy)
	if err != nil {
		return nil, nil, convOverflowErr(from, to, f, err.Error())
	}
	if overflowWarn != "" {
		warnings = append(warnings, overflowWarn)
	}
	return result, warnings, nil
}

func convertBigToNumber(value any, from, to DType, policy Policy) (any, []string, error) {
	bi, err := asBigInt(value)
	if err != nil {
		return nil, nil, err
	}
	var warnings []string

	const safeIntegerBound = 1 << 53
	if bi.CmpAbs(big.NewInt(safeIntegerBound)) > 0 {
		if !policy.AllowPrecisionLoss {
			return nil, nil, convPrecisionLossErr(from, to, bi, fmt.Sprintf("big integer %v exceeds the safe-integer range for a number representation", bi))
		}
		warnings = append(warnings, fmt.Sprintf("precision loss: big integer %v exceeds the safe-integer range", bi))
	}

	f := bigIntToFloat64(bi)
	if to.IsFloat() {
		if to == Float32 {
			return float32(f), warnings, nil
		}
		return f, warnings, nil
	}
	if f != math.Trunc(f) {
		// Should not happen for an integer source, defensive only.
		f = math.Trunc(f)
	}
	result, overflowWarn, err := applyIntegerOverflow(f, to, policy)
	if err != nil {
		return nil, nil, convOverflowErr(from, to, f, err.Error())
	}
	if overflowWarn != "" {
		warnings = append(warnings, overflowWarn)
	}
	return result, warnings, nil
}

func convertBigToBig(value any, from, to DType, policy Policy) (any, []string, error) {
	bi, err := asBigInt(value)
	if err != nil {
		return nil, nil, err
	}
	result, warn, err := applyBigOverflow(bi, to, policy)
	if err != nil {
		return nil, nil, convOverflowErr(from, to, bi, err.Error())
	}
	var warnings []string
	if warn != "" {
		warnings = append(warnings, warn)
	}
	return result, warnings, nil
}

// applyBigOverflow range-checks bi against to's range (Int64 or Uint64) and
// applies policy.OverflowHandling; wrap uses ((v - min) mod range) + min, as
// spec §4.C mandates for big integers.
func applyBigOverflow(bi *big.Int, to DType, policy Policy) (any, string, error) {
	min, max := to.Range()
	minBI := bigFromFloat(min)
	maxBI := bigFromFloat(max)
	if to == Uint64 {
		// math.MaxUint64 is not exactly representable as float64; use the
		// exact bound instead of the lossy Range() value.
		maxBI = new(big.Int).SetUint64(^uint64(0))
	}
	if to == Int64 {
		// Likewise math.MaxInt64 rounds up to 2^63 as float64.
		maxBI = big.NewInt(math.MaxInt64)
	}

	if bi.Cmp(minBI) >= 0 && bi.Cmp(maxBI) <= 0 {
		return bigForDType(bi, to), "", nil
	}
	if !policy.AllowOverflow || policy.OverflowHandling == OverflowError {
		return nil, "", errors.Errorf("big integer %v out of range [%v, %v] for %s", bi, minBI, maxBI, to)
	}
	switch policy.OverflowHandling {
	case OverflowClamp:
		clamped := bi
		if bi.Cmp(minBI) < 0 {
			clamped = minBI
		} else if bi.Cmp(maxBI) > 0 {
			clamped = maxBI
		}
		return bigForDType(clamped, to), fmt.Sprintf("overflow: %v clamped to %v", bi, clamped), nil
	case OverflowWrap:
		rng := new(big.Int).Add(new(big.Int).Sub(maxBI, minBI), big.NewInt(1))
		wrapped := new(big.Int).Sub(bi, minBI)
		wrapped.Mod(wrapped, rng)
		wrapped.Add(wrapped, minBI)
		return bigForDType(wrapped, to), fmt.Sprintf("overflow: %v wrapped to %v", bi, wrapped), nil
	default:
		return nil, "", errors.Errorf("big integer %v out of range [%v, %v] for %s", bi, minBI, maxBI, to)
	}
}

// --- helpers --------------------------------------------------------------

func asFloat64Checked(value any) (float64, error) {
	if f, ok := asFloat64(value); ok {
		return f, nil
	}
	return 0, errors.Errorf("dtype: Convert: value %v (%T) is not a number", value, value)
}

func asBigInt(value any) (*big.Int, error) {
	switch x := value.(type) {
	case *big.Int:
		return x, nil
	case int64:
		return big.NewInt(x), nil
	case uint64:
		return new(big.Int).SetUint64(x), nil
	default:
		f, ok := asFloat64(value)
		if !ok {
			return nil, errors.Errorf("dtype: Convert: value %v (%T) is not a big integer", value, value)
		}
		bi, _ := big.NewFloat(f).Int(nil)
		return bi, nil
	}
}

func bigFromFloat(f float64) *big.Int {
	bi, _ := big.NewFloat(f).Int(nil)
	return bi
}

func bigIntToFloat64(bi *big.Int) float64 {
	f, _ := new(big.Float).SetInt(bi).Float64()
	return f
}

func bigForDType(bi *big.Int, dt DType) any {
	if dt == Uint64 {
		return bi.Uint64()
	}
	return bi.Int64()
}

// castNumberToDType converts an in-range, integral-if-needed float64 into
// to's canonical Go representation.
func castNumberToDType(f float64, dt DType) any {
	switch dt {
	case Bool:
		return f != 0
	case Int8:
		return int8(int64(f))
	case Uint8:
		return uint8(int64(f))
	case Int16:
		return int16(int64(f))
	case Uint16:
		return uint16(int64(f))
	case Int32:
		return int32(int64(f))
	case Uint32:
		return uint32(int64(f))
	case Int64:
		return int64(f)
	case Uint64:
		return uint64(f)
	case Float32:
		return float32(f)
	case Float64:
		return f
	default:
		return f
	}
}

// wrapToDType wraps an out-of-range float64 into to's width using Go's
// native narrowing-conversion semantics, which already implement
// two's-complement wrap for signed targets and modulo-2^n wrap for unsigned
// targets -- exactly the typed-array storage semantics spec §4.C asks for.
func wrapToDType(f float64, dt DType) any {
	v := int64(f)
	switch dt {
	case Int8:
		return int8(v)
	case Uint8:
		return uint8(v)
	case Int16:
		return int16(v)
	case Uint16:
		return uint16(v)
	case Int32:
		return int32(v)
	case Uint32:
		return uint32(v)
	default:
		return v
	}
}

// --- error constructors ---------------------------------------------------

func convContext(from, to DType, value any) map[string]any {
	return map[string]any{"from": from.String(), "to": to.String(), "value": fmt.Sprintf("%v", value)}
}

func convSpecialValueErr(from, to DType, value any, message string) error {
	return errs.ConversionSpecialValueErr(convContext(from, to, value), "%s", message)
}

func convPrecisionLossErr(from, to DType, value any, message string) error {
	return errs.ConversionPrecisionLossErr(convContext(from, to, value), "%s", message)
}

func convOverflowErr(from, to DType, value any, message string) error {
	return errs.ConversionOverflowErr(convContext(from, to, value), "%s", message)
}
