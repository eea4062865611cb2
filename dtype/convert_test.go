package dtype

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvertIdentity(t *testing.T) {
	v, warnings, err := Convert(int32(5), Int32, Int32, StrictPolicy())
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, int32(5), v)
}

func TestConvertBoolEdges(t *testing.T) {
	v, _, err := Convert(true, Bool, Int32, StrictPolicy())
	require.NoError(t, err)
	require.Equal(t, int32(1), v)

	v, _, err = Convert(false, Bool, Float64, StrictPolicy())
	require.NoError(t, err)
	require.Equal(t, float64(0), v)

	v, _, err = Convert(int32(0), Int32, Bool, StrictPolicy())
	require.NoError(t, err)
	require.Equal(t, false, v)

	v, _, err = Convert(int32(7), Int32, Bool, StrictPolicy())
	require.NoError(t, err)
	require.Equal(t, true, v)
}

func TestConvertNonFiniteToBoolPermissive(t *testing.T) {
	v, _, err := Convert(math.NaN(), Float32, Bool, PermissivePolicy())
	require.NoError(t, err)
	require.Equal(t, true, v)

	v, _, err = Convert(math.Inf(1), Float32, Bool, PermissivePolicy())
	require.NoError(t, err)
	require.Equal(t, true, v)
}

func TestConvertNonFiniteToBoolStrict(t *testing.T) {
	_, _, err := Convert(math.NaN(), Float32, Bool, StrictPolicy())
	require.Error(t, err)
}

func TestConvertPrecisionLoss(t *testing.T) {
	_, _, err := Convert(3.14, Float32, Int32, StrictPolicy())
	require.Error(t, err)

	v, warnings, err := Convert(3.14, Float32, Int32, PermissivePolicy())
	require.NoError(t, err)
	require.Equal(t, int32(3), v)
	require.NotEmpty(t, warnings)
	require.Contains(t, warnings[0], "truncated to 3")
}

func TestConvertInfinityClampsToIntegerRange(t *testing.T) {
	v, warnings, err := Convert(float32(math.Inf(1)), Float32, Int32, PermissivePolicy())
	require.NoError(t, err)
	require.Equal(t, int32(2147483647), v)
	require.NotEmpty(t, warnings)
}

func TestConvertOverflowStrictErrors(t *testing.T) {
	_, _, err := Convert(int32(1000), Int32, Int8, StrictPolicy())
	require.Error(t, err)
}

func TestConvertOverflowClamp(t *testing.T) {
	v, _, err := Convert(int32(1000), Int32, Int8, PermissivePolicy())
	require.NoError(t, err)
	require.Equal(t, int8(127), v)

	v, _, err = Convert(int32(-1000), Int32, Int8, PermissivePolicy())
	require.NoError(t, err)
	require.Equal(t, int8(-128), v)
}

func TestConvertOverflowWrap(t *testing.T) {
	policy := PermissivePolicy()
	policy.OverflowHandling = OverflowWrap

	v, _, err := Convert(int32(257), Int32, Uint8, policy)
	require.NoError(t, err)
	require.Equal(t, uint8(1), v)

	v, _, err = Convert(int32(-1), Int32, Uint8, policy)
	require.NoError(t, err)
	require.Equal(t, uint8(255), v)
}

func TestConvertFloat64ToFloat32PrecisionLoss(t *testing.T) {
	const notExact = 1.0000000100000001 // loses bits rounding to float32
	_, _, err := Convert(notExact, Float64, Float32, StrictPolicy())
	require.Error(t, err)

	v, warnings, err := Convert(notExact, Float64, Float32, PermissivePolicy())
	require.NoError(t, err)
	require.IsType(t, float32(0), v)
	require.NotEmpty(t, warnings)
}

func TestConvertBigIntToNumber(t *testing.T) {
	v, _, err := Convert(big.NewInt(42), Int64, Int32, StrictPolicy())
	require.NoError(t, err)
	require.Equal(t, int32(42), v)
}

func TestConvertBigIntToNumberUnsafeRangeRequiresPrecisionLoss(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 60)
	_, _, err := Convert(huge, Int64, Float64, StrictPolicy())
	require.Error(t, err)

	_, warnings, err := Convert(huge, Int64, Float64, PermissivePolicy())
	require.NoError(t, err)
	require.NotEmpty(t, warnings)
}

func TestConvertNumberToBigInt(t *testing.T) {
	v, _, err := Convert(int32(42), Int32, Int64, StrictPolicy())
	require.NoError(t, err)
	require.Equal(t, int64(42), v)
}

func TestConvertBigToBigOverflowWrap(t *testing.T) {
	policy := PermissivePolicy()
	policy.OverflowHandling = OverflowWrap

	v, _, err := Convert(int64(-1), Int64, Uint64, policy)
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64), v)
}

func TestConvertArrayReportsElementIndex(t *testing.T) {
	_, _, err := ConvertArray([]any{int32(1), int32(1000)}, Int32, Int8, StrictPolicy())
	require.Error(t, err)
	require.Contains(t, err.Error(), "element 1")
}

func TestConvertArraySuccess(t *testing.T) {
	out, warnings, err := ConvertArray([]any{int32(1), int32(2), int32(3)}, Int32, Float64, StrictPolicy())
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, []any{1.0, 2.0, 3.0}, out)
}

func TestSafeCastAllowed(t *testing.T) {
	require.True(t, SafeCastAllowed(Bool, Int8))
	require.True(t, SafeCastAllowed(Int8, Int16))
	require.True(t, SafeCastAllowed(Uint8, Int16))
	require.True(t, SafeCastAllowed(Uint16, Int64))
	require.True(t, SafeCastAllowed(Int8, Float32))
	require.True(t, SafeCastAllowed(Int32, Float64))
	require.True(t, SafeCastAllowed(Int64, Float64))
	require.True(t, SafeCastAllowed(Float32, Float64))

	require.False(t, SafeCastAllowed(Int16, Int8))
	require.False(t, SafeCastAllowed(Uint64, Int64))
	require.False(t, SafeCastAllowed(Int8, Uint8))
	require.False(t, SafeCastAllowed(Int32, Float32))
	require.False(t, SafeCastAllowed(Float64, Float32))
}

func TestSafeCastRejectsUnsafePair(t *testing.T) {
	_, err := SafeCast(int32(5), Int32, Int8)
	require.Error(t, err)
}

func TestSafeCastPerformsAllowedConversion(t *testing.T) {
	v, err := SafeCast(int8(5), Int8, Int16)
	require.NoError(t, err)
	require.Equal(t, int16(5), v)
}

func TestWouldBeLossy(t *testing.T) {
	require.True(t, WouldBeLossy(3.5, Float32, Int32))
	require.False(t, WouldBeLossy(3.0, Float32, Int32))
}
