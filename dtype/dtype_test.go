package dtype

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDTypeMetadata(t *testing.T) {
	require.Equal(t, "int32", Int32.String())
	require.Equal(t, 4, Int32.ByteSize())
	require.True(t, Int32.Signed())
	require.True(t, Int32.IsInteger())
	require.False(t, Int32.IsFloat())

	require.Equal(t, "float64", Float64.String())
	require.True(t, Float64.IsFloat())
	require.False(t, Float64.IsInteger())

	require.True(t, Bool.IsBool())
	require.False(t, Int8.IsBool())

	require.False(t, InvalidDType.Ok())
	require.False(t, DType(999).Ok())
}

func TestDTypeRange(t *testing.T) {
	min, max := Int8.Range()
	require.Equal(t, -128.0, min)
	require.Equal(t, 127.0, max)

	min, max = Uint8.Range()
	require.Equal(t, 0.0, min)
	require.Equal(t, 255.0, max)
}

func TestNumpyTagRoundTrip(t *testing.T) {
	for dt := Bool; dt < numDTypes; dt++ {
		tag := dt.NumpyTag()
		require.NotEmpty(t, tag)
		got, err := FromNumpyTag(tag)
		require.NoError(t, err)
		require.Equal(t, dt, got)
	}
	_, err := FromNumpyTag("q9")
	require.Error(t, err)
}

func TestByNameAndAllNames(t *testing.T) {
	dt, err := ByName("float32")
	require.NoError(t, err)
	require.Equal(t, Float32, dt)

	_, err = ByName("not-a-dtype")
	require.Error(t, err)

	names := AllNames()
	require.Len(t, names, int(numDTypes)-1)
	require.Contains(t, names, "bool")
	require.Contains(t, names, "uint64")
}

func TestDefaultFor(t *testing.T) {
	require.Equal(t, Bool, DefaultFor(true))
	require.Equal(t, Int32, DefaultFor(42))
	require.Equal(t, Int32, DefaultFor(int64(42)))
	require.Equal(t, Float64, DefaultFor(int64(1)<<40))
	require.Equal(t, Float32, DefaultFor(2.5))
	require.Equal(t, Float64, DefaultFor(math.NaN()))
}

func TestStorageArrayKindOfPrefersUint8(t *testing.T) {
	dt, err := StorageArrayKindOf(Storage8Unsigned)
	require.NoError(t, err)
	require.Equal(t, Uint8, dt)
}

func TestIsValidValue(t *testing.T) {
	require.True(t, IsValidValue(Bool, true))
	require.False(t, IsValidValue(Bool, 1))

	require.True(t, IsValidValue(Int8, 127))
	require.False(t, IsValidValue(Int8, 128))
	require.False(t, IsValidValue(Int8, 1.5))

	require.True(t, IsValidValue(Float32, math.NaN()))
	require.True(t, IsValidValue(Float32, math.Inf(1)))
}
