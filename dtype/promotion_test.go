package dtype

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPromoteScenarios(t *testing.T) {
	cases := []struct {
		a, b, want DType
	}{
		{Int8, Uint8, Int16},
		{Int64, Uint64, Float64},
		{Int32, Float32, Float64},
		{Int8, Float32, Float32},
		{Bool, Int16, Int16},
		{Int32, Int32, Int32},
		{Int16, Uint16, Int32},
		{Int32, Uint32, Int64},
	}
	for _, c := range cases {
		got, err := Promote(c.a, c.b)
		require.NoError(t, err)
		require.Equalf(t, c.want, got, "promote(%s, %s)", c.a, c.b)

		// The table is symmetric.
		got, err = Promote(c.b, c.a)
		require.NoError(t, err)
		require.Equalf(t, c.want, got, "promote(%s, %s)", c.b, c.a)
	}
}

func TestPromoteInvalid(t *testing.T) {
	_, err := Promote(InvalidDType, Int32)
	require.Error(t, err)
}

func TestPromoteManyEmpty(t *testing.T) {
	_, err := PromoteMany(nil)
	require.Error(t, err)
}

func TestCommonTypeOfValues(t *testing.T) {
	dt, err := CommonTypeOfValues([]any{true, 1, 2.5})
	require.NoError(t, err)
	require.Equal(t, Float32, dt)

	dt, err = CommonTypeOfValues([]any{1, 2, 128})
	require.NoError(t, err)
	require.Equal(t, Int16, dt)

	dt, err = CommonTypeOfValues([]any{big.NewInt(1), big.NewInt(-2), big.NewInt(3)})
	require.NoError(t, err)
	require.Equal(t, Float64, dt)

	dt, err = CommonTypeOfValues([]any{1, math.MaxFloat64})
	require.NoError(t, err)
	require.Equal(t, Float64, dt)
}

func TestCommonTypeOfValuesEmpty(t *testing.T) {
	_, err := CommonTypeOfValues(nil)
	require.Error(t, err)
}
