package shape

import (
	"testing"

	"github.com/sebffischer/gotensor/dtype"
	"github.com/stretchr/testify/require"
)

func TestTransposeInvolution(t *testing.T) {
	s, _ := Make(dtype.Float64, 2, 3)
	once, err := Transpose(s)
	require.NoError(t, err)
	require.Equal(t, []int{3, 2}, once.Dims)

	twice, err := Transpose(once)
	require.NoError(t, err)
	require.Equal(t, s.Dims, twice.Dims)
	require.Equal(t, s.Strides, twice.Strides)
}

func TestTransposeRankLessThanTwoIdentity(t *testing.T) {
	s, _ := Make(dtype.Float64, 5)
	out, err := Transpose(s)
	require.NoError(t, err)
	require.Equal(t, s.Dims, out.Dims)
}

func TestPermuteIdentity(t *testing.T) {
	s, _ := Make(dtype.Int32, 2, 3, 4)
	out, err := Permute(s, []int{0, 1, 2})
	require.NoError(t, err)
	require.Equal(t, s.Dims, out.Dims)
	require.Equal(t, s.Strides, out.Strides)
}

func TestPermuteReorder(t *testing.T) {
	s, _ := Make(dtype.Int32, 2, 3, 4)
	out, err := Permute(s, []int{2, 0, 1})
	require.NoError(t, err)
	require.Equal(t, []int{4, 2, 3}, out.Dims)
}

func TestPermuteNegativeAxes(t *testing.T) {
	s, _ := Make(dtype.Int32, 2, 3)
	out, err := Permute(s, []int{-1, -2})
	require.NoError(t, err)
	require.Equal(t, []int{3, 2}, out.Dims)
}

func TestPermuteDuplicateAxis(t *testing.T) {
	s, _ := Make(dtype.Int32, 2, 3)
	_, err := Permute(s, []int{0, 0})
	require.Error(t, err)
}

func TestPermuteWrongLength(t *testing.T) {
	s, _ := Make(dtype.Int32, 2, 3)
	_, err := Permute(s, []int{0})
	require.Error(t, err)
}
