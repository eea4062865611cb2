package shape

import (
	"testing"

	"github.com/sebffischer/gotensor/dtype"
	"github.com/stretchr/testify/require"
)

func TestMakeCContiguous(t *testing.T) {
	s, err := Make(dtype.Float32, 2, 3)
	require.NoError(t, err)
	require.Equal(t, []int{2, 3}, s.Dims)
	require.Equal(t, []int{3, 1}, s.Strides)
	require.Equal(t, 6, s.Size())
	require.True(t, s.CContiguous())
	require.False(t, s.IsView)
	require.True(t, s.Writeable)
	require.True(t, s.Aligned)
}

func TestMakeRankExceeded(t *testing.T) {
	dims := make([]int, MaxRank+1)
	_, err := Make(dtype.Float32, dims...)
	require.Error(t, err)
}

func TestMakeNegativeDim(t *testing.T) {
	_, err := Make(dtype.Float32, -1)
	require.Error(t, err)
}

func TestScalarShape(t *testing.T) {
	s, err := Make(dtype.Int32)
	require.NoError(t, err)
	require.Equal(t, 0, s.NumAxes())
	require.Equal(t, 1, s.Size())
	require.True(t, s.CContiguous())
}

func TestEmptyShapeContiguousVacuously(t *testing.T) {
	s, err := Make(dtype.Int32, 0, 3)
	require.NoError(t, err)
	require.Equal(t, 0, s.Size())
	require.True(t, s.CContiguous())
}

func TestFContiguous(t *testing.T) {
	s, err := MakeView(dtype.Float64, []int{2, 3}, FStrides([]int{2, 3}), 0, true, true)
	require.NoError(t, err)
	require.True(t, s.FContiguous())
	require.False(t, s.CContiguous())
}

func TestEqualIgnoresOffsetAndFlags(t *testing.T) {
	a, _ := Make(dtype.Int32, 2, 2)
	b, err := MakeView(dtype.Int32, []int{2, 2}, CStrides([]int{2, 2}), 0, false, false)
	require.NoError(t, err)
	require.True(t, a.Equal(b))
}
