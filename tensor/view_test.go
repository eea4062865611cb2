package tensor

import (
	"testing"

	"github.com/sebffischer/gotensor/backend/cpu"
	"github.com/sebffischer/gotensor/shape"
	"github.com/stretchr/testify/require"
)

func TestReshapeContiguousIsView(t *testing.T) {
	b := cpu.New("t")
	a := mustTensor(t, []int32{1, 2, 3, 4, 5, 6}, Options{Backend: b})
	out, err := a.Reshape([]int{2, 3})
	require.NoError(t, err)
	require.True(t, out.IsView())
	nested, err := out.ToNested()
	require.NoError(t, err)
	require.Equal(t, [][]int32{{1, 2, 3}, {4, 5, 6}}, nested)
}

func TestViewWildcard(t *testing.T) {
	b := cpu.New("t")
	a := mustTensor(t, []int32{1, 2, 3, 4, 5, 6}, Options{Backend: b})
	out, err := a.View([]int{-1, 2})
	require.NoError(t, err)
	require.Equal(t, []int{3, 2}, out.Shape().Dims)
}

func TestReshapeMismatchedSizeFails(t *testing.T) {
	b := cpu.New("t")
	a := mustTensor(t, []int32{1, 2, 3}, Options{Backend: b})
	_, err := a.Reshape([]int{2, 2})
	require.Error(t, err)
}

func TestReshapeOfTransposedMaterializes(t *testing.T) {
	b := cpu.New("t")
	a := mustTensor(t, [][]int32{{1, 2, 3}, {4, 5, 6}}, Options{Backend: b})
	transposed, err := a.Transpose()
	require.NoError(t, err)
	require.True(t, transposed.IsView())

	out, err := transposed.Reshape([]int{6})
	require.NoError(t, err)
	nested, err := out.ToNested()
	require.NoError(t, err)
	require.Equal(t, []int32{1, 4, 2, 5, 3, 6}, nested)
}

func TestTransposeSwapsLastTwoAxes(t *testing.T) {
	b := cpu.New("t")
	a := mustTensor(t, [][]int32{{1, 2, 3}, {4, 5, 6}}, Options{Backend: b})
	out, err := a.Transpose()
	require.NoError(t, err)
	require.Equal(t, []int{3, 2}, out.Shape().Dims)
	nested, err := out.ToNested()
	require.NoError(t, err)
	require.Equal(t, [][]int32{{1, 4}, {2, 5}, {3, 6}}, nested)
}

func TestPermute(t *testing.T) {
	b := cpu.New("t")
	a, _, err := FromNested([][][]int32{{{1, 2}}, {{3, 4}}}, Options{Backend: b})
	require.NoError(t, err)
	require.Equal(t, []int{2, 1, 2}, a.Shape().Dims)

	out, err := a.Permute([]int{1, 0, 2})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 2}, out.Shape().Dims)
}

func TestSliceMaterializesByDefault(t *testing.T) {
	b := cpu.New("t")
	a := mustTensor(t, [][]int32{{1, 2, 3}, {4, 5, 6}}, Options{Backend: b})
	idx := 0
	out, err := a.Slice([]shape.AxisSpec{shape.IndexAxis(idx)}, false)
	require.NoError(t, err)
	require.False(t, out.IsView())
	nested, err := out.ToNested()
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3}, nested)
}

func TestSliceReturnsViewWhenRequested(t *testing.T) {
	b := cpu.New("t")
	a := mustTensor(t, []int32{1, 2, 3, 4, 5}, Options{Backend: b})
	start, stop := 1, 4
	out, err := a.Slice([]shape.AxisSpec{shape.RangeAxis(&start, &stop, nil)}, true)
	require.NoError(t, err)
	require.True(t, out.IsView())
	nested, err := out.ToNested()
	require.NoError(t, err)
	require.Equal(t, []int32{2, 3, 4}, nested)
}
