package tensor

import (
	"testing"

	"github.com/sebffischer/gotensor/backend/cpu"
	"github.com/stretchr/testify/require"
)

func TestMatmul2D2D(t *testing.T) {
	b := cpu.New("t")
	a := mustTensor(t, [][]int32{{1, 2, 3}, {4, 5, 6}}, Options{Backend: b})
	c := mustTensor(t, [][]int32{{1, 0}, {0, 1}, {1, 1}}, Options{Backend: b})

	out, err := a.Matmul(&c)
	require.NoError(t, err)
	require.Equal(t, []int{2, 2}, out.Shape().Dims)
	nested, err := out.ToNested()
	require.NoError(t, err)
	require.Equal(t, [][]int32{{4, 5}, {10, 11}}, nested)
}

func TestMatmulMatrixTimesVector(t *testing.T) {
	b := cpu.New("t")
	a := mustTensor(t, [][]int32{{1, 2, 3}, {4, 5, 6}}, Options{Backend: b})
	v := mustTensor(t, []int32{1, 1, 1}, Options{Backend: b})

	out, err := a.Matmul(&v)
	require.NoError(t, err)
	require.Equal(t, []int{2}, out.Shape().Dims)
}

func TestMatmulBatched(t *testing.T) {
	b := cpu.New("t")
	a := mustTensor(t, [][][]int32{{{1, 2, 3}}, {{4, 5, 6}}}, Options{Backend: b})
	c := mustTensor(t, [][][]int32{{{1, 2}, {3, 4}, {5, 6}}, {{1, 2}, {3, 4}, {5, 6}}}, Options{Backend: b})

	out, err := a.Matmul(&c)
	require.NoError(t, err)
	require.Equal(t, []int{2, 1, 2}, out.Shape().Dims)
}

func TestMatmulInnerDimMismatchFails(t *testing.T) {
	b := cpu.New("t")
	x := mustTensor(t, [][]int32{{1, 2, 3}, {4, 5, 6}}, Options{Backend: b})
	y := mustTensor(t, [][]int32{{1, 2, 3, 4}, {5, 6, 7, 8}}, Options{Backend: b})
	_, err := x.Matmul(&y)
	require.Error(t, err)
}
