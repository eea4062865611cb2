package shape

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReduceShapeAllNoKeep(t *testing.T) {
	out, err := ReduceShape([]int{2, 3}, nil, false)
	require.NoError(t, err)
	require.Equal(t, []int{}, out)
}

func TestReduceShapeAllKeepDims(t *testing.T) {
	out, err := ReduceShape([]int{2, 3}, nil, true)
	require.NoError(t, err)
	require.Equal(t, []int{1, 1}, out)
}

func TestReduceShapeAxis(t *testing.T) {
	out, err := ReduceShape([]int{2, 3}, []int{1}, false)
	require.NoError(t, err)
	require.Equal(t, []int{2}, out)
}

func TestReduceShapeAxisKeepDims(t *testing.T) {
	out, err := ReduceShape([]int{2, 3}, []int{1}, true)
	require.NoError(t, err)
	require.Equal(t, []int{2, 1}, out)
}

func TestReduceShapeNegativeAxis(t *testing.T) {
	out, err := ReduceShape([]int{2, 3}, []int{-1}, false)
	require.NoError(t, err)
	require.Equal(t, []int{2}, out)
}

func TestReduceShapeDuplicateAxis(t *testing.T) {
	_, err := ReduceShape([]int{2, 3}, []int{1, -1}, false)
	require.Error(t, err)
}

func TestReduceShapeOutOfRange(t *testing.T) {
	_, err := ReduceShape([]int{2, 3}, []int{2}, false)
	require.Error(t, err)
}
