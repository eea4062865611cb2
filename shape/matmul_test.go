package shape

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatmul1D1D(t *testing.T) {
	out, err := MatmulShape([]int{3}, []int{3})
	require.NoError(t, err)
	require.Equal(t, []int{}, out)
}

func TestMatmul1D2D(t *testing.T) {
	out, err := MatmulShape([]int{3}, []int{3, 4})
	require.NoError(t, err)
	require.Equal(t, []int{4}, out)
}

func TestMatmul2D1D(t *testing.T) {
	out, err := MatmulShape([]int{2, 3}, []int{3})
	require.NoError(t, err)
	require.Equal(t, []int{2}, out)
}

func TestMatmul2D2D(t *testing.T) {
	out, err := MatmulShape([]int{2, 3}, []int{3, 4})
	require.NoError(t, err)
	require.Equal(t, []int{2, 4}, out)
}

func TestMatmulBatched(t *testing.T) {
	out, err := MatmulShape([]int{2, 2, 3}, []int{2, 3, 4})
	require.NoError(t, err)
	require.Equal(t, []int{2, 2, 4}, out)
}

func TestMatmulShapeMismatch(t *testing.T) {
	_, err := MatmulShape([]int{2, 3}, []int{2, 4})
	require.Error(t, err)
}

func TestMatmulBatchMismatch(t *testing.T) {
	_, err := MatmulShape([]int{2, 2, 3}, []int{3, 3, 4})
	require.Error(t, err)
}
