package tensor

import (
	"strings"
	"testing"

	"github.com/sebffischer/gotensor/backend/cpu"
	"github.com/stretchr/testify/require"
)

func TestToNestedHonorsView(t *testing.T) {
	b := cpu.New("t")
	a := mustTensor(t, [][]int32{{1, 2, 3}, {4, 5, 6}}, Options{Backend: b})
	view, err := a.Transpose()
	require.NoError(t, err)
	nested, err := view.ToNested()
	require.NoError(t, err)
	require.Equal(t, [][]int32{{1, 4}, {2, 5}, {3, 6}}, nested)
}

func TestItemUnwrapsSingleElementDims(t *testing.T) {
	b := cpu.New("t")
	a := mustTensor(t, [][]int32{{42}}, Options{Backend: b})
	v, err := a.Item()
	require.NoError(t, err)
	require.Equal(t, int32(42), v)
}

func TestItemFailsOnNonScalarSize(t *testing.T) {
	b := cpu.New("t")
	a := mustTensor(t, []int32{1, 2}, Options{Backend: b})
	_, err := a.Item()
	require.Error(t, err)
}

func TestFormatRendersNestedBrackets(t *testing.T) {
	b := cpu.New("t")
	a := mustTensor(t, [][]int32{{1, 2}, {3, 4}}, Options{Backend: b})
	s, err := a.Format()
	require.NoError(t, err)
	require.Equal(t, "[[1, 2],\n [3, 4]]", s)
}

func TestFormatTruncatesLongAxis(t *testing.T) {
	b := cpu.New("t")
	values := make([]int32, 1500)
	for i := range values {
		values[i] = int32(i)
	}
	a := mustTensor(t, values, Options{Backend: b})
	s, err := a.Format()
	require.NoError(t, err)
	require.True(t, strings.Contains(s, "..."))
	require.True(t, strings.HasPrefix(s, "[0, 1, 2, ..."))
}

func TestStringImplementsStringer(t *testing.T) {
	b := cpu.New("t")
	a := mustTensor(t, []int32{1}, Options{Backend: b})
	require.Equal(t, "[1]", a.String())
}
