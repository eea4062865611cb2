package tensor

import (
	"testing"

	"github.com/sebffischer/gotensor/backend/cpu"
	"github.com/sebffischer/gotensor/dtype"
	"github.com/stretchr/testify/require"
)

func TestFromNestedInfersShapeAndDType(t *testing.T) {
	b := cpu.New("t")
	tensor, warnings, err := FromNested([][]int32{{1, 2, 3}, {4, 5, 6}}, Options{Backend: b})
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, dtype.Int32, tensor.DType())
	require.Equal(t, []int{2, 3}, tensor.Shape().Dims)

	nested, err := tensor.ToNested()
	require.NoError(t, err)
	require.Equal(t, [][]int32{{1, 2, 3}, {4, 5, 6}}, nested)
}

func TestFromNestedRaggedFails(t *testing.T) {
	b := cpu.New("t")
	_, _, err := FromNested([][]int32{{1, 2}, {3}}, Options{Backend: b})
	require.Error(t, err)
}

func TestFromNestedExplicitDTypeConverts(t *testing.T) {
	b := cpu.New("t")
	tensor, _, err := FromNested([]int32{1, 2, 3}, Options{Backend: b, DType: dtype.Float32})
	require.NoError(t, err)
	require.Equal(t, dtype.Float32, tensor.DType())
	nested, err := tensor.ToNested()
	require.NoError(t, err)
	require.Equal(t, []float32{1, 2, 3}, nested)
}

func TestZerosAndOnes(t *testing.T) {
	b := cpu.New("t")
	z, err := Zeros([]int{2, 2}, Options{Backend: b, DType: dtype.Int32})
	require.NoError(t, err)
	zn, err := z.ToNested()
	require.NoError(t, err)
	require.Equal(t, [][]int32{{0, 0}, {0, 0}}, zn)

	o, err := Ones([]int{3}, Options{Backend: b, DType: dtype.Float32})
	require.NoError(t, err)
	on, err := o.ToNested()
	require.NoError(t, err)
	require.Equal(t, []float32{1, 1, 1}, on)
}

func TestZerosDefaultsToFloat32(t *testing.T) {
	b := cpu.New("t")
	z, err := Zeros([]int{2}, Options{Backend: b})
	require.NoError(t, err)
	require.Equal(t, dtype.Float32, z.DType())
}

func TestIdentity(t *testing.T) {
	b := cpu.New("t")
	id, err := Identity(3, Options{Backend: b, DType: dtype.Int32})
	require.NoError(t, err)
	nested, err := id.ToNested()
	require.NoError(t, err)
	require.Equal(t, [][]int32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, nested)
}

func TestIdentityNegativeSizeFails(t *testing.T) {
	b := cpu.New("t")
	_, err := Identity(-1, Options{Backend: b})
	require.Error(t, err)
}

func TestOptionsPolicyPointerDistinguishesUnsetFromStrict(t *testing.T) {
	strict := dtype.StrictPolicy()
	withExplicitStrict := Options{Policy: &strict}
	require.Equal(t, dtype.StrictPolicy(), withExplicitStrict.policy())

	dtype.SetDefaultPolicy(dtype.PermissivePolicy())
	defer dtype.SetDefaultPolicy(dtype.StrictPolicy())

	unset := Options{}
	require.Equal(t, dtype.PermissivePolicy(), unset.policy())
	require.Equal(t, dtype.StrictPolicy(), withExplicitStrict.policy())
}
