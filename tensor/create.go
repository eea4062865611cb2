package tensor

import (
	"fmt"
	"reflect"

	"github.com/sebffischer/gotensor/atype"
	"github.com/sebffischer/gotensor/dtype"
	"github.com/sebffischer/gotensor/errs"
	"github.com/sebffischer/gotensor/op"
	"github.com/sebffischer/gotensor/shape"
)

// FromNested infers a Tensor's shape from data's structure via
// atype.FromAnyValue's recursive length-consistency walk (a ragged nesting,
// or rank beyond shape.MaxRank, fails before any backend allocation
// happens). data must be a (possibly nested) slice of a single concrete Go
// numeric/bool type -- for a set of values with mixed Go kinds, resolve a
// common dtype with dtype.CommonTypeOfValues first.
//
// The inferred dtype is data's own Go element type (dtype.FromGoType). Pass
// a non-zero opts.DType to request conversion into a different dtype
// instead; the second return value carries any non-fatal warnings that
// conversion produced (e.g. precision loss under a permissive policy).
func FromNested(data any, opts Options) (Tensor, []string, error) {
	at, err := atype.FromAnyValue(data)
	if err != nil {
		return Tensor{}, nil, errs.DtypeValidationErr(
			map[string]any{"data": fmt.Sprintf("%T", data)}, "tensor: from_nested: %s", err,
		)
	}

	target := opts.dtypeOrDefault(at.DType)
	values := flattenNested(data)

	var warnings []string
	if target != at.DType {
		converted, warns, err := dtype.ConvertArray(values, at.DType, target, opts.policy())
		if err != nil {
			return Tensor{}, nil, err
		}
		values = converted
		warnings = warns
	}

	raw, err := packElements(target, values)
	if err != nil {
		return Tensor{}, nil, err
	}
	s, err := shape.Make(target, at.AxisLengths...)
	if err != nil {
		return Tensor{}, nil, err
	}
	t, err := allocateFilled(opts.Backend, s, raw)
	return t, warnings, err
}

// flattenNested walks a (possibly nested) slice in row-major order,
// collecting every leaf element.
func flattenNested(v any) []any {
	var out []any
	var walk func(rv reflect.Value)
	walk = func(rv reflect.Value) {
		if rv.Kind() == reflect.Slice {
			for i := 0; i < rv.Len(); i++ {
				walk(rv.Index(i))
			}
			return
		}
		out = append(out, rv.Interface())
	}
	walk(reflect.ValueOf(v))
	return out
}

// Zeros allocates a Tensor of the given dims filled with dtype-appropriate
// zero. opts.DType defaults to dtype.Float32 when left unset.
func Zeros(dims []int, opts Options) (Tensor, error) {
	return filledConstant(dims, opts, 0)
}

// Ones allocates a Tensor of the given dims filled with dtype-appropriate
// one. opts.DType defaults to dtype.Float32 when left unset.
func Ones(dims []int, opts Options) (Tensor, error) {
	return filledConstant(dims, opts, 1)
}

func filledConstant(dims []int, opts Options, value float64) (Tensor, error) {
	target := opts.dtypeOrDefault(dtype.Float32)
	s, err := shape.Make(target, dims...)
	if err != nil {
		return Tensor{}, err
	}
	cv, err := constantValue(target, value)
	if err != nil {
		return Tensor{}, err
	}
	values := make([]any, s.Size())
	for i := range values {
		values[i] = cv
	}
	raw, err := packElements(target, values)
	if err != nil {
		return Tensor{}, err
	}
	return allocateFilled(opts.Backend, s, raw)
}

// constantValue converts a float64 literal (always 0 or 1 in this file, so
// always exactly representable) into target's canonical Go representation,
// reusing dtype.Convert rather than duplicating its numeric-narrowing
// switch.
func constantValue(target dtype.DType, v float64) (any, error) {
	converted, _, err := dtype.Convert(v, dtype.Float64, target, dtype.StrictPolicy())
	return converted, err
}

// Identity builds an n x n Tensor with ones on the diagonal and zero
// elsewhere. opts.DType defaults to dtype.Float32 when left unset.
func Identity(n int, opts Options) (Tensor, error) {
	if n < 0 {
		return Tensor{}, errs.BoundsErr(map[string]any{"n": n}, "tensor: identity size must be non-negative, got %d", n)
	}
	target := opts.dtypeOrDefault(dtype.Float32)
	s, err := shape.Make(target, n, n)
	if err != nil {
		return Tensor{}, err
	}
	one, err := constantValue(target, 1)
	if err != nil {
		return Tensor{}, err
	}
	zero, err := constantValue(target, 0)
	if err != nil {
		return Tensor{}, err
	}
	values := make([]any, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				values[i*n+j] = one
			} else {
				values[i*n+j] = zero
			}
		}
	}
	raw, err := packElements(target, values)
	if err != nil {
		return Tensor{}, err
	}
	return allocateFilled(opts.Backend, s, raw)
}

// allocateFilled allocates raw's length on backend, writes raw into it, and
// wraps the resulting handle as a Tensor with descriptor s.
func allocateFilled(backend op.Backend, s shape.Shape, raw []byte) (Tensor, error) {
	if backend == nil {
		return Tensor{}, errs.BackendErrorErr(nil, "tensor: Options.Backend is required")
	}
	h, err := backend.Allocate(len(raw))
	if err != nil {
		return Tensor{}, errs.BackendErrorErr(nil, "tensor: allocate failed: %s", err)
	}
	if err := backend.Write(h, raw); err != nil {
		return Tensor{}, errs.BackendErrorErr(nil, "tensor: write failed: %s", err)
	}
	return newTensor(backend, s, h), nil
}
