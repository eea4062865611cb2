package dtype

import (
	"math"
	"math/big"

	"github.com/pkg/errors"
)

var namesByLower = func() map[string]DType {
	m := make(map[string]DType, numDTypes)
	for dt := Bool; dt < numDTypes; dt++ {
		m[metas[dt].name] = dt
	}
	return m
}()

// ByName resolves a dtype by its canonical lower-case name ("int32",
// "float64", ...). Returns an error if name does not match any dtype.
func ByName(name string) (DType, error) {
	dt, ok := namesByLower[name]
	if !ok {
		return InvalidDType, errors.Errorf("dtype: unknown dtype name %q", name)
	}
	return dt, nil
}

// AllNames returns the canonical names of all eleven dtypes, in enum order.
func AllNames() []string {
	names := make([]string, 0, numDTypes-1)
	for dt := Bool; dt < numDTypes; dt++ {
		names = append(names, metas[dt].name)
	}
	return names
}

// DefaultFor infers the dtype NumPy/PyTorch would pick for a bare Go value
// with no explicit dtype annotation:
//   - bool            -> Bool
//   - *big.Int, >= 0  -> Uint64
//   - *big.Int, <  0  -> Int64
//   - non-integer float (float32/float64) -> Float32
//   - integer number in [-2^31, 2^31)     -> Int32
//   - anything else (wider integer number, or non-finite float) -> Float64
func DefaultFor(v any) DType {
	switch x := v.(type) {
	case bool:
		return Bool
	case *big.Int:
		if x.Sign() < 0 {
			return Int64
		}
		return Uint64
	case int:
		return defaultForInt(int64(x))
	case int8:
		return defaultForInt(int64(x))
	case int16:
		return defaultForInt(int64(x))
	case int32:
		return defaultForInt(int64(x))
	case int64:
		return defaultForInt(x)
	case uint:
		return defaultForUint(uint64(x))
	case uint8:
		return defaultForUint(uint64(x))
	case uint16:
		return defaultForUint(uint64(x))
	case uint32:
		return defaultForUint(uint64(x))
	case uint64:
		return defaultForUint(x)
	case float32:
		return defaultForFloat(float64(x))
	case float64:
		return defaultForFloat(x)
	default:
		return Float64
	}
}

func defaultForInt(v int64) DType {
	if v >= -(1<<31) && v < (1<<31) {
		return Int32
	}
	return Float64
}

func defaultForUint(v uint64) DType {
	if v < (1 << 31) {
		return Int32
	}
	return Float64
}

func defaultForFloat(v float64) DType {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Float64
	}
	if v != math.Trunc(v) {
		return Float32
	}
	return defaultForInt(int64(v))
}

// IsValidValue reports whether v is a legal value for dt:
//   - for Bool: any Go bool, and nothing else (numeric 0/1 is rejected).
//   - for *big.Int: in [min, max] for dt.
//   - for integer dtypes: v must be finite, integral, and in [min, max].
//   - for float dtypes: NaN and +/-Inf are valid, any finite value is valid.
func IsValidValue(dt DType, v any) bool {
	if !dt.Ok() {
		return false
	}
	switch x := v.(type) {
	case bool:
		return dt == Bool
	case *big.Int:
		if dt == Bool {
			return false
		}
		min, max := dt.Range()
		f := new(big.Float).SetInt(x)
		return f.Cmp(big.NewFloat(min)) >= 0 && f.Cmp(big.NewFloat(max)) <= 0
	default:
		f, ok := asFloat64(v)
		if !ok {
			return false
		}
		if dt == Bool {
			return false
		}
		if dt.IsFloat() {
			return true // NaN/Inf/finite all valid for float dtypes.
		}
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return false
		}
		min, max := dt.Range()
		return f >= min && f <= max
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

// StorageArrayKind returns the flat storage-array family for dt. Bool and
// Uint8 return the same StorageKind: a raw backend buffer carries no tag
// distinguishing them, so recovering a dtype from a raw buffer without
// context always resolves to Uint8 (see StorageArrayKindOf).
func StorageArrayKind(dt DType) StorageKind { return dt.StorageKind() }

// StorageArrayKindOf returns the dtype the registry infers for a raw backend
// array of the given StorageKind, when no further annotation is available.
// Per the StorageKind doc: an 8-bit-unsigned buffer is always reported as Uint8;
// recovering Bool requires the caller to annotate it explicitly.
func StorageArrayKindOf(sk StorageKind) (DType, error) {
	for dt := Bool; dt < numDTypes; dt++ {
		if dt == Bool {
			continue // Uint8 wins the 8-bit-unsigned family, see doc above.
		}
		if metas[dt].storageKind == sk {
			return dt, nil
		}
	}
	return InvalidDType, errors.Errorf("dtype: no dtype for storage kind %d", sk)
}
