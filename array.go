package lattice

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Numeric is the set of native Go types the ten numeric Dtypes map to.
type Numeric interface {
	constraints.Integer | constraints.Float
}

// Array[T] is a contiguous column of native numeric values plus a validity
// mask (one bool per slot; false means null). Length is fixed at
// construction. It is the monomorphic storage a Series wraps for a single
// numeric dtype (spec.md §3, TypedArray<T>).
type Array[T Numeric] struct {
	Values []T
	Valid  []bool
}

// NewArray builds an Array[T] with every slot valid.
func NewArray[T Numeric](values []T) Array[T] {
	valid := make([]bool, len(values))
	for i := range valid {
		valid[i] = true
	}
	return Array[T]{Values: values, Valid: valid}
}

// NewArrayWithValidity builds an Array[T] with an explicit validity mask.
func NewArrayWithValidity[T Numeric](values []T, valid []bool) Array[T] {
	return Array[T]{Values: values, Valid: valid}
}

// Len returns the number of slots in the array.
func (a Array[T]) Len() int { return len(a.Values) }

func checkSameLength[T Numeric](lhs, rhs Array[T]) error {
	if lhs.Len() != rhs.Len() {
		return NewShapeMismatchError(lhs.Len(), rhs.Len())
	}
	return nil
}

// binaryApply runs f elementwise over lhs/rhs, producing a result array of
// the same length whose slot i is null (value unspecified, zero value used)
// whenever either input slot i is null — spec.md §4.2's null-propagation
// invariant.
func binaryApply[T Numeric](lhs, rhs Array[T], f func(l, r T) T) (Array[T], error) {
	if err := checkSameLength(lhs, rhs); err != nil {
		return Array[T]{}, err
	}
	n := lhs.Len()
	values := make([]T, n)
	valid := make([]bool, n)
	for i := 0; i < n; i++ {
		if lhs.Valid[i] && rhs.Valid[i] {
			values[i] = f(lhs.Values[i], rhs.Values[i])
			valid[i] = true
		}
	}
	return Array[T]{Values: values, Valid: valid}, nil
}

// MinIntegers and MaxIntegers use Go's total order over integer types
// directly — correct because integers have no NaN-like value needing
// special-cased ordering (spec.md §4.2, §9 "per-dtype specialisation").
func MinIntegers[T constraints.Integer](lhs, rhs Array[T]) (Array[T], error) {
	return binaryApply(lhs, rhs, func(l, r T) T {
		if l < r {
			return l
		}
		return r
	})
}

func MaxIntegers[T constraints.Integer](lhs, rhs Array[T]) (Array[T], error) {
	return binaryApply(lhs, rhs, func(l, r T) T {
		if l > r {
			return l
		}
		return r
	})
}

// MinFloats and MaxFloats implement IEEE-754-aware ordering: if either
// operand is NaN the result is NaN, rather than the total order integer
// min/max would give if applied naively to the raw bits (spec.md §4.2).
func MinFloats[T constraints.Float](lhs, rhs Array[T]) (Array[T], error) {
	return binaryApply(lhs, rhs, func(l, r T) T {
		if isNaN(l) || isNaN(r) {
			return nan[T]()
		}
		if l < r {
			return l
		}
		return r
	})
}

func MaxFloats[T constraints.Float](lhs, rhs Array[T]) (Array[T], error) {
	return binaryApply(lhs, rhs, func(l, r T) T {
		if isNaN(l) || isNaN(r) {
			return nan[T]()
		}
		if l > r {
			return l
		}
		return r
	})
}

func isNaN[T constraints.Float](v T) bool {
	return math.IsNaN(float64(v))
}

func nan[T constraints.Float]() T {
	return T(math.NaN())
}

// convertArray casts every valid slot of a into T2 via Go's native numeric
// conversion, preserving the validity mask. The promotion lattice never
// prescribes a narrowing cast (spec.md §4.3 step 3), so this is always used
// on a widening pair, but the conversion itself is mechanical either way.
func convertArray[T1, T2 Numeric](a Array[T1]) Array[T2] {
	values := make([]T2, a.Len())
	for i, v := range a.Values {
		if a.Valid[i] {
			values[i] = T2(v)
		}
	}
	valid := make([]bool, a.Len())
	copy(valid, a.Valid)
	return Array[T2]{Values: values, Valid: valid}
}
