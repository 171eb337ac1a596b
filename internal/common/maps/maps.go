package maps

import (
	"golang.org/x/exp/constraints"
)

// MapValues maps the values of m into valueFunc(v).
func MapValues[M ~map[K]VA, K comparable, VA any, VB any](m M, valueFunc func(VA) VB) map[K]VB {
	rv := make(map[K]VB, len(m))
	for k, v := range m {
		rv[k] = valueFunc(v)
	}
	return rv
}

// FilterKeys returns a copy of m containing only the keys for which predicate returns true.
func FilterKeys[M ~map[K]V, K comparable, V any](m M, predicate func(K) bool) M {
	if m == nil {
		return nil
	}
	rv := make(M)
	for k, v := range m {
		if predicate(k) {
			rv[k] = v
		}
	}
	return rv
}

// SumValues returns the sum of the values of m.
func SumValues[M ~map[K]V, K comparable, V constraints.Integer | constraints.Float](m M) V {
	var sum V
	for _, v := range m {
		sum += v
	}
	return sum
}

// DeepCopy returns a copy of m.
func DeepCopy[M ~map[K]V, K comparable, V any](m M) M {
	if m == nil {
		return nil
	}
	rv := make(M, len(m))
	for k, v := range m {
		rv[k] = v
	}
	return rv
}
