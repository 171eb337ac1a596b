package slices

// Map returns a new slice containing f applied to each element of s.
func Map[S ~[]E, E any, F any](s S, f func(E) F) []F {
	rv := make([]F, len(s))
	for i, e := range s {
		rv[i] = f(e)
	}
	return rv
}

// Filter returns a new slice containing the elements of s for which
// predicate returns true, preserving order.
func Filter[S ~[]E, E any](s S, predicate func(E) bool) S {
	if s == nil {
		return nil
	}
	rv := make(S, 0, len(s))
	for _, e := range s {
		if predicate(e) {
			rv = append(rv, e)
		}
	}
	return rv
}

// Unique returns a copy of s with duplicate elements removed, keeping only the first occurrence.
func Unique[S ~[]E, E comparable](s S) S {
	if s == nil {
		return nil
	}
	rv := make(S, 0, len(s))
	seen := make(map[E]bool, len(s))
	for _, e := range s {
		if !seen[e] {
			rv = append(rv, e)
			seen[e] = true
		}
	}
	return rv
}

// Subtract returns the elements of s not contained in toRemove, preserving order.
func Subtract[S ~[]E, E comparable](s S, toRemove S) S {
	if s == nil {
		return nil
	}
	removeSet := make(map[E]bool, len(toRemove))
	for _, e := range toRemove {
		removeSet[e] = true
	}
	return Filter(s, func(e E) bool { return !removeSet[e] })
}
