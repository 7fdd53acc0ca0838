package fitness

// PushFront prepends item to a most-recent-first list and truncates it
// to capacity, silently dropping the oldest entries. A capacity of zero
// or less keeps the list unbounded.
func PushFront[T any](list []T, item T, capacity int) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, item)
	out = append(out, list...)
	if capacity > 0 && len(out) > capacity {
		out = out[:capacity]
	}
	return out
}
