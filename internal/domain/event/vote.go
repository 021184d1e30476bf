package event

// plurality returns the most frequent value not rejected by skip. Ties go to
// the value seen first.
func plurality[T comparable](values []T, skip func(T) bool) (T, bool) {
	var zero T
	counts := make(map[T]int, len(values))
	order := make([]T, 0, len(values))
	for _, v := range values {
		if skip != nil && skip(v) {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}
	if len(order) == 0 {
		return zero, false
	}
	best := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best, true
}

func isEmpty(s string) bool { return s == "" }
