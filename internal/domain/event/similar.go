package event

import "context"

// Similar reports whether e matches every set key field of ref. Unset ref
// fields match anything; names compare after folding. Keys that do not
// name a field never match; FusionIfSimilar and FusionTransitive reject them.
func Similar(ref, e Event, keys []Field) bool {
	for _, k := range keys {
		if !k.Valid() {
			return false
		}
		want, ok := keyValue(ref, k)
		if !ok {
			continue
		}
		got, _ := keyValue(e, k)
		if want != got {
			return false
		}
	}
	return true
}

// FusionIfSimilar partitions events greedily: the first remaining event is
// the pivot, every other event similar to it joins its group, and each group
// of two or more is fused. Grouping depends on input order; callers wanting
// a stable result pass a stably ordered pool. Singletons are returned as
// they came.
func (en *Engine) FusionIfSimilar(ctx context.Context, events []Event, keys []Field, firstEventURL bool) ([]Event, error) {
	if err := ValidateKeys(keys); err != nil {
		return nil, err
	}
	remaining := make([]Event, len(events))
	copy(remaining, events)

	out := make([]Event, 0, len(events))
	for len(remaining) > 0 {
		pivot := remaining[0]
		group := []Event{pivot}
		rest := remaining[:0:0]
		for _, e := range remaining[1:] {
			if Similar(pivot, e, keys) {
				group = append(group, e)
			} else {
				rest = append(rest, e)
			}
		}
		remaining = rest

		if len(group) == 1 {
			out = append(out, pivot.Clone())
			continue
		}
		fused, err := en.Fusion(ctx, firstEventURL, group...)
		if err != nil {
			return nil, err
		}
		out = append(out, fused)
	}
	return out, nil
}

// GroupTransitive partitions events into the connected components of the
// relation "either event is similar to the other". Unlike FusionIfSimilar it
// does not depend on input order beyond the order of the returned groups,
// which follows the first member of each group.
func GroupTransitive(events []Event, keys []Field) ([][]Event, error) {
	if err := ValidateKeys(keys); err != nil {
		return nil, err
	}
	parent := make([]int, len(events))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		if ra < rb {
			parent[rb] = ra
		} else {
			parent[ra] = rb
		}
	}

	for i := range events {
		for j := i + 1; j < len(events); j++ {
			if Similar(events[i], events[j], keys) || Similar(events[j], events[i], keys) {
				union(i, j)
			}
		}
	}

	index := make(map[int]int)
	var groups [][]Event
	for i, e := range events {
		root := find(i)
		g, ok := index[root]
		if !ok {
			g = len(groups)
			index[root] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], e.Clone())
	}
	return groups, nil
}

// FusionTransitive fuses every group found by GroupTransitive.
func (en *Engine) FusionTransitive(ctx context.Context, events []Event, keys []Field, firstEventURL bool) ([]Event, error) {
	groups, err := GroupTransitive(events, keys)
	if err != nil {
		return nil, err
	}
	out := make([]Event, 0, len(groups))
	for _, g := range groups {
		if len(g) == 1 {
			out = append(out, g[0])
			continue
		}
		fused, err := en.Fusion(ctx, firstEventURL, g...)
		if err != nil {
			return nil, err
		}
		out = append(out, fused)
	}
	return out, nil
}

// FindDuplicates groups events by key and returns the groups with two or more
// members, in order of first appearance. key returns ok=false to leave an
// event out.
func FindDuplicates[K comparable](events []Event, key func(Event) (K, bool)) [][]Event {
	index := make(map[K]int)
	var groups [][]Event
	for _, e := range events {
		k, ok := key(e)
		if !ok {
			continue
		}
		g, seen := index[k]
		if !seen {
			g = len(groups)
			index[k] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], e)
	}
	out := groups[:0]
	for _, g := range groups {
		if len(g) > 1 {
			out = append(out, g)
		}
	}
	return out
}
