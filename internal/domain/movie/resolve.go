package movie

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Resolve looks for the single movie matching q. A unique title hit wins,
// then a unique director hit, then a unique id found by both searches.
func Resolve(ctx context.Context, repo Repository, q Query) (string, bool, error) {
	titles := cleanList(q.Titles)
	directors := cleanList(q.Directors)
	if len(titles) == 0 && len(directors) == 0 {
		return "", false, nil
	}
	filter := q.Filter()

	var byTitle []string
	if len(titles) > 0 {
		found, err := repo.FindByTitles(ctx, titles, filter)
		if err != nil {
			return "", false, fmt.Errorf("search movie by title: %w", err)
		}
		byTitle = uniqueIDs(found)
	}
	if len(byTitle) == 1 && !q.FullMatch {
		return byTitle[0], true, nil
	}
	if len(directors) == 0 {
		return "", false, nil
	}

	found, err := repo.FindByDirectors(ctx, directors, filter)
	if err != nil {
		return "", false, fmt.Errorf("search movie by director: %w", err)
	}
	byDirector := uniqueIDs(found)
	if len(byDirector) == 1 && !q.FullMatch {
		return byDirector[0], true, nil
	}

	var both []string
	for _, id := range byTitle {
		if slices.Contains(byDirector, id) {
			both = append(both, id)
		}
	}
	if len(both) == 1 {
		return both[0], true, nil
	}
	return "", false, nil
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" && !slices.Contains(out, item) {
			out = append(out, item)
		}
	}
	return out
}

func uniqueIDs(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
