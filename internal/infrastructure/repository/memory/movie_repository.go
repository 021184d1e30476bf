package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/event-agenda/internal/domain/movie"
	"github.com/riskibarqy/event-agenda/internal/platform/textutil"
)

// MovieRepository serves movie lookups from a fixed list. Titles and
// director names compare case and accent insensitive.
type MovieRepository struct {
	mu     sync.RWMutex
	items  map[string]movie.Movie
	orders []string
}

func NewMovieRepository(movies []movie.Movie) *MovieRepository {
	items := make(map[string]movie.Movie, len(movies))
	orders := make([]string, 0, len(movies))
	for _, m := range movies {
		if _, dup := items[m.ID]; !dup {
			orders = append(orders, m.ID)
		}
		items[m.ID] = m
	}
	return &MovieRepository{items: items, orders: orders}
}

func (r *MovieRepository) GetByID(_ context.Context, id string) (movie.Movie, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[id]
	if !ok {
		return movie.Movie{}, false, nil
	}
	m.Titles = slices.Clone(m.Titles)
	m.Directors = slices.Clone(m.Directors)
	return m, true, nil
}

func (r *MovieRepository) FindByTitles(_ context.Context, titles []string, filter movie.SearchFilter) ([]string, error) {
	return r.find(titles, filter, func(m movie.Movie) []string { return m.Titles }), nil
}

func (r *MovieRepository) FindByDirectors(_ context.Context, directors []string, filter movie.SearchFilter) ([]string, error) {
	return r.find(directors, filter, func(m movie.Movie) []string { return m.Directors }), nil
}

func (r *MovieRepository) find(names []string, filter movie.SearchFilter, field func(movie.Movie) []string) []string {
	wanted := make([]string, 0, len(names))
	for _, n := range names {
		if n = textutil.Fold(n); n != "" {
			wanted = append(wanted, n)
		}
	}
	if len(wanted) == 0 {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for _, id := range r.orders {
		m := r.items[id]
		if !inWindow(m, filter) {
			continue
		}
		if slices.ContainsFunc(field(m), func(v string) bool { return slices.Contains(wanted, textutil.Fold(v)) }) {
			out = append(out, id)
		}
	}
	return out
}

func inWindow(m movie.Movie, f movie.SearchFilter) bool {
	switch {
	case f.MinYear > 0 && m.Year <= f.MinYear:
		return false
	case f.MaxYear > 0 && m.Year >= f.MaxYear:
		return false
	case f.MinDuration > 0 && m.Duration <= f.MinDuration:
		return false
	case f.MaxDuration > 0 && m.Duration >= f.MaxDuration:
		return false
	}
	return true
}
