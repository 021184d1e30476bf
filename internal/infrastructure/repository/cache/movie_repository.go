package cache

import (
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/event-agenda/internal/domain/movie"
	basecache "github.com/riskibarqy/event-agenda/internal/platform/cache"
)

// MovieRepository memoizes a movie.Repository for the whole run. The movie
// database is read only, so entries never go stale.
type MovieRepository struct {
	next     movie.Repository
	byID     *basecache.Store[cachedMovieByID]
	searches *basecache.Store[[]string]
}

type cachedMovieByID struct {
	value  movie.Movie
	exists bool
}

func NewMovieRepository(next movie.Repository) *MovieRepository {
	return &MovieRepository{
		next:     next,
		byID:     basecache.NewStore[cachedMovieByID](0),
		searches: basecache.NewStore[[]string](0),
	}
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (movie.Movie, bool, error) {
	cached, err := r.byID.GetOrLoad(ctx, "movie:id:"+id, func(ctx context.Context) (cachedMovieByID, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return cachedMovieByID{}, err
		}
		return cachedMovieByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return movie.Movie{}, false, err
	}
	return cloneMovie(cached.value), cached.exists, nil
}

func (r *MovieRepository) FindByTitles(ctx context.Context, titles []string, filter movie.SearchFilter) ([]string, error) {
	return r.search(ctx, "movie:title:"+searchKey(titles, filter), func(ctx context.Context) ([]string, error) {
		return r.next.FindByTitles(ctx, titles, filter)
	})
}

func (r *MovieRepository) FindByDirectors(ctx context.Context, directors []string, filter movie.SearchFilter) ([]string, error) {
	return r.search(ctx, "movie:director:"+searchKey(directors, filter), func(ctx context.Context) ([]string, error) {
		return r.next.FindByDirectors(ctx, directors, filter)
	})
}

func (r *MovieRepository) search(ctx context.Context, key string, load func(context.Context) ([]string, error)) ([]string, error) {
	ids, err := r.searches.GetOrLoad(ctx, key, func(ctx context.Context) ([]string, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(ids), nil
}

func searchKey(names []string, f movie.SearchFilter) string {
	return fmt.Sprintf("%q|%d|%d|%d|%d", names, f.MinYear, f.MaxYear, f.MinDuration, f.MaxDuration)
}

func cloneMovie(m movie.Movie) movie.Movie {
	m.Titles = slices.Clone(m.Titles)
	m.Directors = slices.Clone(m.Directors)
	return m
}
