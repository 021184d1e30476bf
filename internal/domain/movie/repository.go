package movie

import "context"

// Repository reads the local movie database.
type Repository interface {
	GetByID(ctx context.Context, id string) (Movie, bool, error)
	FindByTitles(ctx context.Context, titles []string, filter SearchFilter) ([]string, error)
	FindByDirectors(ctx context.Context, directors []string, filter SearchFilter) ([]string, error)
}
