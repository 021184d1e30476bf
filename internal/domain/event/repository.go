package event

import "context"

// PublishRepository keeps the date each event id was first published.
type PublishRepository interface {
	Load(ctx context.Context) (map[string]string, error)
	Save(ctx context.Context, publish map[string]string) error
}
