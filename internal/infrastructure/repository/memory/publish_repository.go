package memory

import (
	"context"
	"maps"
	"sync"
)

// PublishRepository keeps publish dates for the lifetime of the process.
type PublishRepository struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewPublishRepository(seed map[string]string) *PublishRepository {
	items := make(map[string]string, len(seed))
	maps.Copy(items, seed)
	return &PublishRepository{items: items}
}

func (r *PublishRepository) Load(_ context.Context) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return maps.Clone(r.items), nil
}

// Save adds the dates of ids not stored yet.
func (r *PublishRepository) Save(_ context.Context, publish map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, date := range publish {
		if id == "" || date == "" {
			continue
		}
		if _, exists := r.items[id]; !exists {
			r.items[id] = date
		}
	}
	return nil
}
