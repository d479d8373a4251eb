package memory

import (
	"maps"
	"sync"

	"github.com/omarshaarawi/kickoffbot/internal/models"
)

// Repository keeps send history in process memory. Used for dry runs.
type Repository struct {
	history models.History
	mu      sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{history: models.History{}}
}

func (r *Repository) Load() (models.History, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.history), nil
}

func (r *Repository) Save(history models.History) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = maps.Clone(history)
	if r.history == nil {
		r.history = models.History{}
	}
	return nil
}
