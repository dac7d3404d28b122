package optout

import (
	"context"
	"sync"
	"time"

	"github.com/fadedpez/bankroll/pkg/entities"
)

// MemoryRepository implements Repository using in-memory storage
type MemoryRepository struct {
	optOuts map[string]*entities.OptOut
	mu      sync.RWMutex
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		optOuts: make(map[string]*entities.OptOut),
	}
}

func (r *MemoryRepository) Get(ctx context.Context, userID string) (*entities.OptOut, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	optOut, exists := r.optOuts[userID]
	if !exists {
		return nil, ErrOptOutNotFound
	}

	optOutCopy := *optOut
	return &optOutCopy, nil
}

func (r *MemoryRepository) Save(ctx context.Context, optOut *entities.OptOut) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	optOut.UpdatedAt = time.Now()
	optOutCopy := *optOut
	r.optOuts[optOut.UserID] = &optOutCopy

	return nil
}
