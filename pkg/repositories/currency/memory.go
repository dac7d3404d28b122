package currency

import (
	"context"
	"sync"
	"time"

	"github.com/fadedpez/bankroll/pkg/entities"
)

// MemoryRepository implements Repository using in-memory storage
type MemoryRepository struct {
	records map[string]*entities.CurrencyRecord
	mu      sync.RWMutex
}

// NewMemoryRepository creates a new in-memory currency repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[string]*entities.CurrencyRecord),
	}
}

func (r *MemoryRepository) Get(ctx context.Context, userID string) (*entities.CurrencyRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[userID]
	if !exists {
		return nil, ErrRecordNotFound
	}

	// Return a copy to prevent concurrent modification
	recordCopy := *record
	return &recordCopy, nil
}

func (r *MemoryRepository) Save(ctx context.Context, record *entities.CurrencyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.UpdatedAt = time.Now()

	recordCopy := *record
	r.records[record.UserID] = &recordCopy

	return nil
}

func (r *MemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.records)), nil
}

func (r *MemoryRepository) TotalCurrency(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, record := range r.records {
		total += record.CurrencyTotal
	}
	return total, nil
}
