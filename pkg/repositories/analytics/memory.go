package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/fadedpez/bankroll/pkg/entities"
)

// MemorySink keeps documents in process. Used when Elasticsearch is not
// configured.
type MemorySink struct {
	plays  []*entities.PlayResult
	errors []*entities.ErrorReport
	mu     sync.RWMutex
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (m *MemorySink) IndexPlay(ctx context.Context, play *entities.PlayResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	playCopy := *play
	m.plays = append(m.plays, &playCopy)
	return nil
}

func (m *MemorySink) IndexError(ctx context.Context, report *entities.ErrorReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	reportCopy := *report
	m.errors = append(m.errors, &reportCopy)
	return nil
}

func (m *MemorySink) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	plays := m.plays[:0]
	for _, play := range m.plays {
		if play.PlayedAt.Before(cutoff) {
			removed++
			continue
		}
		plays = append(plays, play)
	}
	m.plays = plays

	reports := m.errors[:0]
	for _, report := range m.errors {
		if report.OccurredAt.Before(cutoff) {
			removed++
			continue
		}
		reports = append(reports, report)
	}
	m.errors = reports

	return removed, nil
}

// Plays returns a snapshot of the recorded play results
func (m *MemorySink) Plays() []*entities.PlayResult {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]*entities.PlayResult(nil), m.plays...)
}

// Errors returns a snapshot of the recorded error reports
func (m *MemorySink) Errors() []*entities.ErrorReport {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]*entities.ErrorReport(nil), m.errors...)
}
