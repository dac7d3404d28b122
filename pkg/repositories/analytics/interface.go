package analytics

import (
	"context"
	"time"

	"github.com/fadedpez/bankroll/pkg/entities"
)

// Sink receives analytics documents. Writes are best effort: callers log
// failures and carry on.
type Sink interface {
	// IndexPlay records the outcome of one wager round
	IndexPlay(ctx context.Context, play *entities.PlayResult) error

	// IndexError records a reported command failure
	IndexError(ctx context.Context, report *entities.ErrorReport) error

	// PruneOlderThan deletes documents older than cutoff and returns how many went
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
