package optout

import (
	"context"
	"errors"

	"github.com/fadedpez/bankroll/pkg/entities"
)

var (
	ErrOptOutNotFound = errors.New("opt out not found")
)

// Repository defines the interface for opt-out flag storage
type Repository interface {
	// Get retrieves a user's flags, returning ErrOptOutNotFound when absent
	Get(ctx context.Context, userID string) (*entities.OptOut, error)

	// Save creates or replaces a user's flags
	Save(ctx context.Context, optOut *entities.OptOut) error
}
