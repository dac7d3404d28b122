package currency

import (
	"context"
	"errors"

	"github.com/fadedpez/bankroll/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_currency

var (
	ErrRecordNotFound = errors.New("currency record not found")
)

// Repository defines the interface for currency record storage
type Repository interface {
	// Get retrieves a record by user ID, returning ErrRecordNotFound when absent
	Get(ctx context.Context, userID string) (*entities.CurrencyRecord, error)

	// Save creates or replaces a record
	Save(ctx context.Context, record *entities.CurrencyRecord) error

	// Count returns the number of stored records
	Count(ctx context.Context) (int64, error)

	// TotalCurrency returns the sum of every record's balance
	TotalCurrency(ctx context.Context) (int64, error)
}
