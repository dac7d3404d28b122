package optout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fadedpez/bankroll/pkg/entities"
)

// SQLiteRepository implements Repository over the opt_outs table
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, userID string) (*entities.OptOut, error) {
	var optOut entities.OptOut
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, currency, updated_at FROM opt_outs WHERE user_id = ?`, userID,
	).Scan(&optOut.UserID, &optOut.Currency, &optOut.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOptOutNotFound
		}
		return nil, fmt.Errorf("error getting opt out: %w", err)
	}
	return &optOut, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, optOut *entities.OptOut) error {
	optOut.UpdatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO opt_outs (user_id, currency, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			currency = excluded.currency,
			updated_at = excluded.updated_at
	`, optOut.UserID, optOut.Currency, optOut.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error saving opt out: %w", err)
	}
	return nil
}
