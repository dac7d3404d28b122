package currency

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fadedpez/bankroll/pkg/entities"
)

// SQLiteRepository implements Repository using SQLite. The schema comes from
// the migrations in pkg/db/migrations.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a repository over an already migrated database
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Get retrieves a record by user ID
func (r *SQLiteRepository) Get(ctx context.Context, userID string) (*entities.CurrencyRecord, error) {
	query := `
		SELECT user_id, currency_total, daily_claimed, weekly_claimed, monthly_claimed,
			slots_played, twenty_one_played, guess_played, updated_at
		FROM currency_records WHERE user_id = ?
	`

	var record entities.CurrencyRecord
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&record.UserID,
		&record.CurrencyTotal,
		&record.DailyClaimed,
		&record.WeeklyClaimed,
		&record.MonthlyClaimed,
		&record.SlotsPlayed,
		&record.TwentyOnePlayed,
		&record.GuessPlayed,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("error getting currency record: %w", err)
	}

	return &record, nil
}

// Save creates or updates a record
func (r *SQLiteRepository) Save(ctx context.Context, record *entities.CurrencyRecord) error {
	record.UpdatedAt = time.Now().UTC()

	query := `
		INSERT INTO currency_records (
			user_id, currency_total, daily_claimed, weekly_claimed, monthly_claimed,
			slots_played, twenty_one_played, guess_played, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			currency_total = excluded.currency_total,
			daily_claimed = excluded.daily_claimed,
			weekly_claimed = excluded.weekly_claimed,
			monthly_claimed = excluded.monthly_claimed,
			slots_played = excluded.slots_played,
			twenty_one_played = excluded.twenty_one_played,
			guess_played = excluded.guess_played,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		record.UserID,
		record.CurrencyTotal,
		record.DailyClaimed,
		record.WeeklyClaimed,
		record.MonthlyClaimed,
		record.SlotsPlayed,
		record.TwentyOnePlayed,
		record.GuessPlayed,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error saving currency record: %w", err)
	}

	return nil
}

// Count returns the number of stored records
func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM currency_records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting currency records: %w", err)
	}
	return count, nil
}

// TotalCurrency returns the sum of every balance
func (r *SQLiteRepository) TotalCurrency(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(currency_total), 0) FROM currency_records`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing currency: %w", err)
	}
	return total, nil
}
