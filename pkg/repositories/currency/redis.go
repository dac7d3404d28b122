package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fadedpez/bankroll/pkg/entities"
	"github.com/redis/go-redis/v9"
)

const (
	KeyCurrencyRecord = "currency:%s"
	KeyCurrencyUsers  = "currency:users"
)

// RedisRepository stores records as JSON documents, with a set of user IDs
// for the aggregate queries.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository wraps a connected client
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func (r *RedisRepository) Get(ctx context.Context, userID string) (*entities.CurrencyRecord, error) {
	data, err := r.client.Get(ctx, fmt.Sprintf(KeyCurrencyRecord, userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting currency record: %w", err)
	}

	var record entities.CurrencyRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("error decoding currency record: %w", err)
	}
	return &record, nil
}

func (r *RedisRepository) Save(ctx context.Context, record *entities.CurrencyRecord) error {
	record.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("error encoding currency record: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, fmt.Sprintf(KeyCurrencyRecord, record.UserID), data, 0)
	pipe.SAdd(ctx, KeyCurrencyUsers, record.UserID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("error saving currency record: %w", err)
	}
	return nil
}

func (r *RedisRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.client.SCard(ctx, KeyCurrencyUsers).Result()
	if err != nil {
		return 0, fmt.Errorf("error counting currency records: %w", err)
	}
	return count, nil
}

func (r *RedisRepository) TotalCurrency(ctx context.Context) (int64, error) {
	userIDs, err := r.client.SMembers(ctx, KeyCurrencyUsers).Result()
	if err != nil {
		return 0, fmt.Errorf("error listing currency users: %w", err)
	}
	if len(userIDs) == 0 {
		return 0, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(userIDs))
	for i, userID := range userIDs {
		cmds[i] = pipe.Get(ctx, fmt.Sprintf(KeyCurrencyRecord, userID))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("error loading currency records: %w", err)
	}

	var total int64
	for _, cmd := range cmds {
		data, err := cmd.Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("error loading currency record: %w", err)
		}
		var record entities.CurrencyRecord
		if err := json.Unmarshal([]byte(data), &record); err != nil {
			return 0, fmt.Errorf("error decoding currency record: %w", err)
		}
		total += record.CurrencyTotal
	}
	return total, nil
}
