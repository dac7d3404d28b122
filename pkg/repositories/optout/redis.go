package optout

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fadedpez/bankroll/pkg/entities"
	"github.com/redis/go-redis/v9"
)

const KeyOptOut = "optout:%s"

// RedisRepository stores each user's flags in a hash
type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func (r *RedisRepository) Get(ctx context.Context, userID string) (*entities.OptOut, error) {
	fields, err := r.client.HGetAll(ctx, fmt.Sprintf(KeyOptOut, userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("error getting opt out: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrOptOutNotFound
	}

	optOut := &entities.OptOut{UserID: userID}
	optOut.Currency, _ = strconv.ParseBool(fields["currency"])
	if ts, err := strconv.ParseInt(fields["updated_at"], 10, 64); err == nil {
		optOut.UpdatedAt = time.UnixMilli(ts)
	}
	return optOut, nil
}

func (r *RedisRepository) Save(ctx context.Context, optOut *entities.OptOut) error {
	optOut.UpdatedAt = time.Now()

	err := r.client.HSet(ctx, fmt.Sprintf(KeyOptOut, optOut.UserID),
		"currency", strconv.FormatBool(optOut.Currency),
		"updated_at", strconv.FormatInt(optOut.UpdatedAt.UnixMilli(), 10),
	).Err()
	if err != nil {
		return fmt.Errorf("error saving opt out: %w", err)
	}
	return nil
}
