package storage

import (
	"context"
	"fmt"

	"github.com/fadedpez/bankroll/pkg/db"
	currencyRepo "github.com/fadedpez/bankroll/pkg/repositories/currency"
	optoutRepo "github.com/fadedpez/bankroll/pkg/repositories/optout"
)

// Backend types
const (
	TypeMemory = "memory"
	TypeSQLite = "sqlite"
	TypeRedis  = "redis"
)

// Stores are the repositories backing the currency command
type Stores struct {
	Currency currencyRepo.Repository
	OptOuts  optoutRepo.Repository

	closeFn func() error
}

// Close releases the underlying connection
func (s *Stores) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

// Options represents storage configuration options
type Options struct {
	Type string

	// SQLite
	Path string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// NewOptions creates a new Options with default values
func NewOptions() *Options {
	return &Options{
		Type:      TypeSQLite,
		Path:      "data/bankroll.db",
		RedisAddr: "localhost:6379",
	}
}

// Open connects to the configured backend and returns its repositories
func Open(ctx context.Context, opts *Options) (*Stores, error) {
	switch opts.Type {
	case TypeMemory:
		return &Stores{
			Currency: currencyRepo.NewMemoryRepository(),
			OptOuts:  optoutRepo.NewMemoryRepository(),
		}, nil

	case TypeSQLite:
		conn, err := db.OpenSQLite(opts.Path)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Currency: currencyRepo.NewSQLiteRepository(conn),
			OptOuts:  optoutRepo.NewSQLiteRepository(conn),
			closeFn:  conn.Close,
		}, nil

	case TypeRedis:
		client, err := db.OpenRedis(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Currency: currencyRepo.NewRedisRepository(client),
			OptOuts:  optoutRepo.NewRedisRepository(client),
			closeFn:  client.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage type %q", opts.Type)
	}
}
