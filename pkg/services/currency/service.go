package currency

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/fadedpez/bankroll/internal/logging"
	"github.com/fadedpez/bankroll/internal/types"
	"github.com/fadedpez/bankroll/pkg/entities"
	"github.com/fadedpez/bankroll/pkg/repositories/analytics"
	currencyRepo "github.com/fadedpez/bankroll/pkg/repositories/currency"
	"github.com/google/uuid"
)

const (
	DailyCooldown  = 24 * time.Hour
	WeeklyCooldown = 7 * 24 * time.Hour

	DailyBase    = 50
	DailySpread  = 100
	WeeklyBase   = 500
	WeeklySpread = 1000
)

// Service handles currency business logic
type Service struct {
	repo   currencyRepo.Repository
	sink   analytics.Sink
	logger *logging.Logger
	now    func() time.Time

	mu  sync.Mutex
	rng *rand.Rand

	locks userLocks
}

// Option configures a Service
type Option func(*Service)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRand replaces the random source used for claim awards
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// WithLogger replaces the default logger
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService creates a new currency service
func NewService(repo currencyRepo.Repository, sink analytics.Sink, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		sink:   sink,
		logger: logging.Default,
		now:    time.Now,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LockUser serializes changes to userID's record. Load the record after
// locking and call the returned func once it has been saved.
func (s *Service) LockUser(userID string) (unlock func()) {
	return s.locks.lock(userID)
}

// Now returns the service clock's current time
func (s *Service) Now() time.Time {
	return s.now()
}

// GetOrCreate retrieves a record or creates a zeroed one. The bool reports
// whether the record was created.
func (s *Service) GetOrCreate(ctx context.Context, userID string) (*entities.CurrencyRecord, bool, error) {
	record, err := s.repo.Get(ctx, userID)
	if err == nil {
		return record, false, nil
	}

	if !errors.Is(err, currencyRepo.ErrRecordNotFound) {
		return nil, false, types.WrapError(types.ErrDatabaseError, "failed to load currency record", err)
	}

	record = entities.NewCurrencyRecord(userID)
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, false, types.WrapError(types.ErrDatabaseError, "failed to create currency record", err)
	}

	s.logger.Debug("Created currency record for user %s", userID)
	return record, true, nil
}

// Remaining returns how long until a claim made at claimedAt is available
// again, or zero when it already is.
func (s *Service) Remaining(claimedAt int64, cooldown time.Duration) time.Duration {
	next := entities.NextClaim(claimedAt, cooldown)
	remaining := next.Sub(s.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ClaimDaily awards the daily reward and stamps the claim time
func (s *Service) ClaimDaily(ctx context.Context, record *entities.CurrencyRecord) (int64, error) {
	return s.claim(ctx, record, &record.DailyClaimed, DailyCooldown, DailyBase, DailySpread)
}

// ClaimWeekly awards the weekly reward and stamps the claim time
func (s *Service) ClaimWeekly(ctx context.Context, record *entities.CurrencyRecord) (int64, error) {
	return s.claim(ctx, record, &record.WeeklyClaimed, WeeklyCooldown, WeeklyBase, WeeklySpread)
}

func (s *Service) claim(ctx context.Context, record *entities.CurrencyRecord, claimedAt *int64, cooldown time.Duration, base, spread int64) (int64, error) {
	if s.Remaining(*claimedAt, cooldown) > 0 {
		return 0, types.NewError(types.ErrCooldownActive, "reward already claimed")
	}

	award := base + s.intn(spread+1)
	record.CurrencyTotal += award
	*claimedAt = s.now().UnixMilli()

	if err := s.Save(ctx, record); err != nil {
		return 0, err
	}

	s.logger.Info("User %s claimed %d, balance now %d", record.UserID, award, record.CurrencyTotal)
	return award, nil
}

// Spend debits amount from the record if the balance covers it
func (s *Service) Spend(ctx context.Context, record *entities.CurrencyRecord, amount int64) error {
	if amount <= 0 {
		return types.NewError(types.ErrInvalidArgument, "amount must be positive")
	}
	if record.CurrencyTotal < amount {
		return types.NewError(types.ErrInsufficientFunds, fmt.Sprintf("balance %d is below %d", record.CurrencyTotal, amount))
	}

	record.CurrencyTotal -= amount
	return s.Save(ctx, record)
}

// ValidateWager checks a wager is positive and covered by the balance
func (s *Service) ValidateWager(record *entities.CurrencyRecord, wager int64) error {
	if wager < 1 {
		return types.NewError(types.ErrInvalidWager, "wager must be at least 1")
	}
	if wager > record.CurrencyTotal {
		return types.NewError(types.ErrInsufficientFunds, fmt.Sprintf("wager %d exceeds balance %d", wager, record.CurrencyTotal))
	}
	return nil
}

// Settle applies a round's result to the record, bumps the game's play count,
// persists it and sends the play to analytics.
func (s *Service) Settle(ctx context.Context, record *entities.CurrencyRecord, guildID string, game entities.GameType, wager, delta int64, outcome entities.Outcome) (*entities.PlayResult, error) {
	if err := s.ValidateWager(record, wager); err != nil {
		return nil, err
	}

	switch game {
	case entities.GameSlots:
		record.SlotsPlayed++
	case entities.GameTwentyOne:
		record.TwentyOnePlayed++
	case entities.GameGuess:
		record.GuessPlayed++
	default:
		return nil, types.NewError(types.ErrInvalidArgument, fmt.Sprintf("unknown game %q", game))
	}
	record.CurrencyTotal += delta

	if err := s.Save(ctx, record); err != nil {
		return nil, err
	}

	play := &entities.PlayResult{
		ID:           uuid.New().String(),
		UserID:       record.UserID,
		GuildID:      guildID,
		Game:         game,
		Wager:        wager,
		Delta:        delta,
		Outcome:      outcome,
		BalanceAfter: record.CurrencyTotal,
		PlayedAt:     s.now(),
	}

	if s.sink != nil {
		if err := s.sink.IndexPlay(ctx, play); err != nil {
			s.logger.WithFields(logging.Fields{
				"play_id": play.ID,
				"user_id": play.UserID,
			}).Warn("Failed to index play result: %v", err)
		}
	}

	return play, nil
}

// Save persists the record
func (s *Service) Save(ctx context.Context, record *entities.CurrencyRecord) error {
	if err := s.repo.Save(ctx, record); err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to save currency record", err)
	}
	return nil
}

// Economy returns the number of records and the total currency held
func (s *Service) Economy(ctx context.Context) (int64, int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, 0, err
	}
	total, err := s.repo.TotalCurrency(ctx)
	if err != nil {
		return 0, 0, err
	}
	return count, total, nil
}

func (s *Service) intn(n int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Int63n(n)
}
