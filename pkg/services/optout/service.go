package optout

import (
	"context"
	"errors"

	"github.com/fadedpez/bankroll/internal/types"
	"github.com/fadedpez/bankroll/pkg/entities"
	optoutRepo "github.com/fadedpez/bankroll/pkg/repositories/optout"
)

// Service reads and toggles per-user feature opt-outs
type Service struct {
	repo optoutRepo.Repository
}

func NewService(repo optoutRepo.Repository) *Service {
	return &Service{repo: repo}
}

// GetOrCreate returns the user's flags, storing an all-false entry on first use
func (s *Service) GetOrCreate(ctx context.Context, userID string) (*entities.OptOut, error) {
	optOut, err := s.repo.Get(ctx, userID)
	if err == nil {
		return optOut, nil
	}
	if !errors.Is(err, optoutRepo.ErrOptOutNotFound) {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to load opt out", err)
	}

	optOut = &entities.OptOut{UserID: userID}
	if err := s.repo.Save(ctx, optOut); err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to create opt out", err)
	}
	return optOut, nil
}

// IsOptedOutOfCurrency reports whether the user disabled currency commands
func (s *Service) IsOptedOutOfCurrency(ctx context.Context, userID string) (bool, error) {
	optOut, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return false, err
	}
	return optOut.Currency, nil
}

// SetCurrency sets the user's currency opt-out flag
func (s *Service) SetCurrency(ctx context.Context, userID string, optedOut bool) (*entities.OptOut, error) {
	optOut, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	optOut.Currency = optedOut
	if err := s.repo.Save(ctx, optOut); err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to save opt out", err)
	}
	return optOut, nil
}
