package games

import (
	"fmt"
	"math/rand"

	"github.com/fadedpez/bankroll/internal/types"
	"github.com/fadedpez/bankroll/pkg/entities"
)

const (
	GuessMin             = 1
	GuessMax             = 100
	GuessExactMultiplier = 10
	GuessCloseRange      = 5
	GuessPushRange       = 10
)

type GuessResult struct {
	Guess   int64
	Target  int64
	Outcome entities.Outcome
	Delta   int64
}

// Guess draws a number in [1, 100] and settles the guess against it
func (e *Engine) Guess(wager, guess int64) (*GuessResult, error) {
	if guess < GuessMin || guess > GuessMax {
		return nil, types.NewError(types.ErrInvalidArgument, fmt.Sprintf("guess %d outside %d..%d", guess, GuessMin, GuessMax))
	}

	var target int64
	e.withRand(func(r *rand.Rand) {
		target = GuessMin + r.Int63n(GuessMax-GuessMin+1)
	})
	return ScoreGuess(guess, target, wager), nil
}

// ScoreGuess pays ten times the wager for an exact guess and the wager for a
// guess within 5. Within 10 is a push.
func ScoreGuess(guess, target, wager int64) *GuessResult {
	result := &GuessResult{Guess: guess, Target: target}

	diff := guess - target
	if diff < 0 {
		diff = -diff
	}

	switch {
	case diff == 0:
		result.Outcome = entities.OutcomeJackpot
		result.Delta = wager * GuessExactMultiplier
	case diff <= GuessCloseRange:
		result.Outcome = entities.OutcomeWin
		result.Delta = wager
	case diff <= GuessPushRange:
		result.Outcome = entities.OutcomePush
	default:
		result.Outcome = entities.OutcomeLoss
		result.Delta = -wager
	}

	return result
}
