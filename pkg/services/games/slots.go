package games

import (
	"math/rand"

	"github.com/fadedpez/bankroll/pkg/entities"
)

// SlotSymbols are the faces on each reel
var SlotSymbols = []string{"🍒", "🍋", "🍊", "🍇", "🔔", "⭐", "💎"}

const (
	SlotReels             = 3
	SlotJackpotMultiplier = 5
)

type SlotsResult struct {
	Reels   []string
	Outcome entities.Outcome
	Delta   int64
}

// Slots spins three reels. Three of a kind pays five times the wager, a pair
// pays the wager, anything else loses it.
func (e *Engine) Slots(wager int64) *SlotsResult {
	reels := make([]string, SlotReels)
	e.withRand(func(r *rand.Rand) {
		for i := range reels {
			reels[i] = SlotSymbols[r.Intn(len(SlotSymbols))]
		}
	})
	return ScoreSlots(reels, wager)
}

// ScoreSlots settles a spin of three reels
func ScoreSlots(reels []string, wager int64) *SlotsResult {
	result := &SlotsResult{Reels: reels}

	switch {
	case reels[0] == reels[1] && reels[1] == reels[2]:
		result.Outcome = entities.OutcomeJackpot
		result.Delta = wager * SlotJackpotMultiplier
	case reels[0] == reels[1] || reels[1] == reels[2] || reels[0] == reels[2]:
		result.Outcome = entities.OutcomeWin
		result.Delta = wager
	default:
		result.Outcome = entities.OutcomeLoss
		result.Delta = -wager
	}

	return result
}
