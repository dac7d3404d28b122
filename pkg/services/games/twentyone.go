package games

import (
	"math/rand"

	"github.com/fadedpez/bankroll/pkg/entities"
)

type TwentyOneResult struct {
	PlayerCards []*entities.Card
	DealerCards []*entities.Card
	PlayerScore int
	DealerScore int
	Outcome     entities.Outcome
	Delta       int64
}

// TwentyOne deals a round from a fresh deck. Both hands draw below 17; the
// dealer does not draw once the player has busted.
func (e *Engine) TwentyOne(wager int64) *TwentyOneResult {
	deck := entities.NewDeck()
	e.withRand(func(r *rand.Rand) {
		deck.Shuffle(r)
	})
	return PlayTwentyOne(deck, wager)
}

// PlayTwentyOne plays a round from deck in draw order
func PlayTwentyOne(deck *entities.Deck, wager int64) *TwentyOneResult {
	player := []*entities.Card{deck.Draw(), deck.Draw()}
	dealer := []*entities.Card{deck.Draw(), deck.Draw()}

	for GetBestScore(player) < DealerStandsOn {
		player = append(player, deck.Draw())
	}

	if !IsBust(player) && !IsBlackjack(player) {
		for GetBestScore(dealer) < DealerStandsOn {
			dealer = append(dealer, deck.Draw())
		}
	}

	result := &TwentyOneResult{
		PlayerCards: player,
		DealerCards: dealer,
		PlayerScore: GetBestScore(player),
		DealerScore: GetBestScore(dealer),
	}

	switch CompareHands(player, dealer) {
	case 1:
		if IsBlackjack(player) {
			result.Outcome = entities.OutcomeBlackjack
			result.Delta = wager * 3 / 2
		} else {
			result.Outcome = entities.OutcomeWin
			result.Delta = wager
		}
	case 0:
		result.Outcome = entities.OutcomePush
	default:
		result.Outcome = entities.OutcomeLoss
		result.Delta = -wager
	}

	return result
}
