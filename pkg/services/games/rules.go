package games

import (
	"strconv"

	"github.com/fadedpez/bankroll/pkg/entities"
)

// DealerStandsOn is the score at which both hands stop drawing
const DealerStandsOn = 17

func GetCardValue(card *entities.Card) int {
	switch card.Rank {
	case entities.Ace:
		return 11
	case entities.Jack, entities.Queen, entities.King:
		return 10
	default:
		val, _ := strconv.Atoi(string(card.Rank))
		return val
	}
}

func IsAce(card *entities.Card) bool {
	return card.Rank == entities.Ace
}

// GetBestScore counts aces as 11 where that does not bust the hand
func GetBestScore(cards []*entities.Card) int {
	score := 0
	aces := 0

	for _, card := range cards {
		if IsAce(card) {
			aces++
		} else {
			score += GetCardValue(card)
		}
	}

	for i := 0; i < aces; i++ {
		// leave room for the remaining aces at 1 each
		if score+11+(aces-i-1) <= 21 {
			score += 11
		} else {
			score += 1
		}
	}

	return score
}

func IsBlackjack(cards []*entities.Card) bool {
	return len(cards) == 2 && GetBestScore(cards) == 21
}

// IsBust checks if a hand exceeds 21
func IsBust(cards []*entities.Card) bool {
	return GetBestScore(cards) > 21
}

// CompareHands returns 1 if the player wins, -1 if the dealer wins and 0 on
// a push. A busted player loses even if the dealer also busts.
func CompareHands(player, dealer []*entities.Card) int {
	if IsBust(player) {
		return -1
	}

	bjPlayer := IsBlackjack(player)
	bjDealer := IsBlackjack(dealer)
	switch {
	case bjPlayer && !bjDealer:
		return 1
	case !bjPlayer && bjDealer:
		return -1
	case bjPlayer && bjDealer:
		return 0
	}

	if IsBust(dealer) {
		return 1
	}

	playerScore := GetBestScore(player)
	dealerScore := GetBestScore(dealer)
	if playerScore > dealerScore {
		return 1
	} else if playerScore < dealerScore {
		return -1
	}
	return 0
}
