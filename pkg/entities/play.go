package entities

import "time"

// GameType identifies a wager game
type GameType string

const (
	GameSlots     GameType = "slots"
	GameTwentyOne GameType = "21"
	GameGuess     GameType = "guess"
)

// Outcome is how a wager round ended for the player
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeLoss      Outcome = "loss"
	OutcomePush      Outcome = "push"
	OutcomeJackpot   Outcome = "jackpot"
	OutcomeBlackjack Outcome = "blackjack"
)

// IsWin returns true if the player gained currency
func (o Outcome) IsWin() bool {
	return o == OutcomeWin || o == OutcomeJackpot || o == OutcomeBlackjack
}

// PlayResult is the analytics record of one wager round
type PlayResult struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	GuildID      string    `json:"guild_id,omitempty"`
	Game         GameType  `json:"game"`
	Wager        int64     `json:"wager"`
	Delta        int64     `json:"delta"` // Signed balance change
	Outcome      Outcome   `json:"outcome"`
	BalanceAfter int64     `json:"balance_after"`
	PlayedAt     time.Time `json:"played_at"`
}

// ErrorReport is a persisted command failure, looked up by the id shown to users
type ErrorReport struct {
	ID         string    `json:"id"`
	Context    string    `json:"context"`
	Message    string    `json:"message"`
	GuildID    string    `json:"guild_id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	Command    string    `json:"command,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
