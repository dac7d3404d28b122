package entities

import (
	"time"
)

// CurrencyRecord is a user's persisted economy state
type CurrencyRecord struct {
	UserID          string    `json:"user_id"`           // Discord user ID
	CurrencyTotal   int64     `json:"currency_total"`    // Current BeccaCoin balance
	DailyClaimed    int64     `json:"daily_claimed"`     // Unix ms of the last daily claim, 0 if never
	WeeklyClaimed   int64     `json:"weekly_claimed"`    // Unix ms of the last weekly claim, 0 if never
	MonthlyClaimed  int64     `json:"monthly_claimed"`   // Unix ms of the last monthly claim, 0 if never
	SlotsPlayed     int64     `json:"slots_played"`      // Number of slot rounds played
	TwentyOnePlayed int64     `json:"twenty_one_played"` // Number of 21 rounds played
	GuessPlayed     int64     `json:"guess_played"`      // Number of guess rounds played
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewCurrencyRecord returns a record with every counter zeroed
func NewCurrencyRecord(userID string) *CurrencyRecord {
	return &CurrencyRecord{
		UserID:          userID,
		CurrencyTotal:   0,
		DailyClaimed:    0,
		WeeklyClaimed:   0,
		MonthlyClaimed:  0,
		SlotsPlayed:     0,
		TwentyOnePlayed: 0,
		GuessPlayed:     0,
		UpdatedAt:       time.Now(),
	}
}

// NextClaim returns when a claim last made at claimedAt (unix ms) becomes
// available again. A zero claimedAt is always available.
func NextClaim(claimedAt int64, cooldown time.Duration) time.Time {
	if claimedAt == 0 {
		return time.Time{}
	}
	return time.UnixMilli(claimedAt).Add(cooldown)
}

// OptOut records which feature categories a user has disabled
type OptOut struct {
	UserID    string
	Currency  bool
	UpdatedAt time.Time
}
