// internal/domain/bet.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BetStatus is the one-way lifecycle state of a bet.
type BetStatus string

const (
	BetStatusPlaced  BetStatus = "PLACED"
	BetStatusSettled BetStatus = "SETTLED"
)

// BetResult is the terminal outcome fixed at settlement.
type BetResult string

const (
	BetResultWin  BetResult = "WIN"
	BetResultLose BetResult = "LOSE"
	BetResultVoid BetResult = "VOID"
)

// ValidResult reports whether r is one of WIN, LOSE, VOID.
func ValidResult(r BetResult) bool {
	switch r {
	case BetResultWin, BetResultLose, BetResultVoid:
		return true
	}
	return false
}

// Bet is a stake-backed wager. Everything except Status, Result and
// SettledAt is frozen at placement time; later market changes never touch
// an existing bet.
type Bet struct {
	ID          string          `db:"id" json:"id"`
	UserID      string          `db:"user_id" json:"userId"`
	MatchID     string          `db:"match_id" json:"matchId"`
	Fixture     string          `db:"fixture" json:"fixture"`
	MarketLabel string          `db:"market_label" json:"marketLabel"`
	Odds        float64         `db:"odds" json:"odds"`
	Sport       string          `db:"sport" json:"sport"`
	Stake       int64           `db:"stake" json:"stake"`
	Payout      decimal.Decimal `db:"payout" json:"payout"`
	Status      BetStatus       `db:"status" json:"status"`
	Result      *BetResult      `db:"result" json:"result"`
	PlacedAt    time.Time       `db:"placed_at" json:"placedAt"`
	SettledAt   *time.Time      `db:"settled_at" json:"settledAt"`
}

// NewBet creates a PLACED bet with the payout computed from the trusted
// odds: stake * odds rounded to two decimal places.
func NewBet(userID, matchID, fixture, marketLabel, sport string, odds float64, stake int64) *Bet {
	payout := decimal.NewFromInt(stake).Mul(decimal.NewFromFloat(odds)).Round(2)
	return &Bet{
		ID:          uuid.NewString(),
		UserID:      userID,
		MatchID:     matchID,
		Fixture:     fixture,
		MarketLabel: marketLabel,
		Odds:        odds,
		Sport:       sport,
		Stake:       stake,
		Payout:      payout,
		Status:      BetStatusPlaced,
		PlacedAt:    time.Now().UTC(),
	}
}

// CreditAmount returns what the owner's wallet receives for a given result:
// the full payout on WIN, the stake back on VOID, nothing on LOSE.
func (b *Bet) CreditAmount(result BetResult) decimal.Decimal {
	switch result {
	case BetResultWin:
		return b.Payout
	case BetResultVoid:
		return decimal.NewFromInt(b.Stake)
	default:
		return decimal.Zero
	}
}

// OpenBet is a PLACED bet joined with minimal owner identity for the admin
// settlement view.
type OpenBet struct {
	Bet
	UserName  string `db:"user_name" json:"userName"`
	UserEmail string `db:"user_email" json:"userEmail"`
}
