// internal/domain/bet_test.go
package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewBetPayout tests payout computation at placement time.
func TestNewBetPayout(t *testing.T) {
	cases := []struct {
		name   string
		stake  int64
		odds   float64
		payout string
	}{
		{"whole result", 500, 1.82, "910"},
		{"needs rounding", 333, 1.95, "649.35"},
		{"half cent rounds up", 50, 2.05, "102.5"},
		{"repeating product", 7, 1.57, "10.99"},
		{"max stake high odds", 100000, 100, "10000000"},
		{"minimum stake", 1, 1.01, "1.01"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bet := NewBet("user-1", "cr-1", "A vs B", "A Win", "Cricket", tc.odds, tc.stake)

			want := decimal.RequireFromString(tc.payout)
			assert.True(t, want.Equal(bet.Payout), "want %s, got %s", want, bet.Payout)
		})
	}
}

// TestNewBetDefaults tests the initial lifecycle state.
func TestNewBetDefaults(t *testing.T) {
	bet := NewBet("user-1", "cr-1", "Mumbai Tigers vs Chennai Kings", "Mumbai Tigers Win", "Cricket", 1.82, 500)

	require.NotEmpty(t, bet.ID)
	assert.Equal(t, BetStatusPlaced, bet.Status)
	assert.Nil(t, bet.Result)
	assert.Nil(t, bet.SettledAt)
	assert.False(t, bet.PlacedAt.IsZero())

	other := NewBet("user-1", "cr-1", "Mumbai Tigers vs Chennai Kings", "Mumbai Tigers Win", "Cricket", 1.82, 500)
	assert.NotEqual(t, bet.ID, other.ID)
}

// TestCreditAmount tests what each result pays back into the wallet.
func TestCreditAmount(t *testing.T) {
	bet := NewBet("user-1", "cr-1", "A vs B", "A Win", "Cricket", 1.82, 500)

	assert.True(t, bet.Payout.Equal(bet.CreditAmount(BetResultWin)))
	assert.True(t, decimal.NewFromInt(500).Equal(bet.CreditAmount(BetResultVoid)))
	assert.True(t, decimal.Zero.Equal(bet.CreditAmount(BetResultLose)))
}

// TestValidResult tests result validation.
func TestValidResult(t *testing.T) {
	assert.True(t, ValidResult(BetResultWin))
	assert.True(t, ValidResult(BetResultLose))
	assert.True(t, ValidResult(BetResultVoid))
	assert.False(t, ValidResult("DRAW"))
	assert.False(t, ValidResult("win"))
	assert.False(t, ValidResult(""))
}
