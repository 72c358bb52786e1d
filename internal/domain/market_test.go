// internal/domain/market_test.go
package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindMarket(t *testing.T) {
	match := Match{
		ID:    "fb-1",
		Sport: "Football",
		Markets: []Market{
			{Label: "North London FC Win", Odds: 2.15},
			{Label: "Draw", Odds: 3.2},
		},
	}

	found := match.FindMarket("Draw")
	assert.NotNil(t, found)
	assert.Equal(t, 3.2, found.Odds)

	assert.Nil(t, match.FindMarket("draw"), "label match is exact")
	assert.Nil(t, match.FindMarket("Merseyside United Win"))
}

func TestValidSport(t *testing.T) {
	assert.True(t, ValidSport("Cricket"))
	assert.True(t, ValidSport("Football"))
	assert.False(t, ValidSport("cricket"))
	assert.False(t, ValidSport(""))
	assert.False(t, ValidSport("Snooker"))
}
