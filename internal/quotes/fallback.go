// internal/quotes/fallback.go
package quotes

import "sportsbook/internal/domain"

// fallbackMatches are served when the odds API is unreachable, unconfigured,
// or returns nothing usable.
var fallbackMatches = map[string][]domain.Match{
	"Cricket": {
		{
			ID:        "cr-1",
			Sport:     "Cricket",
			League:    "T20 League",
			StartTime: "18:30",
			TeamA:     "Mumbai Tigers",
			TeamB:     "Chennai Kings",
			Markets: []domain.Market{
				{Label: "Mumbai Tigers Win", Odds: 1.82},
				{Label: "Chennai Kings Win", Odds: 1.95},
			},
		},
		{
			ID:        "cr-2",
			Sport:     "Cricket",
			League:    "ODI Cup",
			StartTime: "20:00",
			TeamA:     "Sydney Strikers",
			TeamB:     "Cape Town Foxes",
			Markets: []domain.Market{
				{Label: "Sydney Strikers Win", Odds: 1.7},
				{Label: "Cape Town Foxes Win", Odds: 2.08},
			},
		},
	},
	"Football": {
		{
			ID:        "fb-1",
			Sport:     "Football",
			League:    "Premier League",
			StartTime: "19:00",
			TeamA:     "North London FC",
			TeamB:     "Merseyside United",
			Markets: []domain.Market{
				{Label: "North London FC Win", Odds: 2.15},
				{Label: "Draw", Odds: 3.2},
				{Label: "Merseyside United Win", Odds: 2.55},
			},
		},
		{
			ID:        "fb-2",
			Sport:     "Football",
			League:    "Champions Cup",
			StartTime: "21:15",
			TeamA:     "Madrid Stars",
			TeamB:     "Milan City",
			Markets: []domain.Market{
				{Label: "Madrid Stars Win", Odds: 1.92},
				{Label: "Draw", Odds: 3.4},
				{Label: "Milan City Win", Odds: 3.65},
			},
		},
	},
}
