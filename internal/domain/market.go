// internal/domain/market.go
package domain

// Market is a single priced outcome within a match.
type Market struct {
	Label string  `json:"label"`
	Odds  float64 `json:"odds"`
}

// Match is a fixture with its currently quoted markets, as returned by the
// quote collaborator. Whatever the collaborator returns is authoritative for
// validation at placement time.
type Match struct {
	ID        string   `json:"id"`
	Sport     string   `json:"sport"`
	League    string   `json:"league"`
	StartTime string   `json:"startTime"`
	TeamA     string   `json:"teamA"`
	TeamB     string   `json:"teamB"`
	Markets   []Market `json:"markets"`
}

// FindMarket returns the market with the exact label, or nil.
func (m *Match) FindMarket(label string) *Market {
	for i := range m.Markets {
		if m.Markets[i].Label == label {
			return &m.Markets[i]
		}
	}
	return nil
}

// ValidSport reports whether the sport tag is one the book carries.
func ValidSport(sport string) bool {
	return sport == "Cricket" || sport == "Football"
}
