// internal/quotes/service_test.go
package quotes

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(baseURL string) *Service {
	svc := NewService(Config{
		APIKey:           "test-key",
		Region:           "uk",
		CricketSportKey:  "cricket_ipl",
		FootballSportKey: "soccer_epl",
	}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.baseURL = baseURL
	return svc
}

// TestGetMatchesNormalization tests mapping of the odds API response into
// domain matches.
func TestGetMatchesNormalization(t *testing.T) {
	ctx := context.Background()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/sports/soccer_epl/odds/", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "h2h", r.URL.Query().Get("markets"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{
				"id": "ev-1",
				"sport_title": "EPL",
				"commence_time": "2026-09-05T14:00:00Z",
				"home_team": "Arsenal",
				"away_team": "Chelsea",
				"bookmakers": [
					{"markets": [{"key": "h2h", "outcomes": [
						{"name": "Arsenal", "price": 2.1},
						{"name": "Draw", "price": 3.3},
						{"name": "Chelsea", "price": 3.0}
					]}]},
					{"markets": [{"key": "h2h", "outcomes": [
						{"name": "Arsenal", "price": 9.9}
					]}]}
				]
			},
			{
				"id": "ev-2",
				"sport_title": "EPL",
				"commence_time": "not-a-timestamp",
				"home_team": "Leeds",
				"away_team": "Everton",
				"bookmakers": [
					{"markets": [{"key": "h2h", "outcomes": [
						{"name": "Leeds", "price": 1.8},
						{"name": "Everton"}
					]}]}
				]
			},
			{
				"id": "ev-3",
				"sport_title": "",
				"commence_time": "bad",
				"home_team": "Spurs",
				"away_team": "Wolves",
				"bookmakers": [
					{"markets": [
						{"key": "totals", "outcomes": [{"name": "Over", "price": 1.9}]},
						{"key": "h2h", "outcomes": [
							{"name": "Spurs", "price": 1.5},
							{"name": "Wolves", "price": 2.6}
						]}
					]}
				]
			}
		]`)
	}))
	defer upstream.Close()

	svc := newTestService(upstream.URL)
	matches, err := svc.GetMatches(ctx, "Football")

	require.NoError(t, err)
	require.Len(t, matches, 2, "event with a single priced outcome should be dropped")

	first := matches[0]
	assert.Equal(t, "ev-1", first.ID)
	assert.Equal(t, "Football", first.Sport)
	assert.Equal(t, "EPL", first.League)
	assert.Equal(t, "Arsenal", first.TeamA)
	assert.Equal(t, "Chelsea", first.TeamB)
	require.Len(t, first.Markets, 3, "only the first bookmaker contributes markets")
	assert.Equal(t, "Arsenal Win", first.Markets[0].Label)
	assert.Equal(t, 2.1, first.Markets[0].Odds)
	assert.Equal(t, "Draw", first.Markets[1].Label)
	assert.Equal(t, "Chelsea Win", first.Markets[2].Label)

	second := matches[1]
	assert.Equal(t, "ev-3", second.ID)
	assert.Equal(t, "Football", second.League, "missing league falls back to the sport name")
	assert.Equal(t, "bad", second.StartTime, "unparseable commence time passes through verbatim")
}

// TestGetMatchesCapsSnapshot tests the upper bound on matches per sport.
func TestGetMatchesCapsSnapshot(t *testing.T) {
	ctx := context.Background()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var events []string
		for i := 0; i < 25; i++ {
			events = append(events, fmt.Sprintf(`{
				"id": "ev-%d",
				"sport_title": "IPL",
				"commence_time": "2026-09-05T14:00:00Z",
				"home_team": "Home %d",
				"away_team": "Away %d",
				"bookmakers": [{"markets": [{"key": "h2h", "outcomes": [
					{"name": "Home %d", "price": 1.9},
					{"name": "Away %d", "price": 1.9}
				]}]}]
			}`, i, i, i, i, i))
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, "["+strings.Join(events, ",")+"]")
	}))
	defer upstream.Close()

	svc := newTestService(upstream.URL)
	matches, err := svc.GetMatches(ctx, "Cricket")

	require.NoError(t, err)
	assert.Len(t, matches, 10)
}

// TestGetMatchesFallback tests the fixture fallback paths.
func TestGetMatchesFallback(t *testing.T) {
	ctx := context.Background()

	assertCricketFallback(t, func(t *testing.T, svc *Service) {
		matches, err := svc.GetMatches(ctx, "Cricket")
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "cr-1", matches[0].ID)
		assert.Equal(t, "Mumbai Tigers", matches[0].TeamA)
		assert.Equal(t, "Chennai Kings", matches[0].TeamB)
		require.Len(t, matches[0].Markets, 2)
		assert.Equal(t, "Mumbai Tigers Win", matches[0].Markets[0].Label)
		assert.Equal(t, 1.82, matches[0].Markets[0].Odds)
		assert.Equal(t, "cr-2", matches[1].ID)
	})
}

func assertCricketFallback(t *testing.T, check func(t *testing.T, svc *Service)) {
	t.Run("NoAPIKeyConfigured", func(t *testing.T) {
		svc := NewService(Config{}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
		check(t, svc)
	})

	t.Run("UpstreamFailure", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer upstream.Close()
		check(t, newTestService(upstream.URL))
	})

	t.Run("UpstreamEmpty", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "[]")
		}))
		defer upstream.Close()
		check(t, newTestService(upstream.URL))
	})

	t.Run("UpstreamMalformed", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"not": "a list"}`)
		}))
		defer upstream.Close()
		check(t, newTestService(upstream.URL))
	})
}

// TestGetMatchesUnknownSport tests rejection of unsupported sports.
func TestGetMatchesUnknownSport(t *testing.T) {
	svc := newTestService("http://127.0.0.1:0")
	matches, err := svc.GetMatches(context.Background(), "Snooker")
	assert.Error(t, err)
	assert.Nil(t, matches)
}

// TestFallbackFixtures sanity-checks the built-in fixture data used when the
// upstream is unreachable.
func TestFallbackFixtures(t *testing.T) {
	for sport, matches := range fallbackMatches {
		assert.NotEmpty(t, matches, "sport %s has no fallback fixtures", sport)
		for _, match := range matches {
			assert.Equal(t, sport, match.Sport)
			assert.GreaterOrEqual(t, len(match.Markets), 2, "match %s needs at least two markets", match.ID)
			for _, market := range match.Markets {
				assert.Greater(t, market.Odds, 1.0, "market %s of %s", market.Label, match.ID)
				assert.LessOrEqual(t, market.Odds, 100.0)
			}
		}
	}
}
