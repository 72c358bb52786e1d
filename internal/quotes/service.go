// internal/quotes/service.go
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"sportsbook/internal/domain"
)

// Config holds quote collaborator settings.
type Config struct {
	APIKey           string
	Region           string
	CricketSportKey  string
	FootballSportKey string
	CacheTTL         time.Duration
}

// Service fetches market snapshots from the-odds-api.com, normalizes them
// into domain matches and serves fallback fixtures when the upstream is
// unavailable. An optional Redis client caches whole per-sport snapshots for
// a short TTL in front of the upstream call.
type Service struct {
	cfg     Config
	baseURL string
	client  *http.Client
	cache   *redis.Client // nil disables caching
	logger  *slog.Logger
}

const defaultBaseURL = "https://api.the-odds-api.com"

// NewService creates a quote service. cache may be nil.
func NewService(cfg Config, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{
		cfg:     cfg,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
		logger:  logger,
	}
}

// oddsAPIEvent mirrors the relevant slice of the odds API v4 response.
type oddsAPIEvent struct {
	ID           string `json:"id"`
	SportTitle   string `json:"sport_title"`
	CommenceTime string `json:"commence_time"`
	HomeTeam     string `json:"home_team"`
	AwayTeam     string `json:"away_team"`
	Bookmakers   []struct {
		Markets []struct {
			Key      string `json:"key"`
			Outcomes []struct {
				Name  string   `json:"name"`
				Price *float64 `json:"price"`
			} `json:"outcomes"`
		} `json:"markets"`
	} `json:"bookmakers"`
}

// GetMatches returns the current market snapshot for a sport. Whatever it
// returns is authoritative for placement-time validation.
func (s *Service) GetMatches(ctx context.Context, sport string) ([]domain.Match, error) {
	if !domain.ValidSport(sport) {
		return nil, fmt.Errorf("unknown sport %q", sport)
	}

	if cached, ok := s.cacheGet(ctx, sport); ok {
		return cached, nil
	}

	matches, err := s.fetchFromOddsAPI(ctx, sport)
	if err != nil {
		s.logger.Warn("odds API fetch failed, using fallback fixtures", "sport", sport, "error", err)
		return fallbackMatches[sport], nil
	}
	if len(matches) == 0 {
		return fallbackMatches[sport], nil
	}

	s.cacheSet(ctx, sport, matches)
	return matches, nil
}

func (s *Service) sportKey(sport string) string {
	switch sport {
	case "Cricket":
		return s.cfg.CricketSportKey
	case "Football":
		return s.cfg.FootballSportKey
	}
	return ""
}

func (s *Service) fetchFromOddsAPI(ctx context.Context, sport string) ([]domain.Match, error) {
	sportKey := s.sportKey(sport)
	if sportKey == "" || s.cfg.APIKey == "" {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/v4/sports/%s/odds/", s.baseURL, sportKey)
	params := url.Values{}
	params.Set("apiKey", s.cfg.APIKey)
	params.Set("regions", s.cfg.Region)
	params.Set("markets", "h2h")
	params.Set("oddsFormat", "decimal")
	params.Set("dateFormat", "iso")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build odds API request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("odds API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("odds API request failed with status %d", resp.StatusCode)
	}

	var events []oddsAPIEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode odds API response: %w", err)
	}

	matches := make([]domain.Match, 0, len(events))
	for _, event := range events {
		if m, ok := normalizeMatch(event, sport); ok {
			matches = append(matches, m)
		}
		if len(matches) == 10 {
			break
		}
	}
	return matches, nil
}

// normalizeMatch turns an odds API event into a domain match. Only the first
// bookmaker's h2h market is used; outcomes become "<team> Win" or "Draw"
// markets. Events with fewer than two priced outcomes are dropped.
func normalizeMatch(event oddsAPIEvent, sport string) (domain.Match, bool) {
	var markets []domain.Market
	if len(event.Bookmakers) > 0 {
		for _, m := range event.Bookmakers[0].Markets {
			if m.Key != "h2h" {
				continue
			}
			for _, outcome := range m.Outcomes {
				if outcome.Price == nil {
					continue
				}
				label := outcome.Name + " Win"
				if strings.EqualFold(outcome.Name, "draw") {
					label = "Draw"
				}
				markets = append(markets, domain.Market{Label: label, Odds: *outcome.Price})
			}
			break
		}
	}

	if len(markets) < 2 {
		return domain.Match{}, false
	}

	league := event.SportTitle
	if league == "" {
		league = sport
	}
	startTime := event.CommenceTime
	if t, err := time.Parse(time.RFC3339, event.CommenceTime); err == nil {
		startTime = t.Local().Format("Jan 2, 3:04 PM")
	}

	return domain.Match{
		ID:        event.ID,
		Sport:     sport,
		League:    league,
		StartTime: startTime,
		TeamA:     event.HomeTeam,
		TeamB:     event.AwayTeam,
		Markets:   markets,
	}, true
}

func cacheKey(sport string) string {
	return "quotes:" + sport
}

func (s *Service) cacheGet(ctx context.Context, sport string) ([]domain.Match, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, cacheKey(sport)).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("quote cache read failed", "sport", sport, "error", err)
		}
		return nil, false
	}
	var matches []domain.Match
	if err := json.Unmarshal([]byte(raw), &matches); err != nil {
		return nil, false
	}
	return matches, true
}

func (s *Service) cacheSet(ctx context.Context, sport string, matches []domain.Match) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(matches)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(sport), raw, s.cfg.CacheTTL).Err(); err != nil {
		s.logger.Warn("quote cache write failed", "sport", sport, "error", err)
	}
}
