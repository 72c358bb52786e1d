// internal/api/handler/betting.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"sportsbook/internal/quotes"
	"sportsbook/internal/service"
	"sportsbook/internal/util"
)

// BettingHandler handles the authenticated user-facing endpoints: account,
// market browsing, bet listing and placement.
type BettingHandler struct {
	betting service.BettingService
	quotes  *quotes.Service
	logger  *slog.Logger
}

// NewBettingHandler creates a new BettingHandler.
func NewBettingHandler(betting service.BettingService, q *quotes.Service, logger *slog.Logger) *BettingHandler {
	return &BettingHandler{betting: betting, quotes: q, logger: logger}
}

// Me returns the calling user's sanitized account.
// GET /api/me
func (h *BettingHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := service.IdentityFromContext(r.Context())

	user, err := h.betting.GetAccount(r.Context(), identity.UserID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"user": sanitizeUser(user),
	})
}

// Matches returns the current market snapshot for a sport.
// GET /api/matches?sport=Cricket|Football
func (h *BettingHandler) Matches(w http.ResponseWriter, r *http.Request) {
	sport := r.URL.Query().Get("sport")
	if sport != "Cricket" && sport != "Football" {
		respondWithJSON(h.logger, w, http.StatusBadRequest, map[string]string{
			"error": "sport must be Cricket or Football",
		})
		return
	}

	matches, err := h.quotes.GetMatches(r.Context(), sport)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"matches": matches,
	})
}

// ListBets returns the calling user's bets, newest first, with the wallet.
// GET /api/bets
func (h *BettingHandler) ListBets(w http.ResponseWriter, r *http.Request) {
	identity := service.IdentityFromContext(r.Context())

	bets, balance, err := h.betting.ListUserBets(r.Context(), identity.UserID, service.DefaultBetListLimit)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"bets":   bets,
		"wallet": balance.StringFixed(2),
	})
}

// PlaceBetRequest represents the request body for placement. It carries no
// odds: the server re-reads the quote and never trusts client-visible odds.
type PlaceBetRequest struct {
	MatchID     string `json:"matchId" validate:"required,min=1,max=120"`
	MarketLabel string `json:"marketLabel" validate:"required,min=2,max=120"`
	Sport       string `json:"sport" validate:"required,oneof=Cricket Football"`
	Stake       int64  `json:"stake" validate:"required,gt=0,lte=100000"`
}

// PlaceBet handles the placement entry point.
// POST /api/bets
func (h *BettingHandler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	identity := service.IdentityFromContext(r.Context())

	var req PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	result, err := h.betting.PlaceBet(r.Context(), identity.UserID, service.PlaceBetInput{
		MatchID:     req.MatchID,
		MarketLabel: req.MarketLabel,
		Sport:       req.Sport,
		Stake:       req.Stake,
	})
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	bets, _, err := h.betting.ListUserBets(r.Context(), identity.UserID, service.DefaultBetListLimit)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, map[string]interface{}{
		"bet":    result.Bet,
		"wallet": result.NewBalance.StringFixed(2),
		"bets":   bets,
	})
}
