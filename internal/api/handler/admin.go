// internal/api/handler/admin.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"sportsbook/internal/domain"
	"sportsbook/internal/service"
	"sportsbook/internal/util"
)

// AdminHandler handles the administrator settlement view.
type AdminHandler struct {
	betting service.BettingService
	logger  *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(betting service.BettingService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{betting: betting, logger: logger}
}

// ListOpenBets returns all PLACED bets across users with owner identity.
// GET /api/admin/bets/open?limit=
func (h *AdminHandler) ListOpenBets(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		if parsed, err := strconv.Atoi(rawLimit); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	bets, err := h.betting.ListOpenBets(r.Context(), limit)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"bets": bets,
	})
}

// SettleRequest represents the request body for settlement.
type SettleRequest struct {
	Result string `json:"result" validate:"required"`
}

// SettleBet applies a terminal outcome to a bet.
// POST /api/admin/bets/{betID}/settle
func (h *AdminHandler) SettleBet(w http.ResponseWriter, r *http.Request) {
	betID := chi.URLParam(r, "betID")
	if betID == "" {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	var req SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidResult)
		return
	}

	result := domain.BetResult(strings.ToUpper(req.Result))
	settlement, err := h.betting.Settle(r.Context(), betID, result)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"bet":    settlement.Bet,
		"wallet": settlement.NewBalance.StringFixed(2),
		"userId": settlement.UserID,
	})
}
