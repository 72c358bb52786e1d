// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"sportsbook/internal/util"
)

// DefaultTimeout bounds request handling end to end.
const DefaultTimeout = 15 * time.Second

// validate checks request DTO tags before any service is touched.
var validate = validator.New()

// respondWithJSON sends a JSON response with the given status code.
func respondWithJSON(logger *slog.Logger, w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError translates service errors into stable, caller-visible
// failures. Each category keeps a distinct message so the presentation layer
// can react specifically.
func respondWithError(logger *slog.Logger, w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput),
		util.IsError(err, util.ErrInvalidStake),
		util.IsError(err, util.ErrInvalidResult),
		util.IsError(err, util.ErrMatchUnavailable),
		util.IsError(err, util.ErrMarketUnavailable),
		util.IsError(err, util.ErrInvalidOdds),
		util.IsError(err, util.ErrInsufficientFunds):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrInvalidCredentials),
		util.IsError(err, util.ErrMissingToken),
		util.IsError(err, util.ErrInvalidToken):
		statusCode = http.StatusUnauthorized
		message = err.Error()
	case util.IsError(err, util.ErrAdminRequired):
		statusCode = http.StatusForbidden
		message = err.Error()
	case util.IsError(err, util.ErrUserNotFound), util.IsError(err, util.ErrBetNotFound):
		statusCode = http.StatusNotFound
		message = err.Error()
	case util.IsError(err, util.ErrEmailTaken), util.IsError(err, util.ErrAlreadySettled):
		statusCode = http.StatusConflict
		message = err.Error()
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	respondWithJSON(logger, w, statusCode, map[string]string{"error": message})
}
