// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrInvalidInput       = errors.New("invalid input provided")
	ErrInvalidStake       = errors.New("stake must be a positive whole number (max 100000)")
	ErrInvalidResult      = errors.New("result must be WIN, LOSE, or VOID")
	ErrUserNotFound       = errors.New("user not found")
	ErrBetNotFound        = errors.New("bet not found")
	ErrMatchUnavailable   = errors.New("match is not available for betting now")
	ErrMarketUnavailable  = errors.New("market is not available now")
	ErrInvalidOdds        = errors.New("invalid odds")
	ErrInsufficientFunds  = errors.New("insufficient wallet balance")
	ErrAlreadySettled     = errors.New("bet already settled")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrAdminRequired      = errors.New("admin access required")
	// Add more specific errors as needed
)

// IsError reports whether err matches the given sentinel error.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
