// internal/repository/ledger_repo.go
package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// LedgerRepository holds the authoritative wallet balance per account and
// exposes the two conditional mutation primitives plus a read. The balance
// is mutated only through these methods, never directly.
type LedgerRepository interface {
	// GetBalance returns the current balance, or util.ErrUserNotFound.
	GetBalance(ctx context.Context, q DBExecutor, userID string) (decimal.Decimal, error)
	// DebitIfSufficient decrements the balance by amount only if the current
	// balance covers it, as a single atomic check-and-set. Returns
	// util.ErrInsufficientFunds when it does not, leaving the balance
	// unchanged, or util.ErrUserNotFound for an unknown account.
	DebitIfSufficient(ctx context.Context, q DBExecutor, userID string, amount decimal.Decimal) error
	// Credit unconditionally increments the balance by amount (amount >= 0).
	Credit(ctx context.Context, q DBExecutor, userID string, amount decimal.Decimal) error
}
