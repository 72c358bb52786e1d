// internal/repository/bet_repo.go
package repository

import (
	"context"
	"time"

	"sportsbook/internal/domain"
)

// BetRepository is durable CRUD-minus-delete for bet entities.
type BetRepository interface {
	// Insert creates a new bet row (status PLACED, result and settled_at null).
	Insert(ctx context.Context, q DBExecutor, bet *domain.Bet) error
	// GetByID retrieves a bet, or util.ErrBetNotFound.
	GetByID(ctx context.Context, q DBExecutor, betID string) (*domain.Bet, error)
	// ListByUser returns the user's bets, newest placement first, bounded.
	ListByUser(ctx context.Context, q DBExecutor, userID string, limit int) ([]domain.Bet, error)
	// ListOpen returns PLACED bets across all users joined with owner
	// name/email, newest first, bounded.
	ListOpen(ctx context.Context, q DBExecutor, limit int) ([]domain.OpenBet, error)
	// MarkSettled transitions status PLACED -> SETTLED and sets
	// result/settled_at. The transition is conditioned on the current status
	// so it happens at most once; a lost race surfaces as
	// util.ErrAlreadySettled. Must be called while holding the enclosing
	// transaction that also guards the ledger credit.
	MarkSettled(ctx context.Context, q DBExecutor, betID string, result domain.BetResult, settledAt time.Time) error
}
