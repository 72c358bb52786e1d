// internal/repository/postgres/ledger_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"sportsbook/internal/repository"
	"sportsbook/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// LedgerRepository implements repository.LedgerRepository for PostgreSQL.
// The accounts row is the single source of truth for a wallet; no in-process
// cache sits in front of it.
type LedgerRepository struct{}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db *sqlx.DB) repository.LedgerRepository {
	return &LedgerRepository{}
}

// GetBalance returns the current balance using the provided DBExecutor.
func (r *LedgerRepository) GetBalance(ctx context.Context, q repository.DBExecutor, userID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	query := `SELECT balance FROM accounts WHERE id = $1`
	err := q.GetContext(ctx, &balance, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return decimal.Zero, util.ErrUserNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to get balance for user %s: %w", userID, err)
	}
	return balance, nil
}

// DebitIfSufficient decrements the balance only when it covers the amount.
// The check and the decrement are one conditioned UPDATE, so two concurrent
// debits against the same row cannot both succeed if only one would leave
// the balance non-negative.
func (r *LedgerRepository) DebitIfSufficient(ctx context.Context, q repository.DBExecutor, userID string, amount decimal.Decimal) error {
	query := `UPDATE accounts SET balance = balance - $1 WHERE id = $2 AND balance >= $1`
	result, err := q.ExecContext(ctx, query, amount, userID)
	if err != nil {
		return fmt.Errorf("failed to debit user %s: %w", userID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected debiting user %s: %w", userID, err)
	}
	if rowsAffected == 0 {
		// Distinguish a missing account from an uncovered stake.
		if _, err := r.GetBalance(ctx, q, userID); err != nil {
			return err
		}
		return util.ErrInsufficientFunds
	}
	return nil
}

// Credit unconditionally increments the balance by amount.
func (r *LedgerRepository) Credit(ctx context.Context, q repository.DBExecutor, userID string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return util.ErrInvalidInput
	}
	query := `UPDATE accounts SET balance = balance + $1 WHERE id = $2`
	result, err := q.ExecContext(ctx, query, amount, userID)
	if err != nil {
		return fmt.Errorf("failed to credit user %s: %w", userID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected crediting user %s: %w", userID, err)
	}
	if rowsAffected == 0 {
		return util.ErrUserNotFound
	}
	return nil
}
