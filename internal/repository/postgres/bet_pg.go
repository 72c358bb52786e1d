// internal/repository/postgres/bet_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sportsbook/internal/domain"
	"sportsbook/internal/repository"
	"sportsbook/internal/util"

	"github.com/jmoiron/sqlx"
)

// BetRepository implements repository.BetRepository for PostgreSQL.
type BetRepository struct{}

// NewBetRepository creates a new BetRepository.
func NewBetRepository(db *sqlx.DB) repository.BetRepository {
	return &BetRepository{}
}

// Insert creates a new bet row using the provided DBExecutor.
func (r *BetRepository) Insert(ctx context.Context, q repository.DBExecutor, bet *domain.Bet) error {
	query := `INSERT INTO bets (id, user_id, match_id, fixture, market_label, odds, sport, stake, payout, status, result, placed_at, settled_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := q.ExecContext(ctx, query,
		bet.ID, bet.UserID, bet.MatchID, bet.Fixture, bet.MarketLabel, bet.Odds,
		bet.Sport, bet.Stake, bet.Payout, bet.Status, bet.Result, bet.PlacedAt, bet.SettledAt)
	if err != nil {
		return fmt.Errorf("failed to insert bet: %w", err)
	}
	return nil
}

// GetByID retrieves a bet using the provided DBExecutor.
func (r *BetRepository) GetByID(ctx context.Context, q repository.DBExecutor, betID string) (*domain.Bet, error) {
	var bet domain.Bet
	query := `SELECT id, user_id, match_id, fixture, market_label, odds, sport, stake, payout, status, result, placed_at, settled_at
              FROM bets WHERE id = $1`
	err := q.GetContext(ctx, &bet, query, betID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrBetNotFound
		}
		return nil, fmt.Errorf("failed to get bet by ID %s: %w", betID, err)
	}
	return &bet, nil
}

// ListByUser returns the user's bets, newest placement first.
func (r *BetRepository) ListByUser(ctx context.Context, q repository.DBExecutor, userID string, limit int) ([]domain.Bet, error) {
	bets := []domain.Bet{}
	query := `SELECT id, user_id, match_id, fixture, market_label, odds, sport, stake, payout, status, result, placed_at, settled_at
              FROM bets WHERE user_id = $1
              ORDER BY placed_at DESC
              LIMIT $2`
	if err := q.SelectContext(ctx, &bets, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to list bets for user %s: %w", userID, err)
	}
	return bets, nil
}

// ListOpen returns PLACED bets joined with minimal owner identity,
// newest first.
func (r *BetRepository) ListOpen(ctx context.Context, q repository.DBExecutor, limit int) ([]domain.OpenBet, error) {
	bets := []domain.OpenBet{}
	query := `SELECT b.id, b.user_id, b.match_id, b.fixture, b.market_label, b.odds, b.sport, b.stake, b.payout, b.status, b.result, b.placed_at, b.settled_at,
                     a.name AS user_name, a.email AS user_email
              FROM bets b
              JOIN accounts a ON a.id = b.user_id
              WHERE b.status = 'PLACED'
              ORDER BY b.placed_at DESC
              LIMIT $1`
	if err := q.SelectContext(ctx, &bets, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list open bets: %w", err)
	}
	return bets, nil
}

// MarkSettled transitions PLACED -> SETTLED. The status check and the write
// are one conditioned UPDATE per bet id, which guarantees at-most-once
// settlement even when two admins race on the same bet.
func (r *BetRepository) MarkSettled(ctx context.Context, q repository.DBExecutor, betID string, result domain.BetResult, settledAt time.Time) error {
	query := `UPDATE bets SET status = 'SETTLED', result = $2, settled_at = $3 WHERE id = $1 AND status = 'PLACED'`
	res, err := q.ExecContext(ctx, query, betID, result, settledAt)
	if err != nil {
		return fmt.Errorf("failed to settle bet %s: %w", betID, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected settling bet %s: %w", betID, err)
	}
	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, q, betID); err != nil {
			return err
		}
		return util.ErrAlreadySettled
	}
	return nil
}
