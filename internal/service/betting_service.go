// internal/service/betting_service.go
package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"sportsbook/internal/domain"
	"sportsbook/internal/metrics"
	"sportsbook/internal/repository"
	"sportsbook/internal/util"
	"sportsbook/pkg/db"
)

// MaxStake bounds a single wager.
const MaxStake int64 = 100000

// DefaultBetListLimit bounds the user's own bet list.
const DefaultBetListLimit = 100

// QuoteProvider is the external quote collaborator. Whatever it returns is
// authoritative for validation at placement time.
type QuoteProvider interface {
	GetMatches(ctx context.Context, sport string) ([]domain.Match, error)
}

// PlaceBetInput is the caller's market selection. It deliberately carries no
// odds field: payout is always computed from a freshly fetched quote, so a
// client can never place a bet at manipulated odds.
type PlaceBetInput struct {
	MatchID     string
	MarketLabel string
	Sport       string
	Stake       int64
}

// PlacementResult is the outcome of a successful placement.
type PlacementResult struct {
	Bet        *domain.Bet
	NewBalance decimal.Decimal
}

// SettlementResult is the outcome of a successful settlement. UserID names
// the bet's owner so a caller can refresh that specific user's view.
type SettlementResult struct {
	Bet        *domain.Bet
	NewBalance decimal.Decimal
	UserID     string
}

// BettingService defines the bet-lifecycle business logic: placement,
// settlement and the two bounded listings.
type BettingService interface {
	PlaceBet(ctx context.Context, userID string, input PlaceBetInput) (*PlacementResult, error)
	Settle(ctx context.Context, betID string, result domain.BetResult) (*SettlementResult, error)
	ListUserBets(ctx context.Context, userID string, limit int) ([]domain.Bet, decimal.Decimal, error)
	ListOpenBets(ctx context.Context, limit int) ([]domain.OpenBet, error)
	GetAccount(ctx context.Context, userID string) (*domain.User, error)
}

// bettingService implements the BettingService interface.
type bettingService struct {
	dbBeginner db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	userRepo   repository.UserRepository
	ledgerRepo repository.LedgerRepository
	betRepo    repository.BetRepository
	quotes     QuoteProvider
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
}

// NewBettingService creates a new instance of BettingService.
func NewBettingService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	ledgerRepo repository.LedgerRepository,
	betRepo repository.BetRepository,
	quotes QuoteProvider,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) BettingService {
	return &bettingService{
		dbBeginner: dbBeginner,
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		betRepo:    betRepo,
		quotes:     quotes,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
	}
}

// PlaceBet validates the selection against live quotes, computes the payout
// from the trusted odds and performs the debit+insert pair as one atomic
// unit. On InsufficientFunds the bet is never created.
func (s *bettingService) PlaceBet(ctx context.Context, userID string, input PlaceBetInput) (*PlacementResult, error) {
	if input.Stake <= 0 || input.Stake > MaxStake {
		metrics.PlacementRejected.WithLabelValues("invalid_stake").Inc()
		return nil, util.ErrInvalidStake
	}
	if !domain.ValidSport(input.Sport) || input.MatchID == "" || input.MarketLabel == "" {
		return nil, util.ErrInvalidInput
	}

	// Re-read the current snapshot: odds shown to the user may have changed
	// or disappeared between fetch and submit.
	matches, err := s.quotes.GetMatches(ctx, input.Sport)
	if err != nil {
		return nil, fmt.Errorf("place bet: failed to fetch quotes: %w", err)
	}

	var selectedMatch *domain.Match
	for i := range matches {
		if matches[i].ID == input.MatchID {
			selectedMatch = &matches[i]
			break
		}
	}
	if selectedMatch == nil {
		metrics.PlacementRejected.WithLabelValues("market_unavailable").Inc()
		return nil, util.ErrMatchUnavailable
	}

	selectedMarket := selectedMatch.FindMarket(input.MarketLabel)
	if selectedMarket == nil {
		metrics.PlacementRejected.WithLabelValues("market_unavailable").Inc()
		return nil, util.ErrMarketUnavailable
	}

	trustedOdds := selectedMarket.Odds
	if math.IsNaN(trustedOdds) || math.IsInf(trustedOdds, 0) || trustedOdds <= 1 || trustedOdds > 100 {
		metrics.PlacementRejected.WithLabelValues("invalid_odds").Inc()
		return nil, util.ErrInvalidOdds
	}

	fixture := selectedMatch.TeamA + " vs " + selectedMatch.TeamB
	bet := domain.NewBet(userID, selectedMatch.ID, fixture, selectedMarket.Label, input.Sport, trustedOdds, input.Stake)

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("place bet: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("place bet: transaction controller does not implement DBExecutor")
	}

	stake := decimal.NewFromInt(input.Stake)
	if err := s.ledgerRepo.DebitIfSufficient(ctx, txExecutor, userID, stake); err != nil {
		if util.IsError(err, util.ErrInsufficientFunds) {
			metrics.PlacementRejected.WithLabelValues("insufficient_funds").Inc()
		}
		return nil, err
	}

	if err := s.betRepo.Insert(ctx, txExecutor, bet); err != nil {
		return nil, fmt.Errorf("place bet: failed to insert bet: %w", err)
	}

	newBalance, err := s.ledgerRepo.GetBalance(ctx, txExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("place bet: failed to read post-debit balance: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("place bet: failed to commit transaction: %w", err)
	}

	metrics.BetsPlaced.Inc()
	return &PlacementResult{Bet: bet, NewBalance: newBalance}, nil
}

// Settle applies a terminal outcome to a bet exactly once and conditionally
// credits the owner. The status transition and the credit commit together
// or not at all.
func (s *bettingService) Settle(ctx context.Context, betID string, result domain.BetResult) (*SettlementResult, error) {
	result = domain.BetResult(strings.ToUpper(string(result)))
	if !domain.ValidResult(result) {
		return nil, util.ErrInvalidResult
	}
	if betID == "" {
		return nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("settle: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("settle: transaction controller does not implement DBExecutor")
	}

	bet, err := s.betRepo.GetByID(ctx, txExecutor, betID)
	if err != nil {
		return nil, err
	}
	if bet.Status != domain.BetStatusPlaced {
		return nil, util.ErrAlreadySettled
	}

	settledAt := time.Now().UTC()
	if err := s.betRepo.MarkSettled(ctx, txExecutor, betID, result, settledAt); err != nil {
		return nil, err
	}

	creditAmount := bet.CreditAmount(result)
	if creditAmount.IsPositive() {
		if err := s.ledgerRepo.Credit(ctx, txExecutor, bet.UserID, creditAmount); err != nil {
			return nil, fmt.Errorf("settle: failed to credit user %s: %w", bet.UserID, err)
		}
	}

	newBalance, err := s.ledgerRepo.GetBalance(ctx, txExecutor, bet.UserID)
	if err != nil {
		return nil, fmt.Errorf("settle: failed to read post-credit balance: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("settle: failed to commit transaction: %w", err)
	}

	bet.Status = domain.BetStatusSettled
	bet.Result = &result
	bet.SettledAt = &settledAt

	metrics.BetsSettled.WithLabelValues(string(result)).Inc()
	return &SettlementResult{Bet: bet, NewBalance: newBalance, UserID: bet.UserID}, nil
}

// ListUserBets returns the user's bets newest-first along with the current
// balance, for the "my bets" view.
func (s *bettingService) ListUserBets(ctx context.Context, userID string, limit int) ([]domain.Bet, decimal.Decimal, error) {
	if limit <= 0 || limit > DefaultBetListLimit {
		limit = DefaultBetListLimit
	}
	balance, err := s.ledgerRepo.GetBalance(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	bets, err := s.betRepo.ListByUser(ctx, s.dbExecutor, userID, limit)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("list bets: %w", err)
	}
	return bets, balance, nil
}

// ListOpenBets returns all PLACED bets with owner identity for the admin
// settlement view.
func (s *bettingService) ListOpenBets(ctx context.Context, limit int) ([]domain.OpenBet, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	bets, err := s.betRepo.ListOpen(ctx, s.dbExecutor, limit)
	if err != nil {
		return nil, fmt.Errorf("list open bets: %w", err)
	}
	return bets, nil
}

// GetAccount returns the account for the authenticated user.
func (s *bettingService) GetAccount(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
