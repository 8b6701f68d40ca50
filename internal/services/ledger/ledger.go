// Package ledger implements the three money-moving transactions. Each runs
// as one database transaction with explicit row locks and an idempotency
// guard; no in-process state is shared between requests.
//
// Lock ordering, which every operation must preserve: the entity-specific
// row (deposit or bet) is locked first, the user row second. PlaceBet locks
// only the user row; the match is checked without a lock. This keeps lock
// acquisition acyclic across concurrent ApproveDeposit/PlaceBet/SettleBet.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/betledger/betledger/internal/apperr"
	"github.com/betledger/betledger/internal/events"
	"github.com/betledger/betledger/internal/infra/metrics"
	"github.com/betledger/betledger/internal/infra/pgutils"
	"github.com/betledger/betledger/internal/repos/bets"
	pgbets "github.com/betledger/betledger/internal/repos/bets/postgres"
	"github.com/betledger/betledger/internal/repos/deposits"
	pgdeposits "github.com/betledger/betledger/internal/repos/deposits/postgres"
	"github.com/betledger/betledger/internal/repos/matches"
	pgmatches "github.com/betledger/betledger/internal/repos/matches/postgres"
	"github.com/betledger/betledger/internal/repos/users"
	pgusers "github.com/betledger/betledger/internal/repos/users/postgres"
)

type Service struct {
	db       *sql.DB
	users    users.Users
	matches  matches.Matches
	deposits deposits.Deposits
	bets     bets.Bets
	pub      events.Publisher
}

func New(db *sql.DB, pub events.Publisher) *Service {
	if pub == nil {
		pub = events.NopPublisher{}
	}

	return &Service{
		db:       db,
		users:    pgusers.New(db),
		matches:  pgmatches.New(db),
		deposits: pgdeposits.New(db),
		bets:     pgbets.New(db),
		pub:      pub,
	}
}

// PlacedBet is the result of a successful PlaceBet.
type PlacedBet struct {
	BetID      int64
	NewBalance decimal.Decimal
}

// ApproveDeposit credits a pending deposit to its owner.
//
// 1) Lock the deposit row (NotFound if absent).
// 2) Reject a second approval (Conflict, no side effects).
// 3) Lock the owner's user row.
// 4) Credit the amount, stamp status/approver/time.
// Commit or full rollback; returns the new balance.
func (s *Service) ApproveDeposit(ctx context.Context, depositID, approverID int64) (decimal.Decimal, error) {
	var (
		newBalance decimal.Decimal
		ownerID    int64
		amount     decimal.Decimal
	)

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		dep, err := s.deposits.LockAndGet(tx, depositID)
		if err != nil {
			return fmt.Errorf("lock deposit: %w", err)
		}

		if dep.Status == deposits.StatusApproved {
			return apperr.Conflict("deposit already approved")
		}

		balance, err := s.users.LockAndGetBalance(tx, dep.UserID)
		if err != nil {
			// A deposit pointing at a missing user is a broken ledger, not a
			// caller mistake.
			if apperr.KindOf(err) == apperr.KindNotFound {
				return apperr.Internal("deposit owner missing", err)
			}

			return fmt.Errorf("lock user: %w", err)
		}

		err = s.users.IncreaseBalance(tx, dep.UserID, dep.Amount)
		if err != nil {
			return fmt.Errorf("credit deposit: %w", err)
		}

		err = s.deposits.MarkApproved(tx, depositID, approverID, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("mark approved: %w", err)
		}

		newBalance = balance.Add(dep.Amount)
		ownerID = dep.UserID
		amount = dep.Amount

		return nil
	})

	metrics.ObserveLedgerOp("approve_deposit", err)

	if err != nil {
		return decimal.Zero, fmt.Errorf("approve deposit: %w", err)
	}

	s.pub.Publish(ctx, events.TopicDepositApproved, depositID, events.DepositApproved{
		DepositID:  depositID,
		UserID:     ownerID,
		Amount:     amount.String(),
		ApprovedBy: approverID,
		TsUnixMs:   time.Now().UnixMilli(),
	})

	return newBalance, nil
}

// PlaceBet debits the stake and records the bet in one transaction.
//
// 1) Lock the caller's user row (NotFound is defensive; callers are
// authenticated).
// 2) Reject when balance < stake, before any write.
// 3) Verify the match exists (no lock).
// 4) Debit and insert the bet; both persist or neither does.
func (s *Service) PlaceBet(ctx context.Context, userID, matchID int64, stake decimal.Decimal) (PlacedBet, error) {
	if !stake.IsPositive() {
		return PlacedBet{}, apperr.Validation("stake must be positive")
	}

	var placed PlacedBet

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		balance, err := s.users.LockAndGetBalance(tx, userID)
		if err != nil {
			return fmt.Errorf("lock user: %w", err)
		}

		if balance.LessThan(stake) {
			return apperr.Conflict("insufficient balance")
		}

		err = s.matches.Exists(tx, matchID)
		if err != nil {
			return fmt.Errorf("check match: %w", err)
		}

		err = s.users.DecreaseBalance(tx, userID, stake)
		if err != nil {
			return fmt.Errorf("debit stake: %w", err)
		}

		betID, err := s.bets.Insert(tx, userID, matchID, stake)
		if err != nil {
			return fmt.Errorf("insert bet: %w", err)
		}

		placed = PlacedBet{BetID: betID, NewBalance: balance.Sub(stake)}

		return nil
	})

	metrics.ObserveLedgerOp("place_bet", err)

	if err != nil {
		return PlacedBet{}, fmt.Errorf("place bet: %w", err)
	}

	s.pub.Publish(ctx, events.TopicBetPlaced, placed.BetID, events.BetPlaced{
		BetID:    placed.BetID,
		UserID:   userID,
		MatchID:  matchID,
		Stake:    stake.String(),
		TsUnixMs: time.Now().UnixMilli(),
	})

	return placed, nil
}

// SettleBet credits an externally decided payout amount to the bet's owner.
// The payout is caller-supplied; no derivation from odds happens here.
//
// 1) Lock the bet row (NotFound if absent).
// 2) Reject a second settlement (Conflict, no side effects).
// 3) Lock the owner's user row, credit, stamp status/payout/time.
func (s *Service) SettleBet(ctx context.Context, betID int64, amount decimal.Decimal, adminID int64) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, apperr.Validation("payout must not be negative")
	}

	var (
		newBalance decimal.Decimal
		ownerID    int64
	)

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		bet, err := s.bets.LockAndGet(tx, betID)
		if err != nil {
			return fmt.Errorf("lock bet: %w", err)
		}

		if bet.Status == bets.StatusSettled {
			return apperr.Conflict("bet already settled")
		}

		balance, err := s.users.LockAndGetBalance(tx, bet.UserID)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				return apperr.Internal("bet owner missing", err)
			}

			return fmt.Errorf("lock user: %w", err)
		}

		err = s.users.IncreaseBalance(tx, bet.UserID, amount)
		if err != nil {
			return fmt.Errorf("credit payout: %w", err)
		}

		err = s.bets.MarkSettled(tx, betID, amount, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("mark settled: %w", err)
		}

		newBalance = balance.Add(amount)
		ownerID = bet.UserID

		return nil
	})

	metrics.ObserveLedgerOp("settle_bet", err)

	if err != nil {
		return decimal.Zero, fmt.Errorf("settle bet: %w", err)
	}

	s.pub.Publish(ctx, events.TopicBetSettled, betID, events.BetSettled{
		BetID:     betID,
		UserID:    ownerID,
		Payout:    amount.String(),
		SettledBy: adminID,
		TsUnixMs:  time.Now().UnixMilli(),
	})

	return newBalance, nil
}

// RequestDeposit records a pending funding request. Not a ledger mutation;
// the balance moves only on approval.
func (s *Service) RequestDeposit(ctx context.Context, userID int64, amount decimal.Decimal) (deposits.Deposit, error) {
	if !amount.IsPositive() {
		return deposits.Deposit{}, apperr.Validation("amount must be positive")
	}

	dep, err := s.deposits.Insert(ctx, userID, amount)
	if err != nil {
		return deposits.Deposit{}, fmt.Errorf("request deposit: %w", err)
	}

	return dep, nil
}

// PendingDeposits lists unapproved deposits, oldest first.
func (s *Service) PendingDeposits(ctx context.Context) ([]deposits.Deposit, error) {
	out, err := s.deposits.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("pending deposits: %w", err)
	}

	return out, nil
}

// MyBets lists the user's bets joined with match info, newest first.
func (s *Service) MyBets(ctx context.Context, userID int64) ([]bets.BetWithMatch, error) {
	out, err := s.bets.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("my bets: %w", err)
	}

	return out, nil
}
