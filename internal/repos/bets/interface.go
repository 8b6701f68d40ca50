package bets

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Bet status values. The only legal transition is open -> settled, applied
// exactly once by the ledger.
const (
	StatusOpen    = "open"
	StatusSettled = "settled"
)

type Bet struct {
	ID        int64
	UserID    int64
	MatchID   int64
	Stake     decimal.Decimal
	Status    string
	Payout    decimal.Decimal
	SettledAt *time.Time
	CreatedAt time.Time
}

// BetWithMatch joins a bet with its match labels for the my-bets listing.
type BetWithMatch struct {
	Bet
	Home string
	Away string
	Odds decimal.Decimal
}

type Bets interface {
	ListByUser(ctx context.Context, userID int64) ([]BetWithMatch, error)

	// Insert runs inside the PlaceBet transaction so the stake debit and the
	// bet row commit or roll back together.
	Insert(tx *sql.Tx, userID, matchID int64, stake decimal.Decimal) (int64, error)

	// LockAndGet locks the bet row; acquired before the user-row lock.
	LockAndGet(tx *sql.Tx, betID int64) (Bet, error)
	MarkSettled(tx *sql.Tx, betID int64, payout decimal.Decimal, settledAt time.Time) error
}
