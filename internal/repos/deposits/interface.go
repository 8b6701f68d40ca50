package deposits

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Deposit status values. The only legal transition is pending -> approved,
// applied exactly once by the ledger.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

type Deposit struct {
	ID         int64
	UserID     int64
	Amount     decimal.Decimal
	Status     string
	ApprovedBy *int64
	ApprovedAt *time.Time
	CreatedAt  time.Time
}

type Deposits interface {
	Insert(ctx context.Context, userID int64, amount decimal.Decimal) (Deposit, error)
	ListPending(ctx context.Context) ([]Deposit, error)

	// LockAndGet locks the deposit row for the duration of the transaction.
	// Always acquired before the user-row lock (see ledger lock ordering).
	LockAndGet(tx *sql.Tx, depositID int64) (Deposit, error)
	MarkApproved(tx *sql.Tx, depositID, approvedBy int64, approvedAt time.Time) error
}
