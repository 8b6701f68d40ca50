package users

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// User is the account row. Balance is mutated only inside ledger
// transactions; PasswordHash never leaves the service layer.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FullName     string
	Balance      decimal.Decimal
	IsAdmin      bool
	CreatedAt    time.Time
}

type Users interface {
	Insert(ctx context.Context, email, passwordHash, fullName string, isAdmin bool) (User, error)
	GetByID(ctx context.Context, userID int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	IsAdmin(ctx context.Context, userID int64) (bool, error)
	ListByBalance(ctx context.Context, limit int) ([]User, error)

	LockAndGetBalance(tx *sql.Tx, userID int64) (decimal.Decimal, error)
	IncreaseBalance(tx *sql.Tx, userID int64, amount decimal.Decimal) error
	DecreaseBalance(tx *sql.Tx, userID int64, amount decimal.Decimal) error
}
