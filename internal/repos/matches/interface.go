package matches

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Match is a betting target. Immutable after creation.
type Match struct {
	ID        int64
	Home      string
	Away      string
	Odds      decimal.Decimal
	CreatedAt time.Time
}

type Matches interface {
	Insert(ctx context.Context, home, away string, odds decimal.Decimal) (Match, error)
	List(ctx context.Context) ([]Match, error)

	// Exists verifies the match inside a ledger transaction. Read-only, no
	// lock; matches never change once created.
	Exists(tx *sql.Tx, matchID int64) error
}
