package deposits

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/betledger/betledger/internal/apperr"
	"github.com/betledger/betledger/internal/infra/pgtestutil"
	"github.com/betledger/betledger/internal/repos/deposits"
)

func seedUser(t *testing.T, db *sql.DB, email string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(
		`INSERT INTO users (email, password_hash) VALUES ($1, 'x') RETURNING id`,
		email,
	).Scan(&id)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	return id
}

func TestDeposits_InsertAndListPending(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)
	ctx := context.Background()

	userID := seedUser(t, db, "user@test.local")

	first, err := repo.Insert(ctx, userID, decimal.RequireFromString("10.00"))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if first.Status != deposits.StatusPending {
		t.Fatalf("status: want pending, got %s", first.Status)
	}
	if first.ApprovedBy != nil || first.ApprovedAt != nil {
		t.Fatalf("approval fields set on pending deposit: %+v", first)
	}

	second, err := repo.Insert(ctx, userID, decimal.RequireFromString("20.00"))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	pending, err := repo.ListPending(ctx)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending count: want 2, got %d", len(pending))
	}
	// Oldest first.
	if pending[0].ID != first.ID || pending[1].ID != second.ID {
		t.Fatalf("pending order: got %d, %d", pending[0].ID, pending[1].ID)
	}
}

func TestDeposits_MarkApproved_Guard(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)
	ctx := context.Background()

	adminID := seedUser(t, db, "admin@test.local")
	userID := seedUser(t, db, "user@test.local")

	dep, err := repo.Insert(ctx, userID, decimal.RequireFromString("10.00"))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	locked, err := repo.LockAndGet(tx, dep.ID)
	if err != nil {
		t.Fatalf("lock and get: %v", err)
	}
	if locked.Status != deposits.StatusPending {
		t.Fatalf("status: want pending, got %s", locked.Status)
	}

	err = repo.MarkApproved(tx, dep.ID, adminID, time.Now().UTC())
	if err != nil {
		t.Fatalf("mark approved: %v", err)
	}

	// Marking again inside the same tx hits the status guard.
	err = repo.MarkApproved(tx, dep.ID, adminID, time.Now().UTC())
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("second mark: want conflict, got %v", err)
	}
}

func TestDeposits_LockAndGet_NotFound(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = repo.LockAndGet(tx, 9999)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("want not found, got %v", err)
	}
}
