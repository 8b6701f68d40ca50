package deposits

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/betledger/betledger/internal/apperr"
	"github.com/betledger/betledger/internal/repos/deposits"
)

var _ deposits.Deposits = (*depositsRepo)(nil)

type depositsRepo struct{ db *sql.DB }

func New(db *sql.DB) *depositsRepo {
	return &depositsRepo{db: db}
}

const depositColumns = `id, user_id, amount, status, approved_by, approved_at, created_at`

func scanDeposit(row interface{ Scan(...any) error }) (deposits.Deposit, error) {
	var d deposits.Deposit

	err := row.Scan(&d.ID, &d.UserID, &d.Amount, &d.Status, &d.ApprovedBy, &d.ApprovedAt, &d.CreatedAt)
	if err != nil {
		return deposits.Deposit{}, err
	}

	return d, nil
}

func (r *depositsRepo) Insert(ctx context.Context, userID int64, amount decimal.Decimal) (deposits.Deposit, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO deposits (user_id, amount)
		VALUES ($1, $2)
		RETURNING `+depositColumns+`
	`, userID, amount)

	d, err := scanDeposit(row)
	if err != nil {
		return deposits.Deposit{}, fmt.Errorf("insert deposit: %w", err)
	}

	return d, nil
}

func (r *depositsRepo) ListPending(ctx context.Context) ([]deposits.Deposit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+depositColumns+`
		FROM deposits
		WHERE status = $1
		ORDER BY id ASC
	`, deposits.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending deposits: %w", err)
	}
	defer rows.Close()

	var out []deposits.Deposit

	for rows.Next() {
		d, err := scanDeposit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deposit: %w", err)
		}

		out = append(out, d)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate deposits: %w", err)
	}

	return out, nil
}

func (r *depositsRepo) LockAndGet(tx *sql.Tx, depositID int64) (deposits.Deposit, error) {
	row := tx.QueryRow(`
		SELECT `+depositColumns+`
		FROM deposits
		WHERE id = $1
		FOR UPDATE
	`, depositID)

	d, err := scanDeposit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return deposits.Deposit{}, apperr.NotFound("deposit not found")
		}

		return deposits.Deposit{}, fmt.Errorf("lock/get deposit: %w", err)
	}

	return d, nil
}

func (r *depositsRepo) MarkApproved(tx *sql.Tx, depositID, approvedBy int64, approvedAt time.Time) error {
	res, err := tx.Exec(`
		UPDATE deposits
		SET status = $2, approved_by = $3, approved_at = $4
		WHERE id = $1
		  AND status = $5
	`, depositID, deposits.StatusApproved, approvedBy, approvedAt, deposits.StatusPending)
	if err != nil {
		return fmt.Errorf("mark deposit approved: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return apperr.Conflict("deposit already approved")
	}

	return nil
}
