package users

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/betledger/betledger/internal/apperr"
)

// LockAndGetBalance takes the row-level exclusive lock that serializes all
// ledger writers touching this user. Held until the transaction ends.
func (r *usersRepo) LockAndGetBalance(tx *sql.Tx, userID int64) (decimal.Decimal, error) {
	var balance decimal.Decimal

	err := tx.QueryRow(`
		SELECT balance
		FROM users
		WHERE id = $1
		FOR UPDATE
	`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, apperr.NotFound("user not found")
		}

		return decimal.Zero, fmt.Errorf("lock/get balance: %w", err)
	}

	return balance, nil
}

func (r *usersRepo) IncreaseBalance(tx *sql.Tx, userID int64, amount decimal.Decimal) error {
	_, err := tx.Exec(`
		UPDATE users
		SET balance = balance + $2
		WHERE id = $1
	`, userID, amount)
	if err != nil {
		return fmt.Errorf("increase balance: %w", err)
	}

	return nil
}

// DecreaseBalance debits the user. The balance >= amount guard backs up the
// locked pre-check; zero rows affected means insufficient balance.
func (r *usersRepo) DecreaseBalance(tx *sql.Tx, userID int64, amount decimal.Decimal) error {
	res, err := tx.Exec(`
		UPDATE users
		SET balance = balance - $2
		WHERE id = $1
		  AND balance >= $2
	`, userID, amount)
	if err != nil {
		return fmt.Errorf("decrease balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return apperr.Conflict("insufficient balance")
	}

	return nil
}
