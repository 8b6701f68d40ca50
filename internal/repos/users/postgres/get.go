package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/betledger/betledger/internal/apperr"
	"github.com/betledger/betledger/internal/repos/users"
)

func (r *usersRepo) GetByID(ctx context.Context, userID int64) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, userID)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, apperr.NotFound("user not found")
		}

		return users.User{}, fmt.Errorf("get user by id: %w", err)
	}

	return u, nil
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, apperr.NotFound("user not found")
		}

		return users.User{}, fmt.Errorf("get user by email: %w", err)
	}

	return u, nil
}

func (r *usersRepo) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	var isAdmin bool

	err := r.db.QueryRowContext(ctx, `
		SELECT is_admin
		FROM users
		WHERE id = $1
	`, userID).Scan(&isAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, apperr.NotFound("user not found")
		}

		return false, fmt.Errorf("get is_admin: %w", err)
	}

	return isAdmin, nil
}
