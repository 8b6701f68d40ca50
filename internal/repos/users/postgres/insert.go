package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/betledger/betledger/internal/apperr"
	"github.com/betledger/betledger/internal/repos/users"
)

func (r *usersRepo) Insert(ctx context.Context, email, passwordHash, fullName string, isAdmin bool) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, full_name, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns+`
	`, email, passwordHash, fullName, isAdmin)

	u, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return users.User{}, apperr.Conflict("email already registered")
		}

		return users.User{}, fmt.Errorf("insert user: %w", err)
	}

	return u, nil
}
