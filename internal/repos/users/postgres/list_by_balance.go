package users

import (
	"context"
	"fmt"

	"github.com/betledger/betledger/internal/repos/users"
)

func (r *usersRepo) ListByBalance(ctx context.Context, limit int) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY balance DESC, id ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list users by balance: %w", err)
	}
	defer rows.Close()

	out := make([]users.User, 0, limit)

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}

		out = append(out, u)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return out, nil
}
