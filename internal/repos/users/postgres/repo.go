package users

import (
	"database/sql"

	"github.com/betledger/betledger/internal/repos/users"
)

var _ users.Users = (*usersRepo)(nil)

type usersRepo struct{ db *sql.DB }

func New(db *sql.DB) *usersRepo {
	return &usersRepo{db: db}
}

const userColumns = `id, email, password_hash, full_name, balance, is_admin, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (users.User, error) {
	var u users.User

	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Balance, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return users.User{}, err
	}

	return u, nil
}
