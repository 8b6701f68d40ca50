// Package accounts handles registration, login and user lookups. Plain
// CRUD around the users table; balances are never mutated here.
package accounts

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/betledger/betledger/internal/apperr"
	"github.com/betledger/betledger/internal/auth"
	"github.com/betledger/betledger/internal/repos/users"
	pgusers "github.com/betledger/betledger/internal/repos/users/postgres"
)

// usersListLimit caps the admin balance leaderboard.
const usersListLimit = 100

type Service struct {
	users       users.Users
	jwtSecret   string
	tokenTTL    time.Duration
	adminEmails map[string]struct{}
}

// New builds the service. adminEmails is the bootstrap list: a registration
// with one of these addresses creates an admin account. Evaluated only at
// user-creation time.
func New(db *sql.DB, jwtSecret string, tokenTTL time.Duration, adminEmails []string) *Service {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			admins[e] = struct{}{}
		}
	}

	return &Service{
		users:       pgusers.New(db),
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		adminEmails: admins,
	}
}

// Register creates a user and issues a token. Duplicate emails surface as
// Conflict via the unique constraint, not a pre-check.
func (s *Service) Register(ctx context.Context, email, password, fullName string) (users.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := auth.HashPassword(password)
	if err != nil {
		return users.User{}, "", apperr.Internal("hash password", err)
	}

	_, isAdmin := s.adminEmails[email]

	u, err := s.users.Insert(ctx, email, hash, fullName, isAdmin)
	if err != nil {
		return users.User{}, "", fmt.Errorf("register: %w", err)
	}

	token, err := s.issueToken(u)
	if err != nil {
		return users.User{}, "", err
	}

	return u, token, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (users.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return users.User{}, "", apperr.Auth("invalid credentials")
		}

		return users.User{}, "", fmt.Errorf("login: %w", err)
	}

	if !auth.CheckPassword(u.PasswordHash, password) {
		return users.User{}, "", apperr.Auth("invalid credentials")
	}

	token, err := s.issueToken(u)
	if err != nil {
		return users.User{}, "", err
	}

	return u, token, nil
}

// Profile returns the user for an authenticated identity.
func (s *Service) Profile(ctx context.Context, userID int64) (users.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return users.User{}, fmt.Errorf("profile: %w", err)
	}

	return u, nil
}

// IsAdmin reports the stored admin flag; used by the admin middleware.
func (s *Service) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	isAdmin, err := s.users.IsAdmin(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("is admin: %w", err)
	}

	return isAdmin, nil
}

// ListByBalance returns users ordered by balance descending, capped.
func (s *Service) ListByBalance(ctx context.Context) ([]users.User, error) {
	out, err := s.users.ListByBalance(ctx, usersListLimit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return out, nil
}

func (s *Service) issueToken(u users.User) (string, error) {
	token, err := auth.IssueToken(auth.Identity{UserID: u.ID, Email: u.Email}, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", apperr.Internal("issue token", err)
	}

	return token, nil
}
