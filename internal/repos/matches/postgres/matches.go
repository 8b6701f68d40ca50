package matches

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/betledger/betledger/internal/apperr"
	"github.com/betledger/betledger/internal/repos/matches"
)

var _ matches.Matches = (*matchesRepo)(nil)

type matchesRepo struct{ db *sql.DB }

func New(db *sql.DB) *matchesRepo {
	return &matchesRepo{db: db}
}

func (r *matchesRepo) Insert(ctx context.Context, home, away string, odds decimal.Decimal) (matches.Match, error) {
	var m matches.Match

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO matches (home, away, odds)
		VALUES ($1, $2, $3)
		RETURNING id, home, away, odds, created_at
	`, home, away, odds).Scan(&m.ID, &m.Home, &m.Away, &m.Odds, &m.CreatedAt)
	if err != nil {
		return matches.Match{}, fmt.Errorf("insert match: %w", err)
	}

	return m, nil
}

func (r *matchesRepo) List(ctx context.Context) ([]matches.Match, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, home, away, odds, created_at
		FROM matches
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	var out []matches.Match

	for rows.Next() {
		var m matches.Match

		err = rows.Scan(&m.ID, &m.Home, &m.Away, &m.Odds, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}

		out = append(out, m)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}

	return out, nil
}

func (r *matchesRepo) Exists(tx *sql.Tx, matchID int64) error {
	var exists bool

	err := tx.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM matches WHERE id = $1)
	`, matchID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check match exists: %w", err)
	}

	if !exists {
		return apperr.NotFound("match not found")
	}

	return nil
}
