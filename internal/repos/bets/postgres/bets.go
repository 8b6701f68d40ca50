package bets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/betledger/betledger/internal/apperr"
	"github.com/betledger/betledger/internal/repos/bets"
)

var _ bets.Bets = (*betsRepo)(nil)

type betsRepo struct{ db *sql.DB }

func New(db *sql.DB) *betsRepo {
	return &betsRepo{db: db}
}

func (r *betsRepo) Insert(tx *sql.Tx, userID, matchID int64, stake decimal.Decimal) (int64, error) {
	var id int64

	err := tx.QueryRow(`
		INSERT INTO bets (user_id, match_id, stake)
		VALUES ($1, $2, $3)
		RETURNING id
	`, userID, matchID, stake).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert bet: %w", err)
	}

	return id, nil
}

func (r *betsRepo) LockAndGet(tx *sql.Tx, betID int64) (bets.Bet, error) {
	var b bets.Bet

	err := tx.QueryRow(`
		SELECT id, user_id, match_id, stake, status, payout, settled_at, created_at
		FROM bets
		WHERE id = $1
		FOR UPDATE
	`, betID).Scan(&b.ID, &b.UserID, &b.MatchID, &b.Stake, &b.Status, &b.Payout, &b.SettledAt, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return bets.Bet{}, apperr.NotFound("bet not found")
		}

		return bets.Bet{}, fmt.Errorf("lock/get bet: %w", err)
	}

	return b, nil
}

func (r *betsRepo) MarkSettled(tx *sql.Tx, betID int64, payout decimal.Decimal, settledAt time.Time) error {
	res, err := tx.Exec(`
		UPDATE bets
		SET status = $2, payout = $3, settled_at = $4
		WHERE id = $1
		  AND status = $5
	`, betID, bets.StatusSettled, payout, settledAt, bets.StatusOpen)
	if err != nil {
		return fmt.Errorf("mark bet settled: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return apperr.Conflict("bet already settled")
	}

	return nil
}

func (r *betsRepo) ListByUser(ctx context.Context, userID int64) ([]bets.BetWithMatch, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT b.id, b.user_id, b.match_id, b.stake, b.status, b.payout, b.settled_at, b.created_at,
		       m.home, m.away, m.odds
		FROM bets b
		JOIN matches m ON m.id = b.match_id
		WHERE b.user_id = $1
		ORDER BY b.id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list bets: %w", err)
	}
	defer rows.Close()

	var out []bets.BetWithMatch

	for rows.Next() {
		var b bets.BetWithMatch

		err = rows.Scan(
			&b.ID, &b.UserID, &b.MatchID, &b.Stake, &b.Status, &b.Payout, &b.SettledAt, &b.CreatedAt,
			&b.Home, &b.Away, &b.Odds,
		)
		if err != nil {
			return nil, fmt.Errorf("scan bet: %w", err)
		}

		out = append(out, b)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate bets: %w", err)
	}

	return out, nil
}
