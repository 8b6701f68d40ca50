package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/betledger/betledger/internal/repos/bets"
	"github.com/betledger/betledger/internal/repos/deposits"
	"github.com/betledger/betledger/internal/repos/matches"
	"github.com/betledger/betledger/internal/repos/users"
)

// userJSON deliberately omits the password hash.
type userJSON struct {
	ID        int64           `json:"id"`
	Email     string          `json:"email"`
	FullName  string          `json:"full_name"`
	Balance   decimal.Decimal `json:"balance"`
	IsAdmin   bool            `json:"is_admin"`
	CreatedAt time.Time       `json:"created_at"`
}

func toUserJSON(u users.User) userJSON {
	return userJSON{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Balance:   u.Balance,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

func toUserListJSON(us []users.User) []userJSON {
	out := make([]userJSON, len(us))
	for i, u := range us {
		out[i] = toUserJSON(u)
	}

	return out
}

type matchJSON struct {
	ID        int64           `json:"id"`
	Home      string          `json:"home"`
	Away      string          `json:"away"`
	Odds      decimal.Decimal `json:"odds"`
	CreatedAt time.Time       `json:"created_at"`
}

func toMatchJSON(m matches.Match) matchJSON {
	return matchJSON{ID: m.ID, Home: m.Home, Away: m.Away, Odds: m.Odds, CreatedAt: m.CreatedAt}
}

func toMatchListJSON(ms []matches.Match) []matchJSON {
	out := make([]matchJSON, len(ms))
	for i, m := range ms {
		out[i] = toMatchJSON(m)
	}

	return out
}

type depositJSON struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	ApprovedBy *int64          `json:"approved_by,omitempty"`
	ApprovedAt *time.Time      `json:"approved_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

func toDepositJSON(d deposits.Deposit) depositJSON {
	return depositJSON{
		ID:         d.ID,
		UserID:     d.UserID,
		Amount:     d.Amount,
		Status:     d.Status,
		ApprovedBy: d.ApprovedBy,
		ApprovedAt: d.ApprovedAt,
		CreatedAt:  d.CreatedAt,
	}
}

func toDepositListJSON(ds []deposits.Deposit) []depositJSON {
	out := make([]depositJSON, len(ds))
	for i, d := range ds {
		out[i] = toDepositJSON(d)
	}

	return out
}

type betJSON struct {
	ID        int64           `json:"id"`
	MatchID   int64           `json:"match_id"`
	Home      string          `json:"home"`
	Away      string          `json:"away"`
	Odds      decimal.Decimal `json:"odds"`
	Stake     decimal.Decimal `json:"stake"`
	Status    string          `json:"status"`
	Payout    decimal.Decimal `json:"payout"`
	SettledAt *time.Time      `json:"settled_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func toBetListJSON(bs []bets.BetWithMatch) []betJSON {
	out := make([]betJSON, len(bs))
	for i, b := range bs {
		out[i] = betJSON{
			ID:        b.ID,
			MatchID:   b.MatchID,
			Home:      b.Home,
			Away:      b.Away,
			Odds:      b.Odds,
			Stake:     b.Stake,
			Status:    b.Status,
			Payout:    b.Payout,
			SettledAt: b.SettledAt,
			CreatedAt: b.CreatedAt,
		}
	}

	return out
}
