// Package events publishes ledger lifecycle events to Kafka. Publishing is
// best-effort and happens only after the database transaction committed;
// a failed publish is logged, never surfaced to the caller.
package events

// Topic names for ledger events.
const (
	TopicDepositApproved = "deposit_approved"
	TopicBetPlaced       = "bet_placed"
	TopicBetSettled      = "bet_settled"
)

// DepositApproved is emitted after a deposit credit committed.
type DepositApproved struct {
	DepositID  int64  `json:"deposit_id"`
	UserID     int64  `json:"user_id"`
	Amount     string `json:"amount"`
	ApprovedBy int64  `json:"approved_by"`
	TsUnixMs   int64  `json:"ts_unix_ms"`
}

// BetPlaced is emitted after a stake debit plus bet insert committed.
type BetPlaced struct {
	BetID    int64  `json:"bet_id"`
	UserID   int64  `json:"user_id"`
	MatchID  int64  `json:"match_id"`
	Stake    string `json:"stake"`
	TsUnixMs int64  `json:"ts_unix_ms"`
}

// BetSettled is emitted after a payout credit committed.
type BetSettled struct {
	BetID     int64  `json:"bet_id"`
	UserID    int64  `json:"user_id"`
	Payout    string `json:"payout"`
	SettledBy int64  `json:"settled_by"`
	TsUnixMs  int64  `json:"ts_unix_ms"`
}
