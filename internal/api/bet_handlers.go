package api

import (
	"net/http"

	"github.com/shopspring/decimal"
)

type placeBetRequest struct {
	MatchID int64           `json:"match_id"`
	Stake   decimal.Decimal `json:"stake"`
}

type settleBetRequest struct {
	BetID  int64           `json:"betId"`
	Amount decimal.Decimal `json:"amount"`
}

// PlaceBetHandler handles POST /api/bets/place. Insufficient balance maps
// to 400 per the API contract.
func (h *HandlerProvider) PlaceBetHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req placeBetRequest

	err := decodeJSON(w, r, &req)
	if err != nil {
		writeDomainError(w, err, http.StatusConflict)
		return
	}

	if req.MatchID <= 0 {
		writeError(w, http.StatusBadRequest, "match_id is required")
		return
	}

	placed, err := h.ledger.PlaceBet(r.Context(), userID, req.MatchID, req.Stake)
	if err != nil {
		writeDomainError(w, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"betId":      placed.BetID,
		"newBalance": placed.NewBalance,
	})
}

// SettleBetHandler handles POST /api/bets/payout (admin). The payout amount
// is taken from the request as-is; already-settled reports 400.
func (h *HandlerProvider) SettleBetHandler(w http.ResponseWriter, r *http.Request) {
	adminID, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req settleBetRequest

	err := decodeJSON(w, r, &req)
	if err != nil {
		writeDomainError(w, err, http.StatusConflict)
		return
	}

	if req.BetID <= 0 {
		writeError(w, http.StatusBadRequest, "betId is required")
		return
	}

	_, err = h.ledger.SettleBet(r.Context(), req.BetID, req.Amount, adminID)
	if err != nil {
		writeDomainError(w, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// MyBetsHandler handles GET /api/bets/my.
func (h *HandlerProvider) MyBetsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}

	out, err := h.ledger.MyBets(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err, http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"bets": toBetListJSON(out)})
}
