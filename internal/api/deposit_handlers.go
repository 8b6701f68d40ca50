package api

import (
	"net/http"

	"github.com/shopspring/decimal"
)

type requestDepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type approveDepositRequest struct {
	ID int64 `json:"id"`
}

// RequestDepositHandler handles POST /api/deposits/request.
func (h *HandlerProvider) RequestDepositHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req requestDepositRequest

	err := decodeJSON(w, r, &req)
	if err != nil {
		writeDomainError(w, err, http.StatusConflict)
		return
	}

	dep, err := h.ledger.RequestDeposit(r.Context(), userID, req.Amount)
	if err != nil {
		writeDomainError(w, err, http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"deposit": toDepositJSON(dep)})
}

// ApproveDepositHandler handles POST /api/deposits/approve (admin).
// Already-approved reports 400, keeping the call idempotent for the caller.
func (h *HandlerProvider) ApproveDepositHandler(w http.ResponseWriter, r *http.Request) {
	adminID, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req approveDepositRequest

	err := decodeJSON(w, r, &req)
	if err != nil {
		writeDomainError(w, err, http.StatusConflict)
		return
	}

	if req.ID <= 0 {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	newBalance, err := h.ledger.ApproveDeposit(r.Context(), req.ID, adminID)
	if err != nil {
		writeDomainError(w, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"newBalance": newBalance,
	})
}

// PendingDepositsHandler handles GET /api/admin/deposits (admin).
func (h *HandlerProvider) PendingDepositsHandler(w http.ResponseWriter, r *http.Request) {
	out, err := h.ledger.PendingDeposits(r.Context())
	if err != nil {
		writeDomainError(w, err, http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"deposits": toDepositListJSON(out)})
}
