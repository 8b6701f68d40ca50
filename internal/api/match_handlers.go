package api

import (
	"net/http"

	"github.com/shopspring/decimal"
)

type createMatchRequest struct {
	Home string          `json:"home"`
	Away string          `json:"away"`
	Odds decimal.Decimal `json:"odds"`
}

// CreateMatchHandler handles POST /api/matches (admin).
func (h *HandlerProvider) CreateMatchHandler(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest

	err := decodeJSON(w, r, &req)
	if err != nil {
		writeDomainError(w, err, http.StatusConflict)
		return
	}

	match, err := h.matchbook.Create(r.Context(), req.Home, req.Away, req.Odds)
	if err != nil {
		writeDomainError(w, err, http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"match": toMatchJSON(match)})
}

// ListMatchesHandler handles GET /api/matches. Public, no auth.
func (h *HandlerProvider) ListMatchesHandler(w http.ResponseWriter, r *http.Request) {
	out, err := h.matchbook.List(r.Context())
	if err != nil {
		writeDomainError(w, err, http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"matches": toMatchListJSON(out)})
}
