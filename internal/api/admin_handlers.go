package api

import "net/http"

// ListUsersHandler handles GET /api/admin/users (admin): users ordered by
// balance descending, capped at 100.
func (h *HandlerProvider) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	out, err := h.accounts.ListByBalance(r.Context())
	if err != nil {
		writeDomainError(w, err, http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": toUserListJSON(out)})
}
