package api

import (
	"net/http"

	"github.com/betledger/betledger/internal/services/accounts"
	"github.com/betledger/betledger/internal/services/ledger"
	"github.com/betledger/betledger/internal/services/matchbook"
)

// HandlerProvider wraps the services and exposes HTTP handlers.
type HandlerProvider struct {
	accounts  *accounts.Service
	matchbook *matchbook.Service
	ledger    *ledger.Service
}

// NewHandler returns a new handler provider.
func NewHandler(acc *accounts.Service, mb *matchbook.Service, led *ledger.Service) *HandlerProvider {
	return &HandlerProvider{accounts: acc, matchbook: mb, ledger: led}
}

// identity pulls the verified identity or answers 401. The false return
// means the response has been written.
func (h *HandlerProvider) identity(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return 0, false
	}

	return id.UserID, true
}
