package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/betledger/betledger/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps the error taxonomy to transport status codes.
// conflictStatus lets ledger endpoints report already-approved /
// already-settled / insufficient-balance as 400 while duplicate email stays
// 409, matching the API contract.
func writeDomainError(w http.ResponseWriter, err error, conflictStatus int) {
	kind := apperr.KindOf(err)

	var status int

	switch kind {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = conflictStatus
	case apperr.KindAuth:
		status = http.StatusUnauthorized
	case apperr.KindForbidden:
		status = http.StatusForbidden
	default:
		status = http.StatusInternalServerError
	}

	if status == http.StatusInternalServerError {
		slog.Error("internal error", "error", err)
	}

	// apperr.Message never exposes internal causes.
	writeError(w, status, apperr.Message(err))
}

// decodeJSON reads a size-capped request body, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("empty body")
		}

		return apperr.Validation("invalid JSON")
	}

	return nil
}
