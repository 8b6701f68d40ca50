package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf_Table(t *testing.T) {
	t.Parallel()

	base := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"validation", Validation("stake must be positive"), KindValidation},
		{"not_found", NotFound("bet not found"), KindNotFound},
		{"conflict", Conflict("deposit already approved"), KindConflict},
		{"auth", Auth("token expired"), KindAuth},
		{"forbidden", Forbidden("admin access required"), KindForbidden},
		{"internal", Internal("query users", base), KindInternal},
		{"wrapped_once", fmt.Errorf("approve deposit: %w", NotFound("deposit not found")), KindNotFound},
		{"wrapped_twice", fmt.Errorf("handler: %w", fmt.Errorf("svc: %w", Conflict("bet already settled"))), KindConflict},
		{"foreign_error", base, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := KindOf(tt.err)
			if got != tt.want {
				t.Fatalf("kind mismatch: want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMessage_InternalNeverLeaksCause(t *testing.T) {
	t.Parallel()

	err := Internal("query users", errors.New("pq: password authentication failed"))

	got := Message(err)
	if got != "internal error" {
		t.Fatalf("internal message leaked: %q", got)
	}
}

func TestIs_MatchesByKind(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("place bet: %w", Conflict("insufficient balance"))

	if !errors.Is(err, Conflict("")) {
		t.Fatal("expected kind-level match")
	}
	if !errors.Is(err, Conflict("insufficient balance")) {
		t.Fatal("expected exact match")
	}
	if errors.Is(err, NotFound("")) {
		t.Fatal("unexpected cross-kind match")
	}
}

func TestUnwrap_PreservesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := Internal("list matches", cause)

	if !errors.Is(err, cause) {
		t.Fatal("cause lost in wrap")
	}
}
