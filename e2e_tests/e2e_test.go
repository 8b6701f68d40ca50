// Package e2etests exercises the running API over HTTP. It expects the
// server on localhost:8080, started against a migrated database with
// ADMIN_EMAILS containing "admin@e2e.local".
package e2etests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"
)

const (
	baseURL   = "http://localhost:8080"
	timeout   = 5 * time.Second
	waitReady = 20 * time.Second
)

var httpClient = &http.Client{Timeout: timeout}

// runID makes emails unique per run so the suite can be re-run against the
// same database.
var runID = fmt.Sprintf("%d", time.Now().UnixNano())

func waitUntilReady(t *testing.T) {
	t.Helper()

	deadline := time.Now().Add(waitReady)
	for time.Now().Before(deadline) {
		resp, err := httpClient.Get(baseURL + "/healthz")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(200 * time.Millisecond)
	}

	t.Fatal("server not ready")
}

func doJSON(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	out := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("unmarshal %s %s (%d): %v: %s", method, path, resp.StatusCode, err, raw)
		}
	}

	return resp.StatusCode, out
}

// register creates the account, falling back to login when it already exists
// from a previous run.
func register(t *testing.T, email, password string) string {
	t.Helper()

	code, body := doJSON(t, http.MethodPost, "/api/register", "", map[string]any{
		"email":     email,
		"password":  password,
		"full_name": "E2E User",
	})
	if code == http.StatusConflict {
		code, body = doJSON(t, http.MethodPost, "/api/login", "", map[string]any{
			"email":    email,
			"password": password,
		})
		if code != http.StatusOK {
			t.Fatalf("login %s: want 200, got %d (%v)", email, code, body)
		}
	} else if code != http.StatusCreated {
		t.Fatalf("register %s: want 201, got %d (%v)", email, code, body)
	}

	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("register %s: no token in response: %v", email, body)
	}

	return token
}

func myBalance(t *testing.T, token string) string {
	t.Helper()

	code, body := doJSON(t, http.MethodGet, "/api/me", token, nil)
	if code != http.StatusOK {
		t.Fatalf("me: want 200, got %d (%v)", code, body)
	}

	user, _ := body["user"].(map[string]any)
	bal, _ := user["balance"].(string)

	return bal
}

func TestE2E_DepositBetSettleFlow(t *testing.T) {
	waitUntilReady(t)

	adminToken := register(t, "admin@e2e.local", "admin-pass")
	userToken := register(t, "user-"+runID+"@e2e.local", "user-pass")

	var matchID, depositID, betID float64

	t.Run("admin_creates_match", func(t *testing.T) {
		code, body := doJSON(t, http.MethodPost, "/api/matches", adminToken, map[string]any{
			"home": "Arsenal",
			"away": "Chelsea",
			"odds": "1.85",
		})
		if code != http.StatusCreated {
			t.Fatalf("create match: want 201, got %d (%v)", code, body)
		}
		match, _ := body["match"].(map[string]any)
		matchID, _ = match["id"].(float64)
		if matchID == 0 {
			t.Fatalf("no match id: %v", body)
		}
	})

	t.Run("user_cannot_create_match", func(t *testing.T) {
		code, body := doJSON(t, http.MethodPost, "/api/matches", userToken, map[string]any{
			"home": "A", "away": "B", "odds": "2.00",
		})
		if code != http.StatusForbidden {
			t.Fatalf("want 403, got %d (%v)", code, body)
		}
	})

	t.Run("user_requests_deposit", func(t *testing.T) {
		code, body := doJSON(t, http.MethodPost, "/api/deposits/request", userToken, map[string]any{
			"amount": "50.00",
		})
		if code != http.StatusCreated {
			t.Fatalf("request deposit: want 201, got %d (%v)", code, body)
		}
		dep, _ := body["deposit"].(map[string]any)
		depositID, _ = dep["id"].(float64)
		if depositID == 0 {
			t.Fatalf("no deposit id: %v", body)
		}

		// No balance movement before approval.
		if got := myBalance(t, userToken); got != "0" {
			t.Fatalf("balance before approval: want 0, got %s", got)
		}
	})

	t.Run("admin_approves_deposit", func(t *testing.T) {
		code, body := doJSON(t, http.MethodPost, "/api/deposits/approve", adminToken, map[string]any{
			"id": depositID,
		})
		if code != http.StatusOK {
			t.Fatalf("approve: want 200, got %d (%v)", code, body)
		}
		if got := myBalance(t, userToken); got != "50" {
			t.Fatalf("balance after approval: want 50, got %s", got)
		}
	})

	t.Run("double_approve_rejected", func(t *testing.T) {
		code, body := doJSON(t, http.MethodPost, "/api/deposits/approve", adminToken, map[string]any{
			"id": depositID,
		})
		if code != http.StatusBadRequest {
			t.Fatalf("double approve: want 400, got %d (%v)", code, body)
		}
		// Credited exactly once.
		if got := myBalance(t, userToken); got != "50" {
			t.Fatalf("balance after double approve: want 50, got %s", got)
		}
	})

	t.Run("user_places_bet", func(t *testing.T) {
		code, body := doJSON(t, http.MethodPost, "/api/bets/place", userToken, map[string]any{
			"match_id": matchID,
			"stake":    "20.00",
		})
		if code != http.StatusOK {
			t.Fatalf("place bet: want 200, got %d (%v)", code, body)
		}
		betID, _ = body["betId"].(float64)
		if betID == 0 {
			t.Fatalf("no bet id: %v", body)
		}
		if got := myBalance(t, userToken); got != "30" {
			t.Fatalf("balance after bet: want 30, got %s", got)
		}
	})

	t.Run("stake_over_balance_rejected", func(t *testing.T) {
		code, body := doJSON(t, http.MethodPost, "/api/bets/place", userToken, map[string]any{
			"match_id": matchID,
			"stake":    "30.01",
		})
		if code != http.StatusBadRequest {
			t.Fatalf("over-stake: want 400, got %d (%v)", code, body)
		}
		if got := myBalance(t, userToken); got != "30" {
			t.Fatalf("balance after rejected bet: want 30, got %s", got)
		}
	})

	t.Run("admin_settles_bet", func(t *testing.T) {
		code, body := doJSON(t, http.MethodPost, "/api/bets/payout", adminToken, map[string]any{
			"betId":  betID,
			"amount": "37.00",
		})
		if code != http.StatusOK {
			t.Fatalf("settle: want 200, got %d (%v)", code, body)
		}
		if got := myBalance(t, userToken); got != "67" {
			t.Fatalf("balance after payout: want 67, got %s", got)
		}
	})

	t.Run("double_settle_rejected", func(t *testing.T) {
		code, body := doJSON(t, http.MethodPost, "/api/bets/payout", adminToken, map[string]any{
			"betId":  betID,
			"amount": "37.00",
		})
		if code != http.StatusBadRequest {
			t.Fatalf("double settle: want 400, got %d (%v)", code, body)
		}
		if got := myBalance(t, userToken); got != "67" {
			t.Fatalf("balance after double settle: want 67, got %s", got)
		}
	})

	t.Run("my_bets_lists_settled_bet", func(t *testing.T) {
		code, body := doJSON(t, http.MethodGet, "/api/bets/my", userToken, nil)
		if code != http.StatusOK {
			t.Fatalf("my bets: want 200, got %d (%v)", code, body)
		}
		bets, _ := body["bets"].([]any)
		if len(bets) == 0 {
			t.Fatalf("no bets listed: %v", body)
		}
		bet, _ := bets[0].(map[string]any)
		if bet["status"] != "settled" {
			t.Fatalf("bet status: want settled, got %v", bet["status"])
		}
	})
}

func TestE2E_AuthAndValidation(t *testing.T) {
	waitUntilReady(t)

	email := "dup-" + runID + "@e2e.local"
	token := register(t, email, "some-pass")

	t.Run("duplicate_email_conflict", func(t *testing.T) {
		code, body := doJSON(t, http.MethodPost, "/api/register", "", map[string]any{
			"email":    email,
			"password": "other-pass",
		})
		if code != http.StatusConflict {
			t.Fatalf("duplicate register: want 409, got %d (%v)", code, body)
		}
	})

	t.Run("wrong_password_unauthorized", func(t *testing.T) {
		code, body := doJSON(t, http.MethodPost, "/api/login", "", map[string]any{
			"email":    email,
			"password": "wrong",
		})
		if code != http.StatusUnauthorized {
			t.Fatalf("wrong password: want 401, got %d (%v)", code, body)
		}
	})

	t.Run("missing_token_unauthorized", func(t *testing.T) {
		code, body := doJSON(t, http.MethodGet, "/api/me", "", nil)
		if code != http.StatusUnauthorized {
			t.Fatalf("no token: want 401, got %d (%v)", code, body)
		}
	})

	t.Run("garbage_token_unauthorized", func(t *testing.T) {
		code, body := doJSON(t, http.MethodGet, "/api/me", "not-a-token", nil)
		if code != http.StatusUnauthorized {
			t.Fatalf("bad token: want 401, got %d (%v)", code, body)
		}
	})

	t.Run("zero_deposit_rejected", func(t *testing.T) {
		code, body := doJSON(t, http.MethodPost, "/api/deposits/request", token, map[string]any{
			"amount": "0",
		})
		if code != http.StatusBadRequest {
			t.Fatalf("zero deposit: want 400, got %d (%v)", code, body)
		}
	})

	t.Run("bet_on_missing_match_not_found", func(t *testing.T) {
		code, body := doJSON(t, http.MethodPost, "/api/bets/place", token, map[string]any{
			"match_id": 99999999,
			"stake":    "1.00",
		})
		// Balance is zero, so the insufficient-balance check fires first.
		if code != http.StatusBadRequest && code != http.StatusNotFound {
			t.Fatalf("missing match: want 400 or 404, got %d (%v)", code, body)
		}
	})

	t.Run("matches_listing_is_public", func(t *testing.T) {
		code, body := doJSON(t, http.MethodGet, "/api/matches", "", nil)
		if code != http.StatusOK {
			t.Fatalf("list matches: want 200, got %d (%v)", code, body)
		}
	})
}
