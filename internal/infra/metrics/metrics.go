// Package metrics exposes Prometheus counters for the ledger plus a small
// side server for /metrics and /healthz.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LedgerTransactions counts money-moving transactions by operation and
// outcome. op: approve_deposit|place_bet|settle_bet; result: ok|error.
var LedgerTransactions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_transactions_total",
		Help: "Ledger transactions by operation and result.",
	},
	[]string{"op", "result"},
)

// ObserveLedgerOp records one ledger transaction outcome.
func ObserveLedgerOp(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}

	LedgerTransactions.WithLabelValues(op, result).Inc()
}

type HealthFunc func(ctx context.Context) error

// StartServer runs a lightweight HTTP server serving only /metrics and
// /healthz, on its own port so the public API surface stays clean.
func StartServer(port string, healthFn HealthFunc) *http.Server {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()

		err := healthFn(ctx)
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = fmt.Fprintf(w, "unhealthy: %v", err)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		_ = srv.ListenAndServe()
	}()

	return srv
}
