package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/betledger/betledger/internal/api"
	"github.com/betledger/betledger/internal/events"
	"github.com/betledger/betledger/internal/infra/cache"
	"github.com/betledger/betledger/internal/infra/logging"
	"github.com/betledger/betledger/internal/infra/metrics"
	"github.com/betledger/betledger/internal/infra/pgutils"
	"github.com/betledger/betledger/internal/services/accounts"
	"github.com/betledger/betledger/internal/services/ledger"
	"github.com/betledger/betledger/internal/services/matchbook"
	"github.com/betledger/betledger/pkg/envconf"
	"github.com/betledger/betledger/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	// Local dev convenience; a missing .env is fine.
	_ = godotenv.Load()

	cfg := new(apiConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(cfg.LogLevel)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	dbConns, err := pgutils.OpenDB(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	shutdownqueue.Add(func(context.Context) error {
		slog.Info("Close db pool")
		return dbConns.Close()
	})

	var matchCache *cache.Cache

	if cfg.Redis.Addr != "" {
		matchCache, err = cache.Connect(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}

		shutdownqueue.Add(func(context.Context) error {
			slog.Info("Close redis client")
			return matchCache.Close()
		})
	}

	var pub events.Publisher = events.NopPublisher{}

	if cfg.Kafka.Brokers != "" {
		pub = events.NewKafkaPublisher(cfg.Kafka.Brokers)

		shutdownqueue.Add(func(context.Context) error {
			slog.Info("Close kafka publisher")
			return pub.Close()
		})
	}

	// --- Services ---
	accountsSrv := accounts.New(dbConns, cfg.JWTSecret, cfg.TokenTTL, cfg.adminEmailList())
	matchbookSrv := matchbook.New(dbConns, matchCache)
	ledgerSrv := ledger.New(dbConns, pub)

	// --- HTTP server ---
	router := api.NewRouter(accountsSrv, matchbookSrv, ledgerSrv, cfg.JWTSecret)
	srv := api.NewServer(cfg.Port, router)

	shutdownqueue.Add(func(c context.Context) error {
		slog.Info("Shut down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	if cfg.MetricsPort != "" {
		metricsSrv := metrics.StartServer(cfg.MetricsPort, dbConns.PingContext)

		shutdownqueue.Add(func(c context.Context) error {
			slog.Info("Shut down metrics server")
			return metricsSrv.Shutdown(c)
		})
	}

	// Run server
	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "port", cfg.Port)

	// --- Wait until either context cancels or server errors out ---
	select {
	case <-ctx.Done():
		// graceful path; deferred shutdownqueue.Shutdown will run
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
