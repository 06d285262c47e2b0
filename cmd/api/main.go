package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wealthwise/wealthwise-backend/internal/api"
	"github.com/wealthwise/wealthwise-backend/internal/api/handlers"
	"github.com/wealthwise/wealthwise-backend/internal/auth"
	"github.com/wealthwise/wealthwise-backend/internal/cache"
	"github.com/wealthwise/wealthwise-backend/internal/config"
	"github.com/wealthwise/wealthwise-backend/internal/db"
	"github.com/wealthwise/wealthwise-backend/internal/livebalance"
	"github.com/wealthwise/wealthwise-backend/internal/logger"
	"github.com/wealthwise/wealthwise-backend/internal/metrics"
	"github.com/wealthwise/wealthwise-backend/internal/notify"
	"github.com/wealthwise/wealthwise-backend/internal/repository/postgres"
	"github.com/wealthwise/wealthwise-backend/internal/restore"
	"github.com/wealthwise/wealthwise-backend/internal/services"
	"github.com/wealthwise/wealthwise-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, 10)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(cfg.WorkerConcurrency)
	defer wp.Stop()

	hub := notify.NewHub()
	defer hub.Close()

	store := cache.New(cfg.CacheTTL)
	go sweepCache(ctx, store, 6*cfg.CacheTTL, log)

	balances := livebalance.NewRegistry(repos.Transactions, hub)
	defer balances.Close()

	restoreSvc := restore.New(store, restore.Sources{
		Profiles:     repos.Profiles,
		Transactions: repos.Transactions,
		Budgets:      repos.Budgets,
		Goals:        repos.Goals,
	}, cfg.ProfileTimeout, restore.RetryPolicy{
		MaxAttempts: cfg.RestoreAttempts,
		Backoff:     cfg.RestoreBackoff,
		Incomplete:  func(v any) bool { return v == nil },
	}, log)

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)

	userSvc := services.NewUserService(repos.Users, tm)
	profileSvc := services.NewProfileService(repos.Profiles, repos.Users, store)
	txnSvc := services.NewTransactionService(repos.Transactions, repos.AuditLogs, hub, store, wp)
	budgetSvc := services.NewBudgetService(repos.Budgets, repos.Transactions, store)
	goalSvc := services.NewGoalService(repos.Goals, store)
	insightSvc := services.NewInsightService(repos.Profiles, repos.Goals)
	adminSvc := services.NewAdminService(repos.Users, repos.Categories, repos.AuditLogs, store, wp)

	r := api.NewRouter(api.Deps{
		Cfg:       cfg,
		TM:        tm,
		Auth:      handlers.NewAuthHandler(userSvc),
		Profile:   handlers.NewProfileHandler(profileSvc),
		Txns:      handlers.NewTransactionHandler(txnSvc),
		Budgets:   handlers.NewBudgetHandler(budgetSvc),
		Goals:     handlers.NewGoalHandler(goalSvc),
		Dashboard: handlers.NewDashboardHandler(balances, insightSvc, restoreSvc),
		Admin:     handlers.NewAdminHandler(adminSvc),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

// sweepCache drops long-expired entries so stale fallback copies do
// not accumulate without bound. The interval is several TTLs wide on
// purpose: recently expired entries stay available as fallbacks.
func sweepCache(ctx context.Context, store *cache.Store, interval time.Duration, log *slog.Logger) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			if n := store.CleanExpired(); n > 0 {
				log.Debug("cache sweep", "evicted", n)
			}
		case <-ctx.Done():
			return
		}
	}
}
