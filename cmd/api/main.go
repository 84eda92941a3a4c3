package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freelancepay/tracker/internal/app/migrate"
	httpx "github.com/freelancepay/tracker/internal/http"
	"github.com/freelancepay/tracker/internal/repository/postgres"
	"github.com/freelancepay/tracker/internal/service/auth"
	"github.com/freelancepay/tracker/internal/service/client"
	"github.com/freelancepay/tracker/internal/service/invoice"
	"github.com/freelancepay/tracker/internal/service/stats"
	"github.com/freelancepay/tracker/internal/session"
	"github.com/freelancepay/tracker/pkg/config"
	"github.com/freelancepay/tracker/pkg/logger"
)

func main() {
	cfg := config.LoadAPIConfig()
	log := logger.New("api", cfg.Environment, slog.LevelInfo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	runner, err := migrate.New(pool, cfg.DatabaseURL, cfg.MigrationsDir, log)
	if err != nil {
		log.Error("failed to configure migrations", "error", err)
		os.Exit(1)
	}
	defer runner.Close()
	if err := runner.Ping(ctx); err != nil {
		log.Error("database ping failed", "error", err)
		os.Exit(1)
	}
	if err := runner.Ensure(ctx); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	repo := postgres.New(pool)

	sessions := session.NewMemoryStore()
	limiter := httpx.NewMemoryRateLimiter()
	if addr := strings.TrimSpace(cfg.RedisAddr); addr != "" {
		redisSessions, err := session.NewRedisStore(addr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn("redis session store unavailable, sessions are in-process only", "error", err)
		} else {
			sessions.Close()
			sessions = redisSessions
		}
		redisLimiter, err := httpx.NewRedisRateLimiter(addr, cfg.RedisPassword, cfg.RedisDB, log)
		if err != nil {
			log.Warn("redis rate limiter unavailable", "error", err)
		} else {
			limiter.Close()
			limiter = redisLimiter
		}
	}
	defer sessions.Close()

	authSvc := auth.New(repo, sessions, log, cfg)
	clientSvc := client.New(repo, log)
	invoiceSvc := invoice.New(repo, log)
	statsSvc := stats.New(repo, log)

	router := httpx.NewRouter(log, authSvc, clientSvc, invoiceSvc, statsSvc, limiter, pool.Ping)
	defer router.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errorCh := make(chan error, 1)
	go func() {
		log.Info("api server starting", "addr", cfg.Addr)
		errorCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
		log.Info("api server stopped")
	case err := <-errorCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}
}
