package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/retry"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	"github.com/BruksfildServices01/salon-scheduler/internal/stats"
)

func main() {
	cfg := config.Load()
	logger := logging.New("salon-scheduler", cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := dbpkg.NewDB(cfg, logger)
	if err != nil {
		logger.Error("database init failed", "err", err)
		os.Exit(1)
	}

	metrics.InitMetrics()

	// Derivation lock: Redis when configured, in-process no-op otherwise.
	var locker lock.Locker = lock.Nop{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, 30*time.Second, 5*time.Second)
		logger.Info("redis lock enabled", "addr", cfg.RedisAddr)
	}

	// Statistics
	agg := stats.NewAggregator(infraRepo.NewStatisticsGormRepository(db), logger)

	var triggers stats.Multi
	if cfg.StatsFunctionURL != "" {
		policy := retry.DefaultPolicy().WithMaxAttempts(cfg.RetryMaxAttempts)
		triggers = append(triggers, stats.NewHTTPTrigger(cfg.StatsFunctionURL, cfg.StatsFunctionKey, policy))
	}
	if len(cfg.StatsKafkaBrokers) > 0 {
		kt := stats.NewKafkaTrigger(cfg.StatsKafkaBrokers, cfg.StatsKafkaTopic)
		defer kt.Close()
		triggers = append(triggers, kt)
	}
	if len(triggers) == 0 {
		triggers = append(triggers, stats.NewLocalTrigger(agg))
	}
	refresher := stats.NewRefresher(triggers, logger)

	scheduler, err := stats.NewScheduler(agg, cfg.StatsRefreshEvery, logger)
	if err != nil {
		logger.Error("statistics scheduler init failed", "err", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	dispatcher := audit.NewDispatcher(audit.New(db), logger)
	defer dispatcher.Close()

	deps := routes.Dependencies{
		DB:         db,
		Config:     cfg,
		Logger:     logger,
		Audit:      dispatcher,
		Locker:     locker,
		Refresher:  refresher,
		Aggregator: agg,
	}
	// A nil store answers every upload with storage.ErrNotConfigured.
	photos := storage.NewS3Store(cfg)
	if photos == nil {
		logger.Warn("S3_BUCKET not set, photo uploads disabled")
	}
	deps.Photos = photos

	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, deps)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", "err", err)
	}
}
