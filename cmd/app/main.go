package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plushka/stitchfarm/internal/account"
	"github.com/plushka/stitchfarm/internal/cleanup"
	"github.com/plushka/stitchfarm/internal/config"
	"github.com/plushka/stitchfarm/internal/database"
	"github.com/plushka/stitchfarm/internal/database/postgres"
	"github.com/plushka/stitchfarm/internal/domain"
	"github.com/plushka/stitchfarm/internal/farm"
	"github.com/plushka/stitchfarm/internal/handler"
	"github.com/plushka/stitchfarm/internal/market"
	"github.com/plushka/stitchfarm/internal/server"
	"github.com/plushka/stitchfarm/internal/stitch"
)

const (
	dbMaxConnections = 10
	dbMaxIdleTime    = 5 * time.Minute
	dbMaxLifetime    = 30 * time.Minute
	shutdownTimeout  = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initLogger(cfg)
	handler.InitValidator()

	pool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConnections, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	catalog := domain.DefaultCatalog()

	accountRepo := postgres.NewAccountRepository(pool)
	farmRepo := postgres.NewFarmRepository(pool)
	marketRepo := postgres.NewMarketRepository(pool)
	stitchRepo := postgres.NewStitchRepository(pool)

	accountSvc := account.NewService(accountRepo, cfg.ProfileCacheSize, cfg.ProfileCacheTTL)
	farmSvc := farm.NewService(farmRepo, accountSvc, catalog, farm.Config{
		GrowTime:    cfg.GrowTime,
		CollectTime: cfg.CollectTime,
		PlotCost:    cfg.PlotCost,
		PenCost:     cfg.PenCost,
		TreeCost:    cfg.TreeCost,
	})
	marketSvc := market.NewService(marketRepo, accountSvc, catalog)

	var notifier cleanup.Notifier = cleanup.NopNotifier{}
	if cfg.CleanupURL != "" {
		notifier = cleanup.NewHTTPNotifier(cfg.CleanupURL)
	}
	stitchSvc := stitch.NewService(stitchRepo, accountSvc, notifier, stitch.Config{
		ApprovalQuorum:  cfg.ApprovalQuorum,
		RejectionQuorum: cfg.RejectionQuorum,
		ReviewerReward:  cfg.ReviewerReward,
		AuthorReward:    cfg.AuthorReward,
	})

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, pool, accountSvc, farmSvc, marketSvc, stitchSvc)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server failed: %v", err)
	case sig := <-stop:
		slog.Default().Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		slog.Default().Error("Graceful shutdown failed", "error", err)
	}
	slog.Default().Info("Server stopped")
}
