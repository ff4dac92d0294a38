package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikolayk812/orderflow/internal/config"
	"github.com/nikolayk812/orderflow/internal/domain"
	"github.com/nikolayk812/orderflow/internal/observability"
	"github.com/nikolayk812/orderflow/internal/postgres"
	"github.com/nikolayk812/orderflow/internal/repository"
	"github.com/nikolayk812/orderflow/internal/service"
	httptransport "github.com/nikolayk812/orderflow/internal/transport/http"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatal(err)
	}
}

func run(configPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("observability.NewLogger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres.NewPool: %w", err)
	}
	defer pool.Close()

	if cfg.Postgres.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("postgres.Migrate: %w", err)
		}
		logger.Info("migrations applied")
	}

	orderService, err := service.NewOrderService(service.OrderServiceDeps{
		Store:  repository.NewStore(pool),
		Logger: logger,
		PageLimits: domain.PageLimits{
			DefaultSize: cfg.Pagination.DefaultSize,
			MaxSize:     cfg.Pagination.MaxSize,
		},
	})
	if err != nil {
		return fmt.Errorf("service.NewOrderService: %w", err)
	}

	transport := httptransport.NewHTTPTransport(cfg.HTTP, orderService, logger)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- transport.Run()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("transport.Run: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := transport.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}

	logger.Info("shutdown complete")

	return nil
}
