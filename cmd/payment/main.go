package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/shopstack/auth-platform/internal/api/http"
	"github.com/shopstack/auth-platform/internal/api/http/handlers"
	"github.com/shopstack/auth-platform/internal/auth"
	"github.com/shopstack/auth-platform/internal/config"
	"github.com/shopstack/auth-platform/internal/events"
	"github.com/shopstack/auth-platform/internal/observability"
	"github.com/shopstack/auth-platform/internal/persistence"
	"github.com/shopstack/auth-platform/internal/repository"
	"github.com/shopstack/auth-platform/internal/service"
	"github.com/shopstack/auth-platform/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	paymentRepo := repository.NewPaymentRepository(pg.PoolHandle())

	tokenMgr := auth.NewTokenManager(
		cfg.Auth.AccessSecret,
		cfg.Auth.RefreshSecret,
		cfg.Auth.AccessTokenTTL(),
		cfg.Auth.RefreshTokenTTL(),
	)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notifications)

	paymentService := service.NewPaymentService(paymentRepo, dispatcher, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterPaymentRoutes(app, httptransport.PaymentRouteConfig{
		Health:       handlers.NewHealthHandler("payment", cfg.App.Version, pg, nil),
		Payments:     handlers.NewPaymentsHandler(paymentService),
		TokenManager: tokenMgr,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
