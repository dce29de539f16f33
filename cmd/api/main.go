package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/Night40050/support-copilot/internal/api/http"
	"github.com/Night40050/support-copilot/internal/api/http/handlers"
	"github.com/Night40050/support-copilot/internal/auth"
	"github.com/Night40050/support-copilot/internal/classifier"
	"github.com/Night40050/support-copilot/internal/config"
	"github.com/Night40050/support-copilot/internal/events"
	"github.com/Night40050/support-copilot/internal/observability"
	"github.com/Night40050/support-copilot/internal/service"
	"github.com/Night40050/support-copilot/internal/validation"
	"github.com/Night40050/support-copilot/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if problems := cfg.Validate(); len(problems) > 0 {
		logger.Fatal("invalid configuration", zap.String("problems", strings.Join(problems, "; ")))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openTicketStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open ticket store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer closeStore()

	cls, err := classifier.New(cfg.LLM, logger)
	if err != nil {
		logger.Fatal("failed to build classifier", zap.Error(err))
	}
	if cfg.LLM.Mock {
		logger.Warn("MOCK_LLM enabled; tickets receive a canned classification")
	}

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification, nil)
	worker.StartNotificationWorker(notificationService, logger)

	ticketService := service.NewTicketService(service.TicketDependencies{
		Validator:  validation.New(),
		Classifier: cls,
		TicketRepo: store,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	var authMiddleware *auth.AuthMiddleware
	if cfg.Auth.JWTSecret != "" {
		tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
		authMiddleware = auth.NewAuthMiddleware(tokens)
	} else {
		logger.Warn("AUTH_JWT_SECRET not set; /process-ticket is unauthenticated")
	}

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: !cfg.App.IsDevelopment(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.IsDevelopment())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.Store.Driver, ticketService, logger),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Metrics:        handlers.NewMetricsHandler(metrics),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("store", cfg.Store.Driver))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	notificationService.Wait()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
