package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/freshdesk-proxy/internal/api/http"
	"github.com/spec-kit/freshdesk-proxy/internal/api/http/handlers"
	"github.com/spec-kit/freshdesk-proxy/internal/auth"
	"github.com/spec-kit/freshdesk-proxy/internal/config"
	"github.com/spec-kit/freshdesk-proxy/internal/events"
	"github.com/spec-kit/freshdesk-proxy/internal/freshdesk"
	"github.com/spec-kit/freshdesk-proxy/internal/observability"
	"github.com/spec-kit/freshdesk-proxy/internal/service"
	"github.com/spec-kit/freshdesk-proxy/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()
	client := freshdesk.NewClient(cfg.Freshdesk, logger, metrics)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	proxyService := service.NewTicketProxyService(service.ProxyDependencies{
		Client:     client,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	tokenManager := auth.NewTokenManager(cfg.Auth.BearerToken, cfg.Auth.TokenTTL())
	authMiddleware := auth.NewAuthMiddleware(cfg.Auth.BearerToken, tokenManager)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, proxyService),
		Tickets:        handlers.NewTicketsHandler(proxyService),
		Token:          handlers.NewTokenHandler(tokenManager),
		AuthMiddleware: authMiddleware,
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
