package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-triage/internal/api/http"
	"github.com/spec-kit/ticket-triage/internal/api/http/handlers"
	"github.com/spec-kit/ticket-triage/internal/clock"
	"github.com/spec-kit/ticket-triage/internal/config"
	"github.com/spec-kit/ticket-triage/internal/events"
	"github.com/spec-kit/ticket-triage/internal/observability"
	"github.com/spec-kit/ticket-triage/internal/persistence"
	"github.com/spec-kit/ticket-triage/internal/service"
	"github.com/spec-kit/ticket-triage/internal/store"
	"github.com/spec-kit/ticket-triage/internal/toast"
	"github.com/spec-kit/ticket-triage/internal/worker"
)

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

	clk := clock.Real()

	seed, err := persistence.LoadSeedTickets(cfg.View.SeedFile, clk.Now(), logger)
	if err != nil {
		logger.Fatal("failed to load seed tickets", zap.Error(err))
	}

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics(prometheus.DefaultRegisterer)
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	toasts := toast.NewStore()
	view := service.NewViewService(service.ViewDependencies{
		Tickets:        store.New(seed, clk),
		Toasts:         toasts,
		Clock:          clk,
		Dispatcher:     dispatcher,
		Logger:         logger,
		Metrics:        metrics,
		StrictAssignee: cfg.View.StrictAssignee,
	})
	defer view.Close()

	notificationService := service.NewNotificationService(dispatcher, logger, view)
	dismisser := worker.StartNotificationWorker(notificationService, toasts, clk, cfg.View.ToastTTL())
	defer dismisser.Stop()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	redis.AttachEventSink(dispatcher)

	ticker, err := worker.StartClockTicker(view, cfg.View.TickInterval(), logger)
	if err != nil {
		logger.Fatal("failed to start clock ticker", zap.Error(err))
	}
	defer ticker.Stop()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	var readiness handlers.Pinger
	if redis != nil {
		readiness = redis
	}
	viewHandler := handlers.NewViewHandler(view, logger)

	routes := httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, readiness),
		View:    viewHandler,
		Tickets: handlers.NewTicketsHandler(view),
		Filters: handlers.NewFiltersHandler(view),
		Toast:   handlers.NewToastHandler(view),
	}
	if metrics != nil {
		routes.MetricsPath = cfg.Metrics.Path
		routes.Gatherer = prometheus.DefaultGatherer
	}
	httptransport.RegisterRoutes(app, routes)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	viewHandler.Close()
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
