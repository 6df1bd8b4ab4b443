package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-tracker/internal/api/http"
	"github.com/spec-kit/ticket-tracker/internal/api/http/handlers"
	"github.com/spec-kit/ticket-tracker/internal/config"
	"github.com/spec-kit/ticket-tracker/internal/events"
	"github.com/spec-kit/ticket-tracker/internal/observability"
	"github.com/spec-kit/ticket-tracker/internal/persistence"
	"github.com/spec-kit/ticket-tracker/internal/recordstore"
	"github.com/spec-kit/ticket-tracker/internal/repository"
	"github.com/spec-kit/ticket-tracker/internal/service"
	"github.com/spec-kit/ticket-tracker/internal/view"
	"github.com/spec-kit/ticket-tracker/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	client := recordstore.NewClient(cfg.RecordStore,
		recordstore.WithLogger(logger.Named("recordstore")),
		recordstore.WithObserver(metrics),
	)

	ticketRepo := repository.NewTicketRepository(client)
	if cache := persistence.NewSnapshotCache(redis, cfg.App.Name+":"); cache != nil {
		ticketRepo = repository.NewCachedTicketRepository(ticketRepo, cache,
			cfg.RecordStore.BaseID+":"+cfg.RecordStore.TicketsTable, cfg.Cache.TicketTTL(), logger)
	}
	commentRepo := repository.NewCommentRepository(client)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartDiagnosticsWorker(service.NewDiagnosticsService(dispatcher, logger.Named("diagnostics")))

	deps := service.DashboardDependencies{
		Tickets:    ticketRepo,
		Comments:   commentRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	}
	sessions := service.NewSessionStore(cfg.Session.TTL(), func(id string) *service.Dashboard {
		return service.NewDashboard(id, deps)
	})
	worker.StartSessionJanitor(ctx, sessions, cfg.Session.SweepInterval(), logger)

	renderer, err := view.NewRenderer()
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	cookies := handlers.NewSessions(sessions, cfg.Session.TTL(), cfg.Session.CookieSecure)
	loc := cfg.Display.Location()

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, client, redis, metrics),
		Dashboard: handlers.NewDashboardHandler("Ticket Status Tracker", cookies, renderer, loc),
		API:       handlers.NewAPIHandler(cookies, loc),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
