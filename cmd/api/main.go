package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/triage-service/internal/api/http"
	"github.com/spec-kit/triage-service/internal/api/http/handlers"
	"github.com/spec-kit/triage-service/internal/config"
	"github.com/spec-kit/triage-service/internal/events"
	"github.com/spec-kit/triage-service/internal/llm"
	"github.com/spec-kit/triage-service/internal/observability"
	"github.com/spec-kit/triage-service/internal/persistence"
	"github.com/spec-kit/triage-service/internal/repository"
	"github.com/spec-kit/triage-service/internal/search"
	"github.com/spec-kit/triage-service/internal/service"
	"github.com/spec-kit/triage-service/internal/store"
	"github.com/spec-kit/triage-service/internal/worker"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	ticketStore := store.New(
		repository.NewTicketRepository(pg.Pool),
		repository.NewResolutionMemoryRepository(pg.Pool),
	)

	dispatcher := events.NewInMemoryDispatcher()
	analyzer := llm.NewClient(cfg.LLM, logger, metrics)
	facetCache := search.NewFacetCache(redis.Client, cfg.Search.FacetCacheTTL(), logger)

	triageService := service.NewTriageService(service.TriageDependencies{
		Store:      ticketStore,
		Analyzer:   analyzer,
		FacetCache: facetCache,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)
	worker.StartTriageSweep(ctx, triageService, cfg.Worker.SweepInterval(), logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets: handlers.NewTicketsHandler(triageService),
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
