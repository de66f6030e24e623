package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/shakthi215/SupportTicketSystem/internal/api/http"
	"github.com/shakthi215/SupportTicketSystem/internal/api/http/handlers"
	"github.com/shakthi215/SupportTicketSystem/internal/classifier"
	"github.com/shakthi215/SupportTicketSystem/internal/config"
	"github.com/shakthi215/SupportTicketSystem/internal/events"
	"github.com/shakthi215/SupportTicketSystem/internal/observability"
	"github.com/shakthi215/SupportTicketSystem/internal/persistence"
	"github.com/shakthi215/SupportTicketSystem/internal/repository"
	"github.com/shakthi215/SupportTicketSystem/internal/service"
	"github.com/shakthi215/SupportTicketSystem/internal/worker"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	ticketRepo := repository.NewTicketRepository(pg.PoolHandle())

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Dispatcher: dispatcher,
	})
	statsService := service.NewStatsService(ticketRepo)
	gateway := classifier.New(cfg.Classifier, logger)
	classifyService := service.NewClassifyService(gateway, dispatcher)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, metrics),
		Tickets:  handlers.NewTicketsHandler(ticketService),
		Classify: handlers.NewClassifyHandler(classifyService),
		Stats:    handlers.NewStatsHandler(statsService),
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
