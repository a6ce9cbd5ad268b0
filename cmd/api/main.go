package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/chamado-tracker/internal/api/http/handlers"
	"github.com/spec-kit/chamado-tracker/internal/archive"
	"github.com/spec-kit/chamado-tracker/internal/config"
	"github.com/spec-kit/chamado-tracker/internal/events"
	"github.com/spec-kit/chamado-tracker/internal/observability"
	"github.com/spec-kit/chamado-tracker/internal/scheduler"
	"github.com/spec-kit/chamado-tracker/internal/service"
	"github.com/spec-kit/chamado-tracker/internal/store"

	httptransport "github.com/spec-kit/chamado-tracker/internal/api/http"
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

	reference, err := store.LoadReference(cfg.Storage.ReferenceFile)
	if err != nil {
		logger.Fatal("failed to load reference data", zap.Error(err))
	}
	users, err := store.OpenUserStore(cfg.Storage.UsersFile)
	if err != nil {
		logger.Fatal("failed to open user registry", zap.Error(err))
	}
	tickets, err := store.OpenTicketStore(cfg.Storage.TicketsFile)
	if err != nil {
		logger.Fatal("failed to open ticket store", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notificationService.RegisterHandlers()

	ticketService := service.NewTicketService(service.TicketDependencies{
		Tickets:     tickets,
		Users:       users,
		Reference:   reference,
		Dispatcher:  dispatcher,
		Retention:   cfg.Archive.Retention(),
		WarningLead: cfg.Archive.WarningLead(),
	})
	userService := service.NewUserService(users, dispatcher)

	sink, err := archive.NewXLSXSink(cfg.Archive.Dir)
	if err != nil {
		logger.Fatal("failed to init archive sink", zap.Error(err))
	}
	archiveService := service.NewArchiveService(service.ArchiveDependencies{
		Tickets:    tickets,
		Sink:       sink,
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
		Retention:  cfg.Archive.Retention(),
	})

	archivalScheduler := scheduler.NewArchivalScheduler(archiveService, logger, cfg.Archive.Retention(), cfg.Archive.Hour)
	archivalScheduler.Start(ctx)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	if info, err := os.Stat(cfg.App.StaticDir); err == nil && info.IsDir() {
		app.Static("/", cfg.App.StaticDir)
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, tickets),
		Reference: handlers.NewReferenceHandler(reference, userService),
		Users:     handlers.NewUsersHandler(userService),
		Tickets:   handlers.NewTicketsHandler(ticketService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	archivalScheduler.Stop()
	cancel()
	_ = app.ShutdownWithTimeout(5 * time.Second)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
