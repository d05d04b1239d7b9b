package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoDakar/CarRentApp/internal/config"
	"github.com/GoDakar/CarRentApp/internal/core/ports"
	"github.com/GoDakar/CarRentApp/internal/usecase"
	"github.com/jmoiron/sqlx"
)

// App bundles the wired dependencies and drives the chosen run mode.
type App struct {
	Config *config.Config
	logger *slog.Logger
	db     *sqlx.DB

	carUseCase      usecase.CarUseCase
	landingUseCase  usecase.LandingUseCase
	favoriteUseCase usecase.FavoriteUseCase
	catalogUseCase  usecase.CatalogUseCase

	users                ports.UserStorage
	listingEventConsumer ports.ListingEventConsumer
	uploadLimiter        chan struct{}
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	db *sqlx.DB,
	carUseCase usecase.CarUseCase,
	landingUseCase usecase.LandingUseCase,
	favoriteUseCase usecase.FavoriteUseCase,
	catalogUseCase usecase.CatalogUseCase,
	users ports.UserStorage,
	listingEventConsumer ports.ListingEventConsumer,
	uploadLimiter chan struct{},
) *App {
	return &App{
		Config:               cfg,
		logger:               logger,
		db:                   db,
		carUseCase:           carUseCase,
		landingUseCase:       landingUseCase,
		favoriteUseCase:      favoriteUseCase,
		catalogUseCase:       catalogUseCase,
		users:                users,
		listingEventConsumer: listingEventConsumer,
		uploadLimiter:        uploadLimiter,
	}
}

// LoggerIns exposes the application logger to main.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run starts the application in the given mode and blocks until a
// termination signal arrives.
func (a *App) Run(ctx context.Context, mode *string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting", "mode", *mode)

	var err error
	switch *mode {
	case "server":
		err = runServer(ctx, a.Config, a.logger, a.carUseCase, a.landingUseCase, a.favoriteUseCase, a.catalogUseCase, a.users, a.uploadLimiter)
	case "worker":
		err = runWorker(ctx, a.logger, a.catalogUseCase, a.listingEventConsumer)
	default:
		err = fmt.Errorf("unknown mode: %s (use 'server' or 'worker')", *mode)
	}
	if err != nil {
		return err
	}

	a.logger.Info("shutting down")

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown error", "error", closeErr)
	}

	a.logger.Info("stopped cleanly")
	return nil
}

// Shutdown releases the application resources.
func (a *App) Shutdown() error {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
	}

	if closer, ok := a.listingEventConsumer.(interface{ Close() }); ok {
		closer.Close()
	}

	return nil
}
