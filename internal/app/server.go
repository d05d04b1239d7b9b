package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoDakar/CarRentApp/internal/config"
	"github.com/GoDakar/CarRentApp/internal/core/ports"
	"github.com/GoDakar/CarRentApp/internal/handler"
	"github.com/GoDakar/CarRentApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// runServer starts the HTTP API and blocks until the context is cancelled.
func runServer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	carUseCase usecase.CarUseCase,
	landingUseCase usecase.LandingUseCase,
	favoriteUseCase usecase.FavoriteUseCase,
	catalogUseCase usecase.CatalogUseCase,
	users ports.UserStorage,
	uploadLimiter chan struct{},
) error {
	carHandler := handler.NewCarHandler(carUseCase, uploadLimiter, logger)
	landingHandler := handler.NewLandingHandler(landingUseCase, logger)
	favoriteHandler := handler.NewFavoriteHandler(favoriteUseCase, logger)
	catalogHandler := handler.NewCatalogHandler(catalogUseCase, logger)

	r := chi.NewRouter()
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	// Public browse surface.
	r.Get("/home", catalogHandler.Home)
	r.Get("/form-options", catalogHandler.FormOptions)
	r.Get("/brands/{brandID}/models", catalogHandler.ListModelsByBrand)
	r.Get("/cars", carHandler.ListCars)
	r.Get("/cars/{slug}", carHandler.GetCarDetail)
	r.Get("/landing-pages", landingHandler.ListLandingPages)
	r.Get("/landing-pages/{slug}", landingHandler.GetLandingPage)

	// Authenticated surface.
	r.Group(func(r chi.Router) {
		r.Use(handler.Authenticate(cfg.JWTSecret, users, logger))

		r.Post("/cars", carHandler.CreateCar)
		r.Put("/cars/{slug}", carHandler.UpdateCar)
		r.Delete("/cars/{slug}", carHandler.DeleteCar)
		r.Post("/cars/{slug}/favorite", favoriteHandler.ToggleFavorite)

		r.Get("/my/cars", carHandler.ListMyCars)
		r.Get("/my/favorites", favoriteHandler.ListFavoriteCars)

		r.Post("/landing-pages", landingHandler.CreateLandingPage)
		r.Put("/landing-pages/{id}", landingHandler.UpdateLandingPage)
		r.Delete("/landing-pages/{id}", landingHandler.DeleteLandingPage)

		r.Post("/cities", catalogHandler.SaveCity)
		r.Post("/places", catalogHandler.SavePlace)
		r.Post("/features", catalogHandler.SaveFeature)
	})

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("termination signal received, stopping HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("HTTP server stopped")
	return nil
}
