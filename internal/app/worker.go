package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoDakar/CarRentApp/internal/core/ports"
	"github.com/GoDakar/CarRentApp/internal/messaging/payloads"
	"github.com/GoDakar/CarRentApp/internal/usecase"
)

// runWorker consumes listing lifecycle events and keeps the denormalized
// search feed in sync. It blocks until the context is cancelled.
func runWorker(
	ctx context.Context,
	logger *slog.Logger,
	catalogUseCase usecase.CatalogUseCase,
	consumer ports.ListingEventConsumer,
) error {
	logger.Info("worker started, waiting for listing events")

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	messageHandler := func(ctx context.Context, payload payloads.ListingEventPayload) error {
		logger.Info("processing listing event", "action", payload.Action, "car_id", payload.CarID)

		if err := catalogUseCase.HandleListingEvent(ctx, payload); err != nil {
			logger.Error("listing event failed", "action", payload.Action, "car_id", payload.CarID, "error", err)
			return err
		}

		logger.Info("listing event processed", "action", payload.Action, "car_id", payload.CarID)
		return nil
	}

	if err := consumer.StartConsumingListingEvents(workerCtx, messageHandler); err != nil {
		return fmt.Errorf("starting listing event consumer: %w", err)
	}

	<-ctx.Done()
	logger.Info("termination signal received, stopping worker")

	cancelWorker()

	// Give in-flight handlers a moment to finish.
	time.Sleep(2 * time.Second)
	logger.Info("worker stopped")

	return nil
}
