package di

import (
	"github.com/GoDakar/CarRentApp/internal/adapter/storage/minio"
	"github.com/GoDakar/CarRentApp/internal/app"
	"github.com/GoDakar/CarRentApp/internal/config"
	"github.com/GoDakar/CarRentApp/internal/database/catalog"
	"github.com/GoDakar/CarRentApp/internal/database/client"
	"github.com/GoDakar/CarRentApp/internal/database/storage"
	"github.com/GoDakar/CarRentApp/internal/logger"
	"github.com/GoDakar/CarRentApp/internal/rabbitmq"
	"github.com/GoDakar/CarRentApp/internal/usecase"
)

// BuildApp initializes every dependency and returns the assembled App.
func BuildApp() (*app.App, error) {
	// 1. Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. PostgreSQL client (sqlx side, runs migrations)
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 3. sqlx storages
	carStorage := storage.NewCarStorage(dbClient.DB, slogger)
	landingStorage := storage.NewLandingStorage(dbClient.DB, slogger)
	favoriteStorage := storage.NewFavoriteStorage(dbClient.DB, slogger)
	userStorage := storage.NewUserStorage(dbClient.DB, slogger)

	// 4. GORM side: reference catalogs and the search feed
	gormDB, err := catalog.NewGormDB(cfg, slogger)
	if err != nil {
		return nil, err
	}
	catalogStorage := catalog.NewStorage(gormDB, slogger)

	// 5. Object storage (S3 / MinIO)
	fileStorage, err := minio.NewMinioClient(cfg)
	if err != nil {
		return nil, err
	}

	// 6. RabbitMQ client, both publisher and consumer
	rabbitMQClient, err := rabbitmq.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	// 7. Business logic
	carUseCase := usecase.NewCarUseCase(carStorage, catalogStorage, fileStorage, rabbitMQClient, slogger)
	landingUseCase := usecase.NewLandingUseCase(landingStorage, slogger)
	favoriteUseCase := usecase.NewFavoriteUseCase(carStorage, favoriteStorage, slogger)
	catalogUseCase := usecase.NewCatalogUseCase(carStorage, catalogStorage, slogger)

	// 8. Upload limiter, caps concurrent photo uploads at 5
	uploadLimiter := make(chan struct{}, 5)

	// 9. Final assembly
	application := app.NewApp(
		cfg,
		slogger,
		dbClient.DB,
		carUseCase,
		landingUseCase,
		favoriteUseCase,
		catalogUseCase,
		userStorage,
		rabbitMQClient,
		uploadLimiter,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}
