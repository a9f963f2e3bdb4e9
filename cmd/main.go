package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shenikar/eudr_ingestion_system/internal/analysis"
	"github.com/shenikar/eudr_ingestion_system/internal/config"
	"github.com/shenikar/eudr_ingestion_system/internal/events"
	"github.com/shenikar/eudr_ingestion_system/internal/geoid"
	v1 "github.com/shenikar/eudr_ingestion_system/internal/handler/http/v1"
	"github.com/shenikar/eudr_ingestion_system/internal/metrics"
	"github.com/shenikar/eudr_ingestion_system/internal/repository"
	"github.com/shenikar/eudr_ingestion_system/internal/service"
	"github.com/shenikar/eudr_ingestion_system/internal/tilecache"
	"github.com/shenikar/eudr_ingestion_system/pkg/logger"
	"github.com/shenikar/eudr_ingestion_system/pkg/postgres"
	redisclient "github.com/shenikar/eudr_ingestion_system/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/eudr_ingestion_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title EUDR Ingestion System API
// @version 1.0
// @description Farm plot ingestion with deforestation risk analysis.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(cfg.MigrationsPath, migrationURL)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	m := metrics.New(prometheus.DefaultRegisterer)

	// Издатель событий фиксации и очереди geo-ID
	publisher := events.NewRedisPublisher(redisClient)

	// Инициализация репозиториев
	fileRepo := repository.NewFileRepository(dbpool)
	farmRepo := repository.NewFarmRepository(dbpool)
	settingsRepo := repository.NewCachedSettingsRepository(
		repository.NewSettingsRepository(dbpool), redisClient, cfg.SettingsCacheTTL,
	)

	// Кэш слоев риска сбрасывается по событиям фиксации
	layerCache := tilecache.NewCache(redisClient, cfg.RiskLayerTTL, log)
	layerCache.Listen(ctx)

	// Воркер регистрации geo-ID
	geoidWorker := geoid.NewWorker(redisClient, farmRepo, log, cfg, m)
	geoidWorker.Start(ctx)

	// Инициализация сервисов
	analyzer := analysis.NewClient(cfg, log, m)
	ingestionService := service.NewIngestionService(fileRepo, farmRepo, settingsRepo, analyzer, publisher, log, cfg, m)
	farmService := service.NewFarmService(fileRepo, farmRepo, settingsRepo, layerCache, log, cfg.AnalysisChunkSize)

	// Инициализация хэндлеров
	handler := v1.NewHandler(ingestionService, farmService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	router.Use(m.GinMiddleware())
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: corsHandler(router),
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	// Shutdown ждет завершения начатых пакетов, фоновые задачи останавливаются после
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		cancel()
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	cancel()

	log.Info("Server gracefully stopped")
}
