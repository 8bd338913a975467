package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"catalog-import-service/internal/config"
	"catalog-import-service/internal/events"
	"catalog-import-service/internal/handlers"
	"catalog-import-service/internal/jobs"
	"catalog-import-service/internal/middleware"
	"catalog-import-service/internal/models"
	"catalog-import-service/internal/repository"
	"catalog-import-service/internal/services"
)

// @title Catalog Import API
// @version 1.0.0
// @description Product import service with batch logging and category management

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey APITokenAuth
// @in header
// @name X-API-Token

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	redisClient, err := config.InitRedis(cfg)
	if err != nil {
		logger.WithError(err).Warn("Failed to configure redis, caching disabled")
		redisClient = nil
	}
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("Redis unreachable, caching disabled")
			redisClient = nil
		} else {
			logger.Info("Redis connected")
		}
		cancel()
	}

	catalogRepo := repository.NewCatalogRepository(db)
	importLogRepo := repository.NewImportLogRepository(db)
	tokenRepo := repository.NewTokenRepository(db, redisClient)

	var publisher *events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		logger.WithField("topic", cfg.KafkaTopic).Info("Kafka publisher initialized")
		defer publisher.Close()
	} else {
		logger.Info("KAFKA_BROKERS not set, skipping event publishing")
	}

	var batchPublisher services.BatchEventPublisher
	if publisher != nil {
		batchPublisher = publisher
	}
	importService := services.NewImportService(catalogRepo, importLogRepo, batchPublisher, logger)

	importHandler := handlers.NewImportHandler(importService, cfg.LanguageID, cfg.ChunkSize, logger)
	categoriesHandler := handlers.NewCategoriesHandler(catalogRepo, cfg.LanguageID, logger)
	logsHandler := handlers.NewLogsHandler(importLogRepo, logger)
	healthHandler := handlers.NewHealthHandler(db)

	retentionJob := jobs.NewRetentionJob(importLogRepo, cfg.LogRetentionDays, logger)
	jobCtx, jobCancel := context.WithCancel(context.Background())
	go retentionJob.Start(jobCtx)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, models.ErrorResponse{
			Success:   false,
			Error:     "Method not allowed",
			Code:      http.StatusMethodNotAllowed,
			Timestamp: time.Now().Format("2006-01-02 15:04:05"),
		})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success:   false,
			Error:     "Endpoint not found",
			Code:      http.StatusNotFound,
			Timestamp: time.Now().Format("2006-01-02 15:04:05"),
		})
	})

	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Health)

	api := router.Group("/api/v1")
	api.Use(middleware.APITokenAuth(tokenRepo, logger))
	{
		products := api.Group("/products")
		{
			products.POST("/import", importHandler.ImportProducts)
			products.GET("/import/template", importHandler.GetImportTemplate)
			products.GET("/import/:id", importHandler.GetImportStatus)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", categoriesHandler.ListCategories)
			categories.GET("/:id", categoriesHandler.GetCategory)
			categories.POST("", categoriesHandler.CreateCategory)
			categories.PUT("/:id", categoriesHandler.UpdateCategory)
			categories.DELETE("/:id", categoriesHandler.DeleteCategory)
		}

		importLogs := api.Group("/import-logs")
		{
			importLogs.GET("", logsHandler.ListBatches)
			importLogs.GET("/stats", logsHandler.GetOverallStats)
			importLogs.GET("/:id", logsHandler.GetBatchLogs)
			importLogs.GET("/:id/errors", logsHandler.GetBatchErrors)
			importLogs.GET("/:id/stats", logsHandler.GetBatchStats)
			importLogs.DELETE("/:id", logsHandler.DeleteBatch)
		}
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("Catalog import service starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down catalog import service")
	retentionJob.Stop()
	jobCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	logger.Info("Catalog import service stopped")
}
