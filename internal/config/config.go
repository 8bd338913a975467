package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"catalog-import-service/internal/models"
)

// Config holds the service configuration loaded from the environment.
type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	DatabaseURL string
	DBHost      string
	DBPort      int
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// Redis
	RedisURL string

	// Kafka
	KafkaBrokers []string
	KafkaTopic   string

	// Import settings
	LanguageID       int
	ChunkSize        int
	LogRetentionDays int
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	languageID, _ := strconv.Atoi(getEnv("LANGUAGE_ID", "1"))
	chunkSize, _ := strconv.Atoi(getEnv("IMPORT_CHUNK_SIZE", "100"))
	retentionDays, _ := strconv.Atoi(getEnv("LOG_RETENTION_DAYS", "30"))

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      dbPort,
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "catalog_db"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		RedisURL: os.Getenv("REDIS_URL"),

		KafkaBrokers: brokers,
		KafkaTopic:   getEnv("KAFKA_TOPIC", "catalog.import.events"),

		LanguageID:       languageID,
		ChunkSize:        chunkSize,
		LogRetentionDays: retentionDays,
	}
}

// InitDB opens the database connection and migrates the schema.
func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
	}

	logLevel := logger.Info
	if cfg.Environment == "production" {
		logLevel = logger.Error
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Product{},
		&models.ProductDescription{},
		&models.ProductToCategory{},
		&models.ProductAttributeValue{},
		&models.Category{},
		&models.CategoryDescription{},
		&models.Manufacturer{},
		&models.APIToken{},
		&models.ImportBatch{},
		&models.ImportLog{},
	); err != nil {
		return nil, fmt.Errorf("failed to run auto-migrations: %w", err)
	}

	return db, nil
}

// InitRedis connects to redis when REDIS_URL is configured. A nil
// client means caching is disabled.
func InitRedis(cfg *Config) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
