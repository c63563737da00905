package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"dropship-catalog-service/internal/models"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis
	RedisURL string

	// Server
	Port        string
	Environment string

	// Services
	ShippingServiceURL string

	// NATS (optional; events disabled when empty)
	NATSURL string

	// Pagination
	DefaultPageSize int
	MaxPageSize     int

	// Catalog settings
	DefaultShippingCost float64
	MaxImportVariants   int
}

func Load() *Config {
	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	defaultPageSize, _ := strconv.Atoi(getEnv("DEFAULT_PAGE_SIZE", "20"))
	maxPageSize, _ := strconv.Atoi(getEnv("MAX_PAGE_SIZE", "100"))
	defaultShipping, _ := strconv.ParseFloat(getEnv("DEFAULT_SHIPPING_COST", "75"), 64)
	maxImportVariants, _ := strconv.Atoi(getEnv("MAX_IMPORT_VARIANTS", "100"))

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "dropship_catalog_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		Port:        getEnv("PORT", "8090"),
		Environment: getEnv("ENVIRONMENT", "development"),

		ShippingServiceURL: getEnv("SHIPPING_SERVICE_URL", "http://shipping-service:8080"),

		NATSURL: os.Getenv("NATS_URL"),

		DefaultPageSize: defaultPageSize,
		MaxPageSize:     maxPageSize,

		DefaultShippingCost: defaultShipping,
		MaxImportVariants:   maxImportVariants,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	var logLevel logger.LogLevel
	if cfg.Environment == "production" {
		logLevel = logger.Error
	} else {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate keeps the schema up to date; it adds missing columns
	// but never drops existing ones.
	log.Println("Running auto-migrations...")
	if err := db.AutoMigrate(
		&models.SupplierProduct{},
		&models.ProductVariant{},
		&models.InventoryItem{},
		&models.InventoryVariant{},
		&models.ConnectedStore{},
	); err != nil {
		return nil, fmt.Errorf("failed to run auto-migrations: %w", err)
	}
	log.Println("Auto-migrations completed successfully")

	return db, nil
}
