package database

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/modamuse/lookpost-services-backend/internal/models"
)

// DB is the global database instance
var DB *gorm.DB

// InitDB initializes the database connection and performs migrations
func InitDB() (*gorm.DB, error) {
	// Get database connection parameters from environment variables
	host := getEnv("DB_HOST", "")
	port := getEnv("DB_PORT", "")
	user := getEnv("DB_USER", "")
	password := getEnv("DB_PASSWORD", "")
	dbname := getEnv("DB_NAME", "")
	sslmode := getEnv("DB_SSLMODE", "disable")

	// Validate required environment variables
	if host == "" || port == "" || user == "" || password == "" || dbname == "" {
		return nil, fmt.Errorf("missing required database environment variables. Please check your .env file")
	}

	// Create DSN string
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	// Configure GORM logger
	gormLogger := logger.New(
		logrus.New(),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Error,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	// Open database connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Create public schema if it doesn't exist
	err = db.Exec("CREATE SCHEMA IF NOT EXISTS public").Error
	if err != nil {
		return nil, fmt.Errorf("failed to create public schema: %w", err)
	}

	// Set search_path to public
	err = db.Exec("SET search_path TO public").Error
	if err != nil {
		return nil, fmt.Errorf("failed to set search_path: %w", err)
	}

	// Enable UUID extension
	err = db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\" SCHEMA public").Error
	if err != nil {
		return nil, fmt.Errorf("failed to enable UUID extension: %w", err)
	}

	// Auto migrate the schema
	err = db.AutoMigrate(
		&models.Campaign{},
		&models.FilterPreference{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Migration: rename legacy compliance_score column if it exists. Early
	// deployments stored the score under the old name before adjustments
	// tracking was added.
	var legacyColumnExists bool
	err = db.Raw(`
		SELECT EXISTS (
			SELECT 1
			FROM information_schema.columns
			WHERE table_schema = 'public'
			AND table_name = 'campaigns'
			AND column_name = 'compliance_score'
		)
	`).Scan(&legacyColumnExists).Error
	if err != nil {
		logrus.Warnf("Failed to check if compliance_score column exists: %v", err)
	} else if legacyColumnExists {
		logrus.Info("Migrating legacy compliance_score column...")
		err = db.Exec(`
			UPDATE campaigns
			SET brand_compliance_score = compliance_score
			WHERE brand_compliance_score IS NULL
		`).Error
		if err != nil {
			logrus.Warnf("Failed to backfill brand_compliance_score: %v", err)
		} else {
			err = db.Exec("ALTER TABLE campaigns DROP COLUMN IF EXISTS compliance_score").Error
			if err != nil {
				logrus.Warnf("Failed to drop compliance_score column: %v", err)
			} else {
				logrus.Info("Successfully migrated legacy compliance_score column")
			}
		}
	}

	// Migration: composite index for the user campaign listing query
	var listingIndexExists bool
	err = db.Raw(`
		SELECT EXISTS (
			SELECT 1
			FROM pg_indexes
			WHERE schemaname = 'public'
			AND tablename = 'campaigns'
			AND indexname = 'idx_campaigns_user_created'
		)
	`).Scan(&listingIndexExists).Error
	if err != nil {
		logrus.Warnf("Failed to check if campaign listing index exists: %v", err)
	} else if !listingIndexExists {
		logrus.Info("Creating index on campaigns (user_id, created_at)...")
		err = db.Exec(`
			CREATE INDEX IF NOT EXISTS idx_campaigns_user_created
			ON campaigns(user_id, created_at DESC)
		`).Error
		if err != nil {
			logrus.Warnf("Failed to create campaign listing index: %v", err)
		} else {
			logrus.Info("Successfully created campaign listing index")
		}
	}

	// Set global DB instance
	DB = db

	logrus.Info("Database connection established and migrations completed")
	return db, nil
}

// GetDB returns the global database instance
func GetDB() *gorm.DB {
	return DB
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
