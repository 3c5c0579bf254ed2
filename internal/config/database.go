package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rameshbanala/resume-analyzer/internal/models"
)

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := cfg.GetDatabaseDSN()

	logLevel := logger.Silent
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("✅ Database connected successfully")

	// Auto migrate
	if err := db.AutoMigrate(&models.Resume{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("✅ Database migration completed")

	return db, nil
}

// ConnectWithRetry keeps calling InitDatabase every interval until it succeeds
// or ctx is done.
func ConnectWithRetry(ctx context.Context, cfg *Config, interval time.Duration) (*gorm.DB, error) {
	for {
		db, err := InitDatabase(cfg)
		if err == nil {
			return db, nil
		}

		log.Printf("❌ Failed to connect to PostgreSQL: %v", err)
		log.Printf("🔄 Retrying in %s...", interval)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("database not reachable: %w", ctx.Err())
		case <-time.After(interval):
		}
	}
}
