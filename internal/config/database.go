package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/repositories"
)

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.GetDatabaseDSN())
	case DriverSQLite:
		dialector = sqlite.Open(cfg.Database.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	logLevel := logger.Silent
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Printf("✅ Database connected successfully (%s)\n", cfg.Database.Driver)

	// Auto migrate
	if err := db.AutoMigrate(
		&models.User{},
		&models.Resume{},
		&models.JobDescription{},
		&models.Analysis{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("✅ Database migration completed")

	return db, nil
}

// InitRepositories picks the storage backend named by DB_DRIVER.
func InitRepositories(cfg *Config) (*repositories.Repositories, error) {
	if cfg.Database.Driver == DriverMemory {
		log.Println("⚠️  Using in-memory storage, data will not survive a restart")
		return repositories.NewMemoryRepositories(), nil
	}

	db, err := InitDatabase(cfg)
	if err != nil {
		return nil, err
	}
	return repositories.NewGormRepositories(db), nil
}
