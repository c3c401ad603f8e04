package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"taskboard/internal/config"
	"taskboard/internal/logger"
	"taskboard/internal/models"
)

var DB *gorm.DB

// Startup readiness gate: the process must not serve traffic against a
// store it cannot reach, so Connect retries a bounded number of times
// with a fixed backoff before failing for good.
const (
	maxConnectAttempts = 20
	connectRetryDelay  = 3 * time.Second
)

func Connect(cfg *config.Config) error {
	dial, err := dialector(cfg)
	if err != nil {
		return err
	}

	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		err = open(dial, cfg)
		if err == nil {
			logger.Info("database connection established",
				zap.String("driver", cfg.DBDriver),
				zap.Int("attempt", attempt))
			return nil
		}

		logger.Warn("database not ready",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxConnectAttempts),
			zap.Error(err))
		if attempt < maxConnectAttempts {
			time.Sleep(connectRetryDelay)
		}
	}

	return fmt.Errorf("database unreachable after %d attempts: %w", maxConnectAttempts, err)
}

func open(dial gorm.Dialector, cfg *config.Config) error {
	db, err := gorm.Open(dial, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Ping(); err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)

	DB = db
	return nil
}

func dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func Migrate() error {
	logger.Info("running database migrations")
	if err := DB.AutoMigrate(&models.Task{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
