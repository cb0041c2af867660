// Package db opens the gorm connection used by every store.
package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"admin_backend/internal/platform/config"
)

// Opener opens a gorm connection for a DSN. It is swapped out in tests.
type Opener func(dsn string) (*gorm.DB, error)

var retryInterval = 3 * time.Second

// gormConfig enables error translation so unique violations surface as
// gorm.ErrDuplicatedKey on every dialect.
func gormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// PostgresOpener opens a Postgres connection through pgx.
func PostgresOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), gormConfig())
}

// SQLiteOpener opens a SQLite database file (or ":memory:").
func SQLiteOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(dsn), gormConfig())
}

// BuildDSN returns the connection string for cfg.
func BuildDSN(cfg config.DBConfig) string {
	if cfg.Driver == "sqlite" {
		return cfg.Path
	}
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslmode)
}

// ConnectWithRetry calls open until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		time.Sleep(retryInterval)
	}
}

// OpenDB connects using cfg and runs migrations for models when enabled.
func OpenDB(cfg config.DBConfig, logger *zap.Logger, models ...any) (*gorm.DB, error) {
	open := PostgresOpener
	if cfg.Driver == "sqlite" {
		open = SQLiteOpener
	}

	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second, open)
	if err != nil {
		return nil, err
	}
	logger.Info("database connected", zap.String("driver", cfg.Driver), zap.String("host", cfg.Host))

	if cfg.RunMigrations || cfg.Driver == "sqlite" {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
		logger.Info("database migrated", zap.Int("models", len(models)))
	}
	return db, nil
}
