// Package db opens the relational backend and applies schema migrations.
package db

import (
	"fmt"
	"log/slog"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for
	// golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/freelance-invoices/internal/config"
	"github.com/diewo77/freelance-invoices/internal/models"
)

// Connect opens the configured relational backend. Postgres connections are
// retried to give the database time to come up.
func Connect(cfg config.StoreConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	switch cfg.Driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
	case "postgres":
		var db *gorm.DB
		var err error
		for i := 0; i < 5; i++ {
			db, err = gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
			if err == nil {
				return db, nil
			}
			slog.Warn("database connection failed, retrying", "attempt", i+1, "error", err)
			time.Sleep(2 * time.Second)
		}
		return nil, fmt.Errorf("connect database after retries: %w", err)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// Migrate applies the schema. With useSQL set (postgres only) the SQL files
// under ./migrations run via golang-migrate; otherwise gorm AutoMigrate
// handles it, which is the dev-friendly default and the only path for sqlite.
func Migrate(db *gorm.DB, cfg config.StoreConfig, useSQL bool) error {
	if useSQL && cfg.Driver == "postgres" {
		return runSQLMigrations(cfg.URL())
	}
	return db.AutoMigrate(
		&models.User{},
		&models.Freelancer{},
		&models.Client{},
		&models.Invoice{},
		&models.InvoiceItem{},
	)
}

// runSQLMigrations executes migrations in ./migrations using the
// golang-migrate file source.
func runSQLMigrations(url string) error {
	m, err := migrate.New("file://migrations", url)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
