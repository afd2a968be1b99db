package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/smart-forensic-ai/sketch-api/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// New opens the configured database. Postgres is the production store; sqlite
// backs local runs and the repo tests.
func New(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	driver := strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	switch driver {
	case "", DialectPostgres, "postgresql":
		driver = DialectPostgres
		dialector = postgres.Open(cfg.Database.DSN)
	case DialectSQLite:
		dialector = sqlite.Open(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	d, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	sqlDB, err := d.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	if driver == DialectSQLite {
		// one connection: ":memory:" databases are per connection and sqlite serializes writers anyway
		sqlDB.SetMaxOpenConns(1)
		if err := d.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
		return d, nil
	}

	if cfg.Database.MaxOpen > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpen)
	}
	if cfg.Database.MaxIdle > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdle)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return d, nil
}

func IsPostgres(d *gorm.DB) bool {
	return d.Dialector.Name() == DialectPostgres
}

// RegisterOpenTelemetryPlugin adds query spans; call it after the tracer provider is set.
func RegisterOpenTelemetryPlugin(d *gorm.DB) error {
	return d.Use(tracing.NewPlugin())
}
