package db

import (
	_ "embed"
	"fmt"

	"github.com/smart-forensic-ai/sketch-api/internal/modules/model"
	"gorm.io/gorm"
)

//go:embed rls.sql
var rowLevelSecurity string

// Migrate creates the schema and, on Postgres, installs the per-owner access policies.
func Migrate(d *gorm.DB) error {
	if err := d.AutoMigrate(
		&model.Profile{},
		&model.Session{},
		&model.CompositeFace{},
		&model.Log{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if !IsPostgres(d) {
		return nil
	}
	if err := d.Exec(rowLevelSecurity).Error; err != nil {
		return fmt.Errorf("apply row level security: %w", err)
	}
	return nil
}
