package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OwnerSetting is the Postgres run-time parameter the row-level-security policies read.
const OwnerSetting = "app.user_id"

// WithOwner runs fn in a transaction acting for userID. On Postgres the id is
// published to the row-level-security policies for the lifetime of the transaction.
func WithOwner(ctx context.Context, d *gorm.DB, userID uuid.UUID, fn func(tx *gorm.DB) error) error {
	return d.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if IsPostgres(tx) {
			if err := tx.Exec("SELECT set_config(?, ?, true)", OwnerSetting, userID.String()).Error; err != nil {
				return fmt.Errorf("bind owner: %w", err)
			}
		}
		return fn(tx)
	})
}

// ForUpdate row-locks the selected rows where the dialect supports it.
func ForUpdate(tx *gorm.DB) *gorm.DB {
	if IsPostgres(tx) {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
