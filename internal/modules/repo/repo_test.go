package repo

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/smart-forensic-ai/sketch-api/internal/config"
	"github.com/smart-forensic-ai/sketch-api/internal/infra/db"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{Database: config.DBCfg{Driver: db.DialectSQLite, DSN: ":memory:"}}
	d, err := db.New(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(d))
	t.Cleanup(func() {
		if sqlDB, err := d.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return d
}

func seedProfile(t *testing.T, d *gorm.DB) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := NewProfileRepo(d).Ensure(context.Background(), id, nil)
	require.NoError(t, err)
	return id
}

func seedSession(t *testing.T, d *gorm.DB, userID uuid.UUID) *model.Session {
	t.Helper()
	s := &model.Session{UserID: userID}
	require.NoError(t, NewSessionRepo(d).Create(context.Background(), s))
	return s
}
