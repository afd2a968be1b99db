package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/smart-forensic-ai/sketch-api/internal/infra/db"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/model"
	"gorm.io/gorm"
)

type LogRepo interface {
	Append(ctx context.Context, userID uuid.UUID, l *model.Log) error
	ListBySession(ctx context.Context, userID, sessionID uuid.UUID) ([]model.Log, error)
}

type logRepo struct{ db *gorm.DB }

func NewLogRepo(db *gorm.DB) LogRepo {
	return &logRepo{db: db}
}

func (r *logRepo) Append(ctx context.Context, userID uuid.UUID, l *model.Log) error {
	return db.WithOwner(ctx, r.db, userID, func(tx *gorm.DB) error {
		if _, err := ownedSession(tx, userID, l.SessionID, false); err != nil {
			return err
		}
		return tx.Create(l).Error
	})
}

// ListBySession returns the session's logs oldest first.
func (r *logRepo) ListBySession(ctx context.Context, userID, sessionID uuid.UUID) ([]model.Log, error) {
	var items []model.Log
	err := db.WithOwner(ctx, r.db, userID, func(tx *gorm.DB) error {
		if _, err := ownedSession(tx, userID, sessionID, false); err != nil {
			return err
		}
		return tx.Where("session_id = ?", sessionID).Order("timestamp ASC, id ASC").Find(&items).Error
	})
	return items, err
}
