package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smart-forensic-ai/sketch-api/internal/infra/db"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/model"
	"github.com/smart-forensic-ai/sketch-api/internal/pkg/apperr"
	"gorm.io/gorm"
)

type SessionRepo interface {
	Create(ctx context.Context, s *model.Session) error
	Get(ctx context.Context, userID, sessionID uuid.UUID) (*model.Session, error)
	Update(ctx context.Context, userID, sessionID uuid.UUID, patch model.SessionPatch) (*model.Session, error)
	ListWithCursor(ctx context.Context, userID uuid.UUID, afterStartedAt time.Time, afterID uuid.UUID, limit int) ([]model.Session, error)
}

type sessionRepo struct{ db *gorm.DB }

func NewSessionRepo(db *gorm.DB) SessionRepo {
	return &sessionRepo{db: db}
}

// ownedSession loads the session inside tx and checks it belongs to userID.
// A missing row is ErrNotFound, a foreign row ErrPermissionDenied.
func ownedSession(tx *gorm.DB, userID, sessionID uuid.UUID, lock bool) (*model.Session, error) {
	q := tx
	if lock {
		q = db.ForUpdate(tx)
	}
	var s model.Session
	if err := q.Where("id = ?", sessionID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session %s: %w", sessionID, apperr.ErrNotFound)
		}
		return nil, err
	}
	if s.UserID != userID {
		return nil, fmt.Errorf("session %s: %w", sessionID, apperr.ErrPermissionDenied)
	}
	return &s, nil
}

func (r *sessionRepo) Create(ctx context.Context, s *model.Session) error {
	return db.WithOwner(ctx, r.db, s.UserID, func(tx *gorm.DB) error {
		return tx.Create(s).Error
	})
}

func (r *sessionRepo) Get(ctx context.Context, userID, sessionID uuid.UUID) (*model.Session, error) {
	var out *model.Session
	err := db.WithOwner(ctx, r.db, userID, func(tx *gorm.DB) error {
		s, err := ownedSession(tx, userID, sessionID, false)
		out = s
		return err
	})
	return out, err
}

func (r *sessionRepo) Update(ctx context.Context, userID, sessionID uuid.UUID, patch model.SessionPatch) (*model.Session, error) {
	var out *model.Session
	err := db.WithOwner(ctx, r.db, userID, func(tx *gorm.DB) error {
		s, err := ownedSession(tx, userID, sessionID, true)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			// a patch with no fields still counts as a mutation
			"updated_at": time.Now(),
		}
		if patch.Status != nil {
			if !s.Status.CanTransition(*patch.Status) {
				return fmt.Errorf("%s -> %s: %w", s.Status, *patch.Status, apperr.ErrInvalidTransition)
			}
			updates["status"] = *patch.Status
		}
		if patch.RawInput != nil {
			updates["raw_input"] = *patch.RawInput
		}

		if err := tx.Model(s).Updates(updates).Error; err != nil {
			return err
		}
		out = s
		return tx.Where("id = ?", sessionID).First(out).Error
	})
	return out, err
}

func (r *sessionRepo) ListWithCursor(ctx context.Context, userID uuid.UUID, afterStartedAt time.Time, afterID uuid.UUID, limit int) ([]model.Session, error) {
	var items []model.Session
	err := db.WithOwner(ctx, r.db, userID, func(tx *gorm.DB) error {
		q := tx.Where("user_id = ?", userID)

		// (started_at, id) keyset; an empty cursor starts from the newest session
		if !afterStartedAt.IsZero() && afterID != uuid.Nil {
			q = q.Where("(started_at < ?) OR (started_at = ? AND id < ?)", afterStartedAt, afterStartedAt, afterID)
		}

		return q.Order("started_at DESC, id DESC").Limit(limit).Find(&items).Error
	})
	return items, err
}
