package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/smart-forensic-ai/sketch-api/internal/infra/db"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/model"
	"github.com/smart-forensic-ai/sketch-api/internal/pkg/apperr"
	"gorm.io/gorm"
)

type CompositeFaceRepo interface {
	// Insert stores f as given. Duplicate versions are accepted.
	Insert(ctx context.Context, userID uuid.UUID, f *model.CompositeFace) error
	// InsertNextVersion assigns f.Version = latest+1 under the session row lock.
	InsertNextVersion(ctx context.Context, userID uuid.UUID, f *model.CompositeFace) error
	// Latest returns the highest version, or nil when the session has no faces.
	Latest(ctx context.Context, userID, sessionID uuid.UUID) (*model.CompositeFace, error)
	ListBySession(ctx context.Context, userID, sessionID uuid.UUID) ([]model.CompositeFace, error)
}

type compositeFaceRepo struct{ db *gorm.DB }

func NewCompositeFaceRepo(db *gorm.DB) CompositeFaceRepo {
	return &compositeFaceRepo{db: db}
}

func (r *compositeFaceRepo) Insert(ctx context.Context, userID uuid.UUID, f *model.CompositeFace) error {
	if f.Version < 1 {
		return fmt.Errorf("%w: version must be >= 1", apperr.ErrValidation)
	}
	return db.WithOwner(ctx, r.db, userID, func(tx *gorm.DB) error {
		if _, err := ownedSession(tx, userID, f.SessionID, false); err != nil {
			return err
		}
		return tx.Create(f).Error
	})
}

func (r *compositeFaceRepo) InsertNextVersion(ctx context.Context, userID uuid.UUID, f *model.CompositeFace) error {
	return db.WithOwner(ctx, r.db, userID, func(tx *gorm.DB) error {
		if _, err := ownedSession(tx, userID, f.SessionID, true); err != nil {
			return err
		}
		var maxVersion int
		if err := tx.Model(&model.CompositeFace{}).
			Where("session_id = ?", f.SessionID).
			Select("COALESCE(MAX(version), 0)").
			Scan(&maxVersion).Error; err != nil {
			return err
		}
		f.Version = maxVersion + 1
		return tx.Create(f).Error
	})
}

func (r *compositeFaceRepo) Latest(ctx context.Context, userID, sessionID uuid.UUID) (*model.CompositeFace, error) {
	var out *model.CompositeFace
	err := db.WithOwner(ctx, r.db, userID, func(tx *gorm.DB) error {
		if _, err := ownedSession(tx, userID, sessionID, false); err != nil {
			return err
		}
		var f model.CompositeFace
		err := tx.Where("session_id = ?", sessionID).
			Order("version DESC, created_at DESC").
			First(&f).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		out = &f
		return nil
	})
	return out, err
}

// ListBySession returns every version, newest first.
func (r *compositeFaceRepo) ListBySession(ctx context.Context, userID, sessionID uuid.UUID) ([]model.CompositeFace, error) {
	var items []model.CompositeFace
	err := db.WithOwner(ctx, r.db, userID, func(tx *gorm.DB) error {
		if _, err := ownedSession(tx, userID, sessionID, false); err != nil {
			return err
		}
		return tx.Where("session_id = ?", sessionID).Order("version DESC, created_at DESC").Find(&items).Error
	})
	return items, err
}
