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
	"gorm.io/gorm/clause"
)

type ProfileRepo interface {
	// Ensure creates the profile on first sight of a user and returns the stored row.
	Ensure(ctx context.Context, userID uuid.UUID, fullName *string) (*model.Profile, error)
	Get(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	UpdateFullName(ctx context.Context, userID uuid.UUID, fullName *string) (*model.Profile, error)
}

type profileRepo struct{ db *gorm.DB }

func NewProfileRepo(db *gorm.DB) ProfileRepo {
	return &profileRepo{db: db}
}

func (r *profileRepo) Ensure(ctx context.Context, userID uuid.UUID, fullName *string) (*model.Profile, error) {
	p := &model.Profile{ID: userID, FullName: fullName}
	err := db.WithOwner(ctx, r.db, userID, func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(p).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", userID).First(p).Error
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileRepo) Get(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	var p model.Profile
	err := db.WithOwner(ctx, r.db, userID, func(tx *gorm.DB) error {
		return tx.Where("id = ?", userID).First(&p).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("profile %s: %w", userID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) UpdateFullName(ctx context.Context, userID uuid.UUID, fullName *string) (*model.Profile, error) {
	var p model.Profile
	err := db.WithOwner(ctx, r.db, userID, func(tx *gorm.DB) error {
		res := tx.Model(&model.Profile{}).Where("id = ?", userID).Update("full_name", fullName)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("profile %s: %w", userID, apperr.ErrNotFound)
		}
		return tx.Where("id = ?", userID).First(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}
