package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/model"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/repo"
	"github.com/smart-forensic-ai/sketch-api/internal/pkg/apperr"
)

const maxFullNameLen = 200

type ProfileService interface {
	Ensure(ctx context.Context, userID uuid.UUID, fullName string) (*model.Profile, error)
	Get(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	UpdateFullName(ctx context.Context, userID uuid.UUID, fullName string) (*model.Profile, error)
}

type profileService struct {
	r repo.ProfileRepo
}

func NewProfileService(r repo.ProfileRepo) ProfileService {
	return &profileService{r: r}
}

func normalizeFullName(name string) (*string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(name) > maxFullNameLen {
		return nil, fmt.Errorf("%w: full_name longer than %d characters", apperr.ErrValidation, maxFullNameLen)
	}
	return &name, nil
}

func (s *profileService) Ensure(ctx context.Context, userID uuid.UUID, fullName string) (*model.Profile, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty user id", apperr.ErrUnauthenticated)
	}
	name, err := normalizeFullName(fullName)
	if err != nil {
		// a bad name claim must not lock the user out
		name = nil
	}
	return s.r.Ensure(ctx, userID, name)
}

func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	return s.r.Get(ctx, userID)
}

func (s *profileService) UpdateFullName(ctx context.Context, userID uuid.UUID, fullName string) (*model.Profile, error) {
	name, err := normalizeFullName(fullName)
	if err != nil {
		return nil, err
	}
	return s.r.UpdateFullName(ctx, userID, name)
}
