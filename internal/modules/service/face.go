package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/model"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/repo"
	"github.com/smart-forensic-ai/sketch-api/internal/pkg/apperr"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type FaceService interface {
	Latest(ctx context.Context, userID, sessionID uuid.UUID) (*model.CompositeFace, error)
	List(ctx context.Context, userID, sessionID uuid.UUID) ([]model.CompositeFace, error)
	Insert(ctx context.Context, in InsertFaceInput) (*model.CompositeFace, error)
}

type faceService struct {
	r         repo.CompositeFaceRepo
	log       *zap.Logger
	store     ObjectStore
	urlExpire time.Duration
}

// NewFaceService builds the face service. store may be nil, in which case image_url stays empty.
func NewFaceService(r repo.CompositeFaceRepo, log *zap.Logger, store ObjectStore, urlExpire time.Duration) FaceService {
	return &faceService{
		r:         r,
		log:       log.Named("face"),
		store:     store,
		urlExpire: urlExpire,
	}
}

type InsertFaceInput struct {
	UserID        uuid.UUID
	SessionID     uuid.UUID
	FaceImagePath *string
	Version       int
	Category      string
	Meta          map[string]interface{}
}

func (s *faceService) Latest(ctx context.Context, userID, sessionID uuid.UUID) (*model.CompositeFace, error) {
	f, err := s.r.Latest(ctx, userID, sessionID)
	if err != nil || f == nil {
		return f, err
	}
	s.attachURL(ctx, f)
	return f, nil
}

func (s *faceService) List(ctx context.Context, userID, sessionID uuid.UUID) ([]model.CompositeFace, error) {
	faces, err := s.r.ListBySession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if faces == nil {
		faces = []model.CompositeFace{}
	}
	for i := range faces {
		s.attachURL(ctx, &faces[i])
	}
	return faces, nil
}

func (s *faceService) Insert(ctx context.Context, in InsertFaceInput) (*model.CompositeFace, error) {
	if in.Version < 1 {
		return nil, fmt.Errorf("%w: version must be >= 1", apperr.ErrValidation)
	}
	f := &model.CompositeFace{
		SessionID:     in.SessionID,
		FaceImagePath: in.FaceImagePath,
		Version:       in.Version,
		Category:      in.Category,
	}
	if len(in.Meta) > 0 {
		f.Meta = datatypes.JSONMap(in.Meta)
	}
	if err := s.r.Insert(ctx, in.UserID, f); err != nil {
		return nil, err
	}
	s.attachURL(ctx, f)
	return f, nil
}

// attachURL presigns stored object keys. Absolute URLs are passed through.
func (s *faceService) attachURL(ctx context.Context, f *model.CompositeFace) {
	if f.FaceImagePath == nil || *f.FaceImagePath == "" {
		return
	}
	p := *f.FaceImagePath
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		f.ImageURL = p
		return
	}
	if s.store == nil {
		return
	}
	u, err := s.store.PresignGet(ctx, p, s.urlExpire)
	if err != nil {
		s.log.Warn("presign face image failed", zap.String("key", p), zap.Error(err))
		return
	}
	f.ImageURL = u
}
