package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/model"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/repo"
	"github.com/smart-forensic-ai/sketch-api/internal/pkg/apperr"
	"github.com/smart-forensic-ai/sketch-api/internal/pkg/paging"
	"go.uber.org/zap"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
)

type SessionService interface {
	Create(ctx context.Context, userID uuid.UUID, rawInput *string) (*model.Session, error)
	Get(ctx context.Context, userID, sessionID uuid.UUID) (*model.Session, error)
	Update(ctx context.Context, userID, sessionID uuid.UUID, patch model.SessionPatch) (*model.Session, error)
	List(ctx context.Context, in ListSessionsInput) (*ListSessionsOutput, error)
}

type sessionService struct {
	r   repo.SessionRepo
	log *zap.Logger
}

func NewSessionService(r repo.SessionRepo, log *zap.Logger) SessionService {
	return &sessionService{
		r:   r,
		log: log.Named("session"),
	}
}

func (s *sessionService) Create(ctx context.Context, userID uuid.UUID, rawInput *string) (*model.Session, error) {
	ss := &model.Session{
		UserID:   userID,
		RawInput: rawInput,
		Status:   model.StatusStarted,
	}
	if err := s.r.Create(ctx, ss); err != nil {
		return nil, err
	}
	s.log.Debug("session created", zap.String("session_id", ss.ID.String()), zap.String("user_id", userID.String()))
	return ss, nil
}

func (s *sessionService) Get(ctx context.Context, userID, sessionID uuid.UUID) (*model.Session, error) {
	if sessionID == uuid.Nil {
		return nil, fmt.Errorf("%w: session id is empty", apperr.ErrValidation)
	}
	return s.r.Get(ctx, userID, sessionID)
}

func (s *sessionService) Update(ctx context.Context, userID, sessionID uuid.UUID, patch model.SessionPatch) (*model.Session, error) {
	if sessionID == uuid.Nil {
		return nil, fmt.Errorf("%w: session id is empty", apperr.ErrValidation)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperr.ErrValidation, *patch.Status)
	}
	return s.r.Update(ctx, userID, sessionID, patch)
}

type ListSessionsInput struct {
	UserID uuid.UUID `json:"user_id"`
	Limit  int       `json:"limit"`
	Cursor string    `json:"cursor"`
}

type ListSessionsOutput struct {
	Items      []model.Session `json:"items"`
	NextCursor string          `json:"next_cursor,omitempty"`
	HasMore    bool            `json:"has_more"`
}

func (s *sessionService) List(ctx context.Context, in ListSessionsInput) (*ListSessionsOutput, error) {
	if in.Limit == 0 {
		in.Limit = DefaultListLimit
	}
	if in.Limit < 1 || in.Limit > MaxListLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", apperr.ErrValidation, MaxListLimit)
	}

	var afterT time.Time
	var afterID uuid.UUID
	var err error
	if in.Cursor != "" {
		afterT, afterID, err = paging.DecodeCursor(in.Cursor)
		if err != nil {
			return nil, err
		}
	}

	// fetch one extra row to learn whether another page exists
	sessions, err := s.r.ListWithCursor(ctx, in.UserID, afterT, afterID, in.Limit+1)
	if err != nil {
		return nil, err
	}

	out := &ListSessionsOutput{
		Items:   sessions,
		HasMore: false,
	}
	if len(sessions) > in.Limit {
		out.HasMore = true
		out.Items = sessions[:in.Limit]
		last := out.Items[len(out.Items)-1]
		out.NextCursor = paging.EncodeCursor(last.StartedAt, last.ID)
	}
	if out.Items == nil {
		out.Items = []model.Session{}
	}
	return out, nil
}
