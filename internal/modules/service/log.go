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
)

type LogService interface {
	Append(ctx context.Context, in AppendLogInput) (*model.Log, error)
	List(ctx context.Context, userID, sessionID uuid.UUID) ([]model.Log, error)
}

type AuditTopic struct {
	Exchange   string
	RoutingKey string
	Timeout    time.Duration
}

type logService struct {
	r     repo.LogRepo
	log   *zap.Logger
	pub   Publisher
	topic AuditTopic
}

// NewLogService wires the audit log. pub may be nil when no broker is configured.
func NewLogService(r repo.LogRepo, log *zap.Logger, pub Publisher, topic AuditTopic) LogService {
	return &logService{
		r:     r,
		log:   log.Named("log"),
		pub:   pub,
		topic: topic,
	}
}

type AppendLogInput struct {
	UserID      uuid.UUID
	SessionID   uuid.UUID
	ActionType  model.ActionType
	Description string
}

// LogAppendedEvent is the audit message published after a log row is stored.
type LogAppendedEvent struct {
	LogID       uuid.UUID        `json:"log_id"`
	SessionID   uuid.UUID        `json:"session_id"`
	UserID      uuid.UUID        `json:"user_id"`
	ActionType  model.ActionType `json:"action_type"`
	Description string           `json:"description"`
	Timestamp   time.Time        `json:"timestamp"`
}

func (s *logService) Append(ctx context.Context, in AppendLogInput) (*model.Log, error) {
	if !in.ActionType.Valid() {
		return nil, fmt.Errorf("%w: unknown action_type %q", apperr.ErrValidation, in.ActionType)
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return nil, fmt.Errorf("%w: description is empty", apperr.ErrValidation)
	}

	l := &model.Log{
		SessionID:   in.SessionID,
		ActionType:  in.ActionType,
		Description: desc,
	}
	if err := s.r.Append(ctx, in.UserID, l); err != nil {
		return nil, err
	}

	s.publish(ctx, LogAppendedEvent{
		LogID:       l.ID,
		SessionID:   l.SessionID,
		UserID:      in.UserID,
		ActionType:  l.ActionType,
		Description: l.Description,
		Timestamp:   l.Timestamp,
	})
	return l, nil
}

// publish is best effort; the log row is already committed.
func (s *logService) publish(ctx context.Context, ev LogAppendedEvent) {
	if s.pub == nil {
		return
	}
	if s.topic.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.topic.Timeout)
		defer cancel()
	}
	if err := s.pub.PublishJSON(ctx, s.topic.Exchange, s.topic.RoutingKey, ev); err != nil {
		s.log.Warn("publish audit event failed",
			zap.String("session_id", ev.SessionID.String()),
			zap.String("log_id", ev.LogID.String()),
			zap.Error(err))
	}
}

func (s *logService) List(ctx context.Context, userID, sessionID uuid.UUID) ([]model.Log, error) {
	logs, err := s.r.ListBySession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []model.Log{}
	}
	return logs, nil
}
