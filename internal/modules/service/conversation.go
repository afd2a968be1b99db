package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/model"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/repo"
)

type ConversationService interface {
	History(ctx context.Context, userID, sessionID uuid.UUID) ([]model.ChatMessage, error)
	Clear(ctx context.Context, userID, sessionID uuid.UUID) error
}

type conversationService struct {
	sessions repo.SessionRepo
	chat     repo.ChatRepo
}

func NewConversationService(sessions repo.SessionRepo, chat repo.ChatRepo) ConversationService {
	return &conversationService{sessions: sessions, chat: chat}
}

func (s *conversationService) History(ctx context.Context, userID, sessionID uuid.UUID) ([]model.ChatMessage, error) {
	if _, err := s.sessions.Get(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	msgs, err := s.chat.List(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []model.ChatMessage{}
	}
	return msgs, nil
}

func (s *conversationService) Clear(ctx context.Context, userID, sessionID uuid.UUID) error {
	if _, err := s.sessions.Get(ctx, userID, sessionID); err != nil {
		return err
	}
	return s.chat.Clear(ctx, userID, sessionID)
}
