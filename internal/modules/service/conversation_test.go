package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/model"
	"github.com/smart-forensic-ai/sketch-api/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationService(t *testing.T) {
	ctx := context.Background()
	userID, sessionID := uuid.New(), uuid.New()

	t.Run("history of owned session", func(t *testing.T) {
		sr := &MockSessionRepo{}
		cr := &MockChatRepo{}
		sr.On("Get", ctx, userID, sessionID).Return(&model.Session{ID: sessionID, UserID: userID}, nil)
		cr.On("List", ctx, userID, sessionID).Return([]model.ChatMessage{{Role: model.RoleUser, Text: "hi"}}, nil)

		msgs, err := NewConversationService(sr, cr).History(ctx, userID, sessionID)
		require.NoError(t, err)
		assert.Len(t, msgs, 1)
	})

	t.Run("foreign session never touches the cache", func(t *testing.T) {
		sr := &MockSessionRepo{}
		cr := &MockChatRepo{}
		sr.On("Get", ctx, userID, sessionID).Return(nil, apperr.ErrPermissionDenied)

		svc := NewConversationService(sr, cr)
		_, err := svc.History(ctx, userID, sessionID)
		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
		assert.ErrorIs(t, svc.Clear(ctx, userID, sessionID), apperr.ErrPermissionDenied)
		cr.AssertNotCalled(t, "List")
		cr.AssertNotCalled(t, "Clear")
	})

	t.Run("clear", func(t *testing.T) {
		sr := &MockSessionRepo{}
		cr := &MockChatRepo{}
		sr.On("Get", ctx, userID, sessionID).Return(&model.Session{ID: sessionID, UserID: userID}, nil)
		cr.On("Clear", ctx, userID, sessionID).Return(nil)

		require.NoError(t, NewConversationService(sr, cr).Clear(ctx, userID, sessionID))
		cr.AssertExpectations(t)
	})
}
