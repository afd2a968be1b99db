package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/model"
	"github.com/smart-forensic-ai/sketch-api/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFaceService_Latest(t *testing.T) {
	ctx := context.Background()
	userID, sessionID := uuid.New(), uuid.New()
	key := "faces/s/2026/10/18/abc.png"

	t.Run("presigns stored key", func(t *testing.T) {
		r := &MockCompositeFaceRepo{}
		st := &MockObjectStore{}
		r.On("Latest", ctx, userID, sessionID).Return(&model.CompositeFace{Version: 4, FaceImagePath: &key}, nil)
		st.On("PresignGet", ctx, key, 15*time.Minute).Return("https://signed/abc.png", nil)

		f, err := NewFaceService(r, zap.NewNop(), st, 15*time.Minute).Latest(ctx, userID, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 4, f.Version)
		assert.Equal(t, "https://signed/abc.png", f.ImageURL)
		st.AssertExpectations(t)
	})

	t.Run("no faces yet", func(t *testing.T) {
		r := &MockCompositeFaceRepo{}
		r.On("Latest", ctx, userID, sessionID).Return(nil, nil)

		f, err := NewFaceService(r, zap.NewNop(), &MockObjectStore{}, time.Minute).Latest(ctx, userID, sessionID)
		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("presign failure keeps the row", func(t *testing.T) {
		r := &MockCompositeFaceRepo{}
		st := &MockObjectStore{}
		r.On("Latest", ctx, userID, sessionID).Return(&model.CompositeFace{Version: 1, FaceImagePath: &key}, nil)
		st.On("PresignGet", ctx, key, mock.Anything).Return("", errors.New("no creds"))

		f, err := NewFaceService(r, zap.NewNop(), st, time.Minute).Latest(ctx, userID, sessionID)
		require.NoError(t, err)
		assert.Empty(t, f.ImageURL)
	})

	t.Run("absolute url passes through", func(t *testing.T) {
		r := &MockCompositeFaceRepo{}
		u := "https://cdn.example.org/face.png"
		r.On("Latest", ctx, userID, sessionID).Return(&model.CompositeFace{Version: 1, FaceImagePath: &u}, nil)

		f, err := NewFaceService(r, zap.NewNop(), nil, time.Minute).Latest(ctx, userID, sessionID)
		require.NoError(t, err)
		assert.Equal(t, u, f.ImageURL)
	})

	t.Run("ownership error surfaces", func(t *testing.T) {
		r := &MockCompositeFaceRepo{}
		r.On("Latest", ctx, userID, sessionID).Return(nil, apperr.ErrPermissionDenied)

		_, err := NewFaceService(r, zap.NewNop(), nil, time.Minute).Latest(ctx, userID, sessionID)
		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
	})
}

func TestFaceService_Insert(t *testing.T) {
	ctx := context.Background()
	userID, sessionID := uuid.New(), uuid.New()

	r := &MockCompositeFaceRepo{}
	r.On("Insert", ctx, userID, mock.MatchedBy(func(f *model.CompositeFace) bool {
		return f.SessionID == sessionID && f.Version == 2 && f.Meta["source"] == "manual"
	})).Return(nil)

	svc := NewFaceService(r, zap.NewNop(), nil, time.Minute)
	f, err := svc.Insert(ctx, InsertFaceInput{UserID: userID, SessionID: sessionID, Version: 2, Meta: map[string]interface{}{"source": "manual"}})
	require.NoError(t, err)
	assert.Equal(t, 2, f.Version)

	_, err = svc.Insert(ctx, InsertFaceInput{UserID: userID, SessionID: sessionID, Version: 0})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	r.AssertExpectations(t)
}
