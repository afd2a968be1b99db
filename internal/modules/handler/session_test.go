package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/model"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/serializer"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/service"
	"github.com/smart-forensic-ai/sketch-api/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionHandler_CreateSession(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		body           string
		setup          func(*MockSessionService)
		expectedStatus int
	}{
		{
			name: "with raw input",
			body: `{"raw_input":"round face"}`,
			setup: func(svc *MockSessionService) {
				svc.On("Create", mock.Anything, userID, mock.MatchedBy(func(s *string) bool { return s != nil && *s == "round face" })).
					Return(&model.Session{ID: uuid.New(), UserID: userID, Status: model.StatusStarted}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "empty body",
			body: "",
			setup: func(svc *MockSessionService) {
				svc.On("Create", mock.Anything, userID, (*string)(nil)).
					Return(&model.Session{ID: uuid.New(), UserID: userID, Status: model.StatusStarted}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "malformed json",
			body:           `{"raw_input":`,
			setup:          func(svc *MockSessionService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "service layer error",
			body: `{}`,
			setup: func(svc *MockSessionService) {
				svc.On("Create", mock.Anything, userID, mock.Anything).Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockSessionService{}
			tt.setup(svc)

			router := setupRouter(userID)
			router.POST("/session", NewSessionHandler(svc).CreateSession)

			req := httptest.NewRequest("POST", "/session", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestSessionHandler_Unauthenticated(t *testing.T) {
	svc := &MockSessionService{}
	router := setupRouter(uuid.Nil)
	router.GET("/session", NewSessionHandler(svc).GetSessions)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/session", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "List")
}

func TestSessionHandler_GetSessions(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		query          string
		setup          func(*MockSessionService)
		expectedStatus int
	}{
		{
			name:  "default limit",
			query: "",
			setup: func(svc *MockSessionService) {
				svc.On("List", mock.Anything, service.ListSessionsInput{UserID: userID, Limit: 20}).
					Return(&service.ListSessionsOutput{Items: []model.Session{{ID: uuid.New()}}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "cursor forwarded",
			query: "?limit=5&cursor=abc",
			setup: func(svc *MockSessionService) {
				svc.On("List", mock.Anything, service.ListSessionsInput{UserID: userID, Limit: 5, Cursor: "abc"}).
					Return(nil, apperr.ErrValidation)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "limit out of range",
			query:          "?limit=500",
			setup:          func(svc *MockSessionService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockSessionService{}
			tt.setup(svc)

			router := setupRouter(userID)
			router.GET("/session", NewSessionHandler(svc).GetSessions)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", "/session"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestSessionHandler_GetSession(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()

	tests := []struct {
		name           string
		id             string
		setup          func(*MockSessionService)
		expectedStatus int
	}{
		{
			name: "owned session",
			id:   sessionID.String(),
			setup: func(svc *MockSessionService) {
				svc.On("Get", mock.Anything, userID, sessionID).Return(&model.Session{ID: sessionID, UserID: userID}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "someone else's session",
			id:   sessionID.String(),
			setup: func(svc *MockSessionService) {
				svc.On("Get", mock.Anything, userID, sessionID).Return(nil, apperr.ErrPermissionDenied)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "missing session",
			id:   sessionID.String(),
			setup: func(svc *MockSessionService) {
				svc.On("Get", mock.Anything, userID, sessionID).Return(nil, apperr.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid id",
			id:             "not-a-uuid",
			setup:          func(svc *MockSessionService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockSessionService{}
			tt.setup(svc)

			router := setupRouter(userID)
			router.GET("/session/:session_id", NewSessionHandler(svc).GetSession)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", "/session/"+tt.id, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestSessionHandler_UpdateSession(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()

	t.Run("status change", func(t *testing.T) {
		svc := &MockSessionService{}
		svc.On("Update", mock.Anything, userID, sessionID, mock.MatchedBy(func(p model.SessionPatch) bool {
			return p.Status != nil && *p.Status == model.StatusCompleted && p.RawInput == nil
		})).Return(&model.Session{ID: sessionID, Status: model.StatusCompleted}, nil)

		router := setupRouter(userID)
		router.PATCH("/session/:session_id", NewSessionHandler(svc).UpdateSession)

		req := httptest.NewRequest("PATCH", "/session/"+sessionID.String(), bytes.NewBufferString(`{"status":"Completed"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp serializer.Response
		require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "Completed", data["status"])
	})

	t.Run("invalid transition", func(t *testing.T) {
		svc := &MockSessionService{}
		svc.On("Update", mock.Anything, userID, sessionID, mock.Anything).Return(nil, apperr.ErrInvalidTransition)

		router := setupRouter(userID)
		router.PATCH("/session/:session_id", NewSessionHandler(svc).UpdateSession)

		req := httptest.NewRequest("PATCH", "/session/"+sessionID.String(), bytes.NewBufferString(`{"status":"Started"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
