package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/model"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/service"
	"github.com/stretchr/testify/mock"
)

// MockProfileService is a mock implementation of ProfileService
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Ensure(ctx context.Context, userID uuid.UUID, fullName string) (*model.Profile, error) {
	args := m.Called(ctx, userID, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileService) Get(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileService) UpdateFullName(ctx context.Context, userID uuid.UUID, fullName string) (*model.Profile, error) {
	args := m.Called(ctx, userID, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

// MockSessionService is a mock implementation of SessionService
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(ctx context.Context, userID uuid.UUID, rawInput *string) (*model.Session, error) {
	args := m.Called(ctx, userID, rawInput)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionService) Get(ctx context.Context, userID, sessionID uuid.UUID) (*model.Session, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionService) Update(ctx context.Context, userID, sessionID uuid.UUID, patch model.SessionPatch) (*model.Session, error) {
	args := m.Called(ctx, userID, sessionID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionService) List(ctx context.Context, in service.ListSessionsInput) (*service.ListSessionsOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListSessionsOutput), args.Error(1)
}

// MockLogService is a mock implementation of LogService
type MockLogService struct {
	mock.Mock
}

func (m *MockLogService) Append(ctx context.Context, in service.AppendLogInput) (*model.Log, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Log), args.Error(1)
}

func (m *MockLogService) List(ctx context.Context, userID, sessionID uuid.UUID) ([]model.Log, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Log), args.Error(1)
}

// MockFaceService is a mock implementation of FaceService
type MockFaceService struct {
	mock.Mock
}

func (m *MockFaceService) Latest(ctx context.Context, userID, sessionID uuid.UUID) (*model.CompositeFace, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompositeFace), args.Error(1)
}

func (m *MockFaceService) List(ctx context.Context, userID, sessionID uuid.UUID) ([]model.CompositeFace, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CompositeFace), args.Error(1)
}

func (m *MockFaceService) Insert(ctx context.Context, in service.InsertFaceInput) (*model.CompositeFace, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompositeFace), args.Error(1)
}

// MockConversationService is a mock implementation of ConversationService
type MockConversationService struct {
	mock.Mock
}

func (m *MockConversationService) History(ctx context.Context, userID, sessionID uuid.UUID) ([]model.ChatMessage, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChatMessage), args.Error(1)
}

func (m *MockConversationService) Clear(ctx context.Context, userID, sessionID uuid.UUID) error {
	args := m.Called(ctx, userID, sessionID)
	return args.Error(0)
}

// MockGenerationService is a mock implementation of GenerationService
type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) Generate(ctx context.Context, in service.GenerateInput) (*service.GenerateOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GenerateOutput), args.Error(1)
}

// setupRouter returns a test engine that authenticates every request as userID.
func setupRouter(userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(ContextUserID, userID)
		}
		c.Next()
	})
	return r
}
