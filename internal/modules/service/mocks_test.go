package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/smart-forensic-ai/sketch-api/internal/infra/blob"
	"github.com/smart-forensic-ai/sketch-api/internal/infra/httpclient"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/model"
	"github.com/stretchr/testify/mock"
)

// MockProfileRepo is a mock implementation of ProfileRepo
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Ensure(ctx context.Context, userID uuid.UUID, fullName *string) (*model.Profile, error) {
	args := m.Called(ctx, userID, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileRepo) Get(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileRepo) UpdateFullName(ctx context.Context, userID uuid.UUID, fullName *string) (*model.Profile, error) {
	args := m.Called(ctx, userID, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

// MockSessionRepo is a mock implementation of SessionRepo
type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) Create(ctx context.Context, s *model.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepo) Get(ctx context.Context, userID, sessionID uuid.UUID) (*model.Session, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionRepo) Update(ctx context.Context, userID, sessionID uuid.UUID, patch model.SessionPatch) (*model.Session, error) {
	args := m.Called(ctx, userID, sessionID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionRepo) ListWithCursor(ctx context.Context, userID uuid.UUID, afterStartedAt time.Time, afterID uuid.UUID, limit int) ([]model.Session, error) {
	args := m.Called(ctx, userID, afterStartedAt, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Session), args.Error(1)
}

// MockLogRepo is a mock implementation of LogRepo
type MockLogRepo struct {
	mock.Mock
}

func (m *MockLogRepo) Append(ctx context.Context, userID uuid.UUID, l *model.Log) error {
	args := m.Called(ctx, userID, l)
	return args.Error(0)
}

func (m *MockLogRepo) ListBySession(ctx context.Context, userID, sessionID uuid.UUID) ([]model.Log, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Log), args.Error(1)
}

// MockCompositeFaceRepo is a mock implementation of CompositeFaceRepo
type MockCompositeFaceRepo struct {
	mock.Mock
}

func (m *MockCompositeFaceRepo) Insert(ctx context.Context, userID uuid.UUID, f *model.CompositeFace) error {
	args := m.Called(ctx, userID, f)
	return args.Error(0)
}

func (m *MockCompositeFaceRepo) InsertNextVersion(ctx context.Context, userID uuid.UUID, f *model.CompositeFace) error {
	args := m.Called(ctx, userID, f)
	return args.Error(0)
}

func (m *MockCompositeFaceRepo) Latest(ctx context.Context, userID, sessionID uuid.UUID) (*model.CompositeFace, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompositeFace), args.Error(1)
}

func (m *MockCompositeFaceRepo) ListBySession(ctx context.Context, userID, sessionID uuid.UUID) ([]model.CompositeFace, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CompositeFace), args.Error(1)
}

// MockChatRepo is a mock implementation of ChatRepo
type MockChatRepo struct {
	mock.Mock
}

func (m *MockChatRepo) Append(ctx context.Context, userID, sessionID uuid.UUID, msg model.ChatMessage) error {
	args := m.Called(ctx, userID, sessionID, msg)
	return args.Error(0)
}

func (m *MockChatRepo) List(ctx context.Context, userID, sessionID uuid.UUID) ([]model.ChatMessage, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChatMessage), args.Error(1)
}

func (m *MockChatRepo) Clear(ctx context.Context, userID, sessionID uuid.UUID) error {
	args := m.Called(ctx, userID, sessionID)
	return args.Error(0)
}

// MockPublisher is a mock implementation of Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, exchange, routingKey string, data interface{}) error {
	args := m.Called(ctx, exchange, routingKey, data)
	return args.Error(0)
}

// MockObjectStore is a mock implementation of ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) PresignGet(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) UploadBytes(ctx context.Context, keyPrefix string, data []byte, contentType string) (*blob.UploadedMeta, error) {
	args := m.Called(ctx, keyPrefix, data, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blob.UploadedMeta), args.Error(1)
}

func (m *MockObjectStore) UploadFormFile(ctx context.Context, keyPrefix string, fh *multipart.FileHeader) (*blob.UploadedMeta, error) {
	args := m.Called(ctx, keyPrefix, fh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blob.UploadedMeta), args.Error(1)
}

// MockGenerator is a mock implementation of Generator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Describe(ctx context.Context, req httpclient.DescribeRequest) (*httpclient.DescribeResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*httpclient.DescribeResponse), args.Error(1)
}

func (m *MockGenerator) DescribeAudio(ctx context.Context, req httpclient.AudioRequest) (*httpclient.DescribeResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*httpclient.DescribeResponse), args.Error(1)
}
