package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/smart-forensic-ai/sketch-api/internal/infra/blob"
	"github.com/smart-forensic-ai/sketch-api/internal/infra/httpclient"
)

// Publisher emits audit events; *queue.Publisher satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, exchange, routingKey string, data interface{}) error
}

// ObjectStore is the part of *blob.S3Deps the services use.
type ObjectStore interface {
	PresignGet(ctx context.Context, key string, expire time.Duration) (string, error)
	UploadBytes(ctx context.Context, keyPrefix string, data []byte, contentType string) (*blob.UploadedMeta, error)
	UploadFormFile(ctx context.Context, keyPrefix string, fh *multipart.FileHeader) (*blob.UploadedMeta, error)
}

// Generator is the external sketch collaborator; *httpclient.GenerationClient satisfies it.
type Generator interface {
	Describe(ctx context.Context, req httpclient.DescribeRequest) (*httpclient.DescribeResponse, error)
	DescribeAudio(ctx context.Context, req httpclient.AudioRequest) (*httpclient.DescribeResponse, error)
}
