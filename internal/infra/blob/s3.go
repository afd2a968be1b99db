package blob

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/smart-forensic-ai/sketch-api/internal/config"
)

type S3Deps struct {
	Client    *s3.Client
	Uploader  *manager.Uploader
	Presigner *s3.PresignClient
	Bucket    string
	SSE       *s3types.ServerSideEncryption
}

func NewS3(ctx context.Context, cfg *config.Config) (*S3Deps, error) {
	loadOpts := []func(*awsCfg.LoadOptions) error{
		awsCfg.WithRegion(cfg.S3.Region),
	}
	if cfg.S3.AccessKey != "" && cfg.S3.SecretKey != "" {
		loadOpts = append(loadOpts, awsCfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3.AccessKey, cfg.S3.SecretKey, ""),
		))
	}

	acfg, err := awsCfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	s3Opts := func(o *s3.Options) {
		if ep := strings.TrimSpace(cfg.S3.Endpoint); ep != "" {
			if !strings.HasPrefix(ep, "http://") && !strings.HasPrefix(ep, "https://") {
				ep = "https://" + ep
			}
			if u, uerr := url.Parse(ep); uerr == nil {
				o.BaseEndpoint = aws.String(u.String())
			}
		}
		o.UsePathStyle = cfg.S3.UsePathStyle
	}

	client := s3.NewFromConfig(acfg, s3Opts)

	var sse *s3types.ServerSideEncryption
	if cfg.S3.SSE != "" {
		v := s3types.ServerSideEncryption(cfg.S3.SSE)
		sse = &v
	}

	return &S3Deps{
		Client:    client,
		Uploader:  manager.NewUploader(client),
		Presigner: s3.NewPresignClient(client),
		Bucket:    cfg.S3.Bucket,
		SSE:       sse,
	}, nil
}

// PresignGet returns a time-limited GET URL for key.
func (s *S3Deps) PresignGet(ctx context.Context, key string, expire time.Duration) (string, error) {
	if key == "" {
		return "", errors.New("key is empty")
	}
	ps, err := s.Presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.Bucket,
		Key:    &key,
	}, func(po *s3.PresignOptions) {
		po.Expires = expire
	})
	if err != nil {
		return "", err
	}
	return ps.URL, nil
}

type UploadedMeta struct {
	Bucket string
	Key    string
	ETag   string
	SHA256 string
	MIME   string
	SizeB  int64
}

// ObjectKey is the content-addressed key layout: prefix/yyyy/mm/dd/sha256.ext
func ObjectKey(prefix, sumHex, ext string, now time.Time) string {
	return fmt.Sprintf("%s/%s/%s%s", strings.TrimSuffix(prefix, "/"), now.UTC().Format("2006/01/02"), sumHex, ext)
}

// UploadBytes stores an in-memory object such as a generated face image.
func (s *S3Deps) UploadBytes(ctx context.Context, keyPrefix string, data []byte, contentType string) (*UploadedMeta, error) {
	sum := sha256.Sum256(data)
	sumHex := hex.EncodeToString(sum[:])
	key := ObjectKey(keyPrefix, sumHex, extensionFor(contentType, ""), time.Now())

	return s.put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType, map[string]string{"sha256": sumHex})
}

// UploadFormFile stores a multipart upload such as a recorded voice clip.
func (s *S3Deps) UploadFormFile(ctx context.Context, keyPrefix string, fh *multipart.FileHeader) (*UploadedMeta, error) {
	sumHex, err := sha256OfFileHeader(fh)
	if err != nil {
		return nil, fmt.Errorf("calc sha256: %w", err)
	}

	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	contentType := fh.Header.Get("Content-Type")
	key := ObjectKey(keyPrefix, sumHex, extensionFor(contentType, fh.Filename), time.Now())

	return s.put(ctx, key, file, fh.Size, contentType, map[string]string{
		"sha256": sumHex,
		"name":   fh.Filename,
	})
}

func (s *S3Deps) put(ctx context.Context, key string, body io.Reader, size int64, contentType string, meta map[string]string) (*UploadedMeta, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		Metadata:    meta,
	}
	if s.SSE != nil {
		input.ServerSideEncryption = *s.SSE
	}

	out, err := s.Uploader.Upload(ctx, input)
	if err != nil {
		return nil, err
	}

	etag := ""
	if out.ETag != nil {
		etag = *out.ETag
	}
	return &UploadedMeta{
		Bucket: s.Bucket,
		Key:    key,
		ETag:   etag,
		SHA256: meta["sha256"],
		MIME:   contentType,
		SizeB:  size,
	}, nil
}

func sha256OfFileHeader(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// extensionFor prefers the original filename's extension, then the content type's.
func extensionFor(contentType, filename string) string {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		return ext
	}
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
