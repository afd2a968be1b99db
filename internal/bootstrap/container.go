package bootstrap

import (
	"context"
	"time"

	"github.com/smart-forensic-ai/sketch-api/internal/config"
	"github.com/smart-forensic-ai/sketch-api/internal/infra/blob"
	"github.com/smart-forensic-ai/sketch-api/internal/infra/cache"
	"github.com/smart-forensic-ai/sketch-api/internal/infra/db"
	"github.com/smart-forensic-ai/sketch-api/internal/infra/httpclient"
	"github.com/smart-forensic-ai/sketch-api/internal/infra/logger"
	"github.com/smart-forensic-ai/sketch-api/internal/infra/queue"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/handler"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/repo"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/service"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PresignExpire is the lifetime of presigned image URLs.
type PresignExpire time.Duration

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := db.Migrate(d); err != nil {
				return nil, err
			}
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		return cache.New(do.MustInvoke[*config.Config](i)), nil
	})

	// RabbitMQ: optional, audit events are skipped without a broker
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.RabbitMQ.URL == "" {
			return nil, nil
		}
		return amqp.Dial(cfg.RabbitMQ.URL)
	})
	do.Provide(inj, func(i *do.Injector) (service.Publisher, error) {
		conn := do.MustInvoke[*amqp.Connection](i)
		if conn == nil {
			return nil, nil
		}
		return queue.NewPublisher(conn, do.MustInvoke[*zap.Logger](i)), nil
	})

	// S3: optional, without a bucket generated images cannot be stored
	do.Provide(inj, func(i *do.Injector) (service.ObjectStore, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.S3.Bucket == "" {
			do.MustInvoke[*zap.Logger](i).Warn("s3.bucket is empty, face images will not be stored")
			return nil, nil
		}
		return blob.NewS3(context.Background(), cfg)
	})
	do.Provide(inj, func(i *do.Injector) (PresignExpire, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.S3.PresignExpireSec <= 0 {
			return PresignExpire(15 * time.Minute), nil
		}
		return PresignExpire(time.Duration(cfg.S3.PresignExpireSec) * time.Second), nil
	})

	// generation collaborator
	do.Provide(inj, func(i *do.Injector) (service.Generator, error) {
		return httpclient.NewGenerationClient(do.MustInvoke[*config.Config](i), do.MustInvoke[*zap.Logger](i)), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.ProfileRepo, error) {
		return repo.NewProfileRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.SessionRepo, error) {
		return repo.NewSessionRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.LogRepo, error) {
		return repo.NewLogRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.CompositeFaceRepo, error) {
		return repo.NewCompositeFaceRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ChatRepo, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return repo.NewChatRepo(
			do.MustInvoke[*redis.Client](i),
			time.Duration(cfg.Chat.TTLSec)*time.Second,
			cfg.Chat.MaxMessages,
		), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.ProfileService, error) {
		return service.NewProfileService(do.MustInvoke[repo.ProfileRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.SessionService, error) {
		return service.NewSessionService(
			do.MustInvoke[repo.SessionRepo](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.LogService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewLogService(
			do.MustInvoke[repo.LogRepo](i),
			do.MustInvoke[*zap.Logger](i),
			do.MustInvoke[service.Publisher](i),
			service.AuditTopic{
				Exchange:   cfg.RabbitMQ.AuditExchange,
				RoutingKey: cfg.RabbitMQ.AuditRoutingKey,
				Timeout:    time.Duration(cfg.RabbitMQ.PublishTimeoutSec) * time.Second,
			},
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.FaceService, error) {
		return service.NewFaceService(
			do.MustInvoke[repo.CompositeFaceRepo](i),
			do.MustInvoke[*zap.Logger](i),
			do.MustInvoke[service.ObjectStore](i),
			time.Duration(do.MustInvoke[PresignExpire](i)),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ConversationService, error) {
		return service.NewConversationService(
			do.MustInvoke[repo.SessionRepo](i),
			do.MustInvoke[repo.ChatRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.GenerationService, error) {
		return service.NewGenerationService(
			do.MustInvoke[repo.SessionRepo](i),
			do.MustInvoke[repo.CompositeFaceRepo](i),
			do.MustInvoke[repo.ChatRepo](i),
			do.MustInvoke[service.LogService](i),
			do.MustInvoke[service.Generator](i),
			do.MustInvoke[service.ObjectStore](i),
			do.MustInvoke[*zap.Logger](i),
			time.Duration(do.MustInvoke[PresignExpire](i)),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.ProfileHandler, error) {
		return handler.NewProfileHandler(do.MustInvoke[service.ProfileService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.SessionHandler, error) {
		return handler.NewSessionHandler(do.MustInvoke[service.SessionService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.LogHandler, error) {
		return handler.NewLogHandler(do.MustInvoke[service.LogService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.FaceHandler, error) {
		return handler.NewFaceHandler(do.MustInvoke[service.FaceService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.GenerationHandler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return handler.NewGenerationHandler(do.MustInvoke[service.GenerationService](i), cfg.Generation.MaxAudioBytes), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ConversationHandler, error) {
		return handler.NewConversationHandler(do.MustInvoke[service.ConversationService](i)), nil
	})

	return inj
}
