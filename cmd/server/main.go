package main

//	@title			Sketch API
//	@version		1.0
//	@description	Sessions, composite-face versions and audit logs for forensic sketch work.
//	@schemes		http https
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Access token from the identity provider (e.g., "Bearer eyJhbGciOi...")

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smart-forensic-ai/sketch-api/internal/bootstrap"
	"github.com/smart-forensic-ai/sketch-api/internal/config"
	"github.com/smart-forensic-ai/sketch-api/internal/infra/cache"
	dbpkg "github.com/smart-forensic-ai/sketch-api/internal/infra/db"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/handler"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/service"
	"github.com/smart-forensic-ai/sketch-api/internal/router"
	"github.com/smart-forensic-ai/sketch-api/internal/telemetry"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer func() { _ = log.Sync() }()
	db := do.MustInvoke[*gorm.DB](inj)
	rdb := do.MustInvoke[*redis.Client](inj)

	tp, err := telemetry.SetupTracing(context.Background(), cfg)
	if err != nil {
		log.Sugar().Warnw("failed to setup tracing, continuing without tracing", "err", err)
	} else if tp != nil {
		log.Sugar().Infow("OpenTelemetry tracing enabled", "endpoint", cfg.Telemetry.OtlpEndpoint)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				log.Sugar().Errorw("failed to shutdown tracer", "err", err)
			}
		}()

		if err := dbpkg.RegisterOpenTelemetryPlugin(db); err != nil {
			log.Sugar().Warnw("failed to register GORM OpenTelemetry plugin", "err", err)
		}
		if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
			log.Sugar().Warnw("failed to register Redis OpenTelemetry plugin", "err", err)
		}
	}

	gin.SetMode(cfg.App.Env)

	engine := router.NewRouter(router.RouterDeps{
		Config:              cfg,
		Log:                 log,
		ProfileService:      do.MustInvoke[service.ProfileService](inj),
		ProfileHandler:      do.MustInvoke[*handler.ProfileHandler](inj),
		SessionHandler:      do.MustInvoke[*handler.SessionHandler](inj),
		LogHandler:          do.MustInvoke[*handler.LogHandler](inj),
		FaceHandler:         do.MustInvoke[*handler.FaceHandler](inj),
		GenerationHandler:   do.MustInvoke[*handler.GenerationHandler](inj),
		ConversationHandler: do.MustInvoke[*handler.ConversationHandler](inj),
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Sugar().Infow("starting http server", "addr", addr)
		log.Sugar().Infow("swagger url", "url", addr+"/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// generation requests can take a while
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}

	if conn := do.MustInvoke[*amqp.Connection](inj); conn != nil {
		_ = conn.Close()
	}
	_ = rdb.Close()
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Sugar().Info("server exited")
}
