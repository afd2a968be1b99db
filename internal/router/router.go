package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/smart-forensic-ai/sketch-api/docs"
	"github.com/smart-forensic-ai/sketch-api/internal/config"
	"github.com/smart-forensic-ai/sketch-api/internal/middleware"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/handler"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/serializer"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/service"
	"github.com/smart-forensic-ai/sketch-api/internal/telemetry"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Config              *config.Config
	Log                 *zap.Logger
	ProfileService      service.ProfileService
	ProfileHandler      *handler.ProfileHandler
	SessionHandler      *handler.SessionHandler
	LogHandler          *handler.LogHandler
	FaceHandler         *handler.FaceHandler
	GenerationHandler   *handler.GenerationHandler
	ConversationHandler *handler.ConversationHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if telemetry.Enabled(d.Config) {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.RequestID())
	r.Use(middleware.ZapLogger(d.Log))
	if len(d.Config.CORS.AllowOrigins) > 0 {
		r.Use(middleware.CORS(d.Config.CORS.AllowOrigins))
	}

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		v1.Use(middleware.UserAuth(d.Config, d.ProfileService))

		profile := v1.Group("/profile")
		{
			profile.GET("", d.ProfileHandler.GetProfile)
			profile.PUT("", d.ProfileHandler.UpdateProfile)
		}

		session := v1.Group("/session")
		{
			session.GET("", d.SessionHandler.GetSessions)
			session.POST("", d.SessionHandler.CreateSession)
			session.GET("/:session_id", d.SessionHandler.GetSession)
			session.PATCH("/:session_id", d.SessionHandler.UpdateSession)

			session.POST("/:session_id/logs", d.LogHandler.AppendLog)
			session.GET("/:session_id/logs", d.LogHandler.GetLogs)

			session.GET("/:session_id/faces", d.FaceHandler.GetFaces)
			session.POST("/:session_id/faces", d.FaceHandler.InsertFace)
			session.GET("/:session_id/faces/latest", d.FaceHandler.GetLatestFace)

			session.POST("/:session_id/generate", d.GenerationHandler.Generate)

			session.GET("/:session_id/conversation", d.ConversationHandler.GetConversation)
			session.DELETE("/:session_id/conversation", d.ConversationHandler.ClearConversation)
		}
	}
	return r
}
