package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/smart-forensic-ai/sketch-api/internal/config"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/serializer"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/service"
)

// UserClaims is the access token issued by the identity provider.
type UserClaims struct {
	UserMetadata struct {
		FullName string `json:"full_name"`
	} `json:"user_metadata"`
	jwt.RegisteredClaims
}

// ParseUserToken verifies an HS256 access token and returns the subject as a user id.
func ParseUserToken(cfg config.AuthCfg, raw string) (uuid.UUID, *UserClaims, error) {
	// an empty HMAC key verifies tokens anyone can mint
	if cfg.JWTSecret == "" {
		return uuid.Nil, nil, errors.New("jwt secret is not configured")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	claims := &UserClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	}, opts...)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("parse token: %w", err)
	}
	if !tok.Valid {
		return uuid.Nil, nil, errors.New("invalid token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("invalid subject: %w", err)
	}
	return userID, claims, nil
}

// UserAuth authenticates bearer tokens, makes sure the caller has a profile row
// and stores the caller id in the context under "user_id".
func UserAuth(cfg *config.Config, profiles service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

		userID, claims, err := ParseUserToken(cfg.Auth, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		if _, err := profiles.Ensure(c.Request.Context(), userID, claims.UserMetadata.FullName); err != nil {
			serializer.Abort(c, err)
			return
		}

		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			span.SetAttributes(attribute.String("user_id", userID.String()))
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
