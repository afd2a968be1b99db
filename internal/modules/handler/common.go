package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/serializer"
)

// ContextUserID is the gin context key the auth middleware stores the caller under.
const ContextUserID = "user_id"

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.CheckLogin())
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok || id == uuid.Nil {
		c.JSON(http.StatusUnauthorized, serializer.CheckLogin())
		return uuid.Nil, false
	}
	return id, true
}

func sessionParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid session_id", err))
		return uuid.Nil, false
	}
	return id, true
}

// scope resolves the caller and the session path parameter.
func scope(c *gin.Context) (userID, sessionID uuid.UUID, ok bool) {
	if userID, ok = currentUser(c); !ok {
		return
	}
	sessionID, ok = sessionParam(c)
	return
}
