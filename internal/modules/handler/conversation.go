package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/serializer"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/service"
)

type ConversationHandler struct {
	svc service.ConversationService
}

func NewConversationHandler(s service.ConversationService) *ConversationHandler {
	return &ConversationHandler{svc: s}
}

// GetConversation godoc
//
//	@Summary		Get conversation
//	@Description	Cached conversation turns sent to the generation service as context
//	@Tags			conversation
//	@Produce		json
//	@Param			session_id	path	string	true	"Session ID"	format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.ChatMessage}
//	@Router			/session/{session_id}/conversation [get]
func (h *ConversationHandler) GetConversation(c *gin.Context) {
	userID, sessionID, ok := scope(c)
	if !ok {
		return
	}
	msgs, err := h.svc.History(c.Request.Context(), userID, sessionID)
	if err != nil {
		serializer.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: msgs})
}

// ClearConversation godoc
//
//	@Summary		Clear conversation
//	@Description	Drop the cached conversation; the next generation starts without context
//	@Tags			conversation
//	@Produce		json
//	@Param			session_id	path	string	true	"Session ID"	format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/session/{session_id}/conversation [delete]
func (h *ConversationHandler) ClearConversation(c *gin.Context) {
	userID, sessionID, ok := scope(c)
	if !ok {
		return
	}
	if err := h.svc.Clear(c.Request.Context(), userID, sessionID); err != nil {
		serializer.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}
