package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/model"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/serializer"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/service"
)

type LogHandler struct {
	svc service.LogService
}

func NewLogHandler(s service.LogService) *LogHandler {
	return &LogHandler{svc: s}
}

type AppendLogReq struct {
	ActionType  string `json:"action_type" binding:"required" enums:"transform,regenerate,create,update" example:"transform"`
	Description string `json:"description" binding:"required" example:"Made the jawline wider"`
}

// AppendLog godoc
//
//	@Summary		Append log
//	@Description	Append an audit record to a session. Logs cannot be edited or removed.
//	@Tags			log
//	@Accept			json
//	@Produce		json
//	@Param			session_id	path	string				true	"Session ID"	format(uuid)
//	@Param			payload		body	handler.AppendLogReq	true	"AppendLog payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Log}
//	@Router			/session/{session_id}/logs [post]
func (h *LogHandler) AppendLog(c *gin.Context) {
	userID, sessionID, ok := scope(c)
	if !ok {
		return
	}
	req := AppendLogReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	l, err := h.svc.Append(c.Request.Context(), service.AppendLogInput{
		UserID:      userID,
		SessionID:   sessionID,
		ActionType:  model.ActionType(req.ActionType),
		Description: req.Description,
	})
	if err != nil {
		serializer.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: l})
}

// GetLogs godoc
//
//	@Summary		List logs
//	@Description	List the audit records of a session, oldest first
//	@Tags			log
//	@Produce		json
//	@Param			session_id	path	string	true	"Session ID"	format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Log}
//	@Router			/session/{session_id}/logs [get]
func (h *LogHandler) GetLogs(c *gin.Context) {
	userID, sessionID, ok := scope(c)
	if !ok {
		return
	}
	logs, err := h.svc.List(c.Request.Context(), userID, sessionID)
	if err != nil {
		serializer.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: logs})
}
