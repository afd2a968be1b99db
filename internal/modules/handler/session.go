package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/model"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/serializer"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/service"
)

type SessionHandler struct {
	svc service.SessionService
}

func NewSessionHandler(s service.SessionService) *SessionHandler {
	return &SessionHandler{svc: s}
}

type CreateSessionReq struct {
	RawInput *string `json:"raw_input" example:"Male, around 40, round face, thick eyebrows"`
}

// CreateSession godoc
//
//	@Summary		Create session
//	@Description	Start a new sketch session for the authenticated user
//	@Tags			session
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateSessionReq	false	"CreateSession payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Session}
//	@Router			/session [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	req := CreateSessionReq{}
	// the body is optional
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
			return
		}
	}

	s, err := h.svc.Create(c.Request.Context(), userID, req.RawInput)
	if err != nil {
		serializer.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: s})
}

type GetSessionsReq struct {
	Limit  int    `form:"limit,default=20" json:"limit" binding:"min=1,max=200" example:"20"`
	Cursor string `form:"cursor" json:"cursor" example:"MjAyNi0xMC0xOFQxMjowMDowMFp8NmJhN2I4MTAtOWRhZC0xMWQxLTgwYjQtMDBjMDRmZDQzMGM4"`
}

// GetSessions godoc
//
//	@Summary		List sessions
//	@Description	List the caller's sessions, newest first
//	@Tags			session
//	@Produce		json
//	@Param			limit	query	integer	false	"Limit of sessions to return, default 20. Max 200."
//	@Param			cursor	query	string	false	"Cursor for pagination. Use the cursor from the previous response to get the next page."
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ListSessionsOutput}
//	@Router			/session [get]
func (h *SessionHandler) GetSessions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	req := GetSessionsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.List(c.Request.Context(), service.ListSessionsInput{
		UserID: userID,
		Limit:  req.Limit,
		Cursor: req.Cursor,
	})
	if err != nil {
		serializer.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// GetSession godoc
//
//	@Summary		Get session
//	@Tags			session
//	@Produce		json
//	@Param			session_id	path	string	true	"Session ID"	format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Session}
//	@Router			/session/{session_id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	userID, sessionID, ok := scope(c)
	if !ok {
		return
	}
	s, err := h.svc.Get(c.Request.Context(), userID, sessionID)
	if err != nil {
		serializer.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: s})
}

type UpdateSessionReq struct {
	RawInput *string              `json:"raw_input" example:"Add a thin scar on the left cheek"`
	Status   *model.SessionStatus `json:"status" swaggertype:"string" enums:"Started,Processing,In Progress,Completed,Error" example:"Completed"`
}

// UpdateSession godoc
//
//	@Summary		Update session
//	@Description	Patch raw_input and/or status. Status changes follow the session state machine.
//	@Tags			session
//	@Accept			json
//	@Produce		json
//	@Param			session_id	path	string						true	"Session ID"	format(uuid)
//	@Param			payload		body	handler.UpdateSessionReq	true	"UpdateSession payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Session}
//	@Failure		409	{object}	serializer.Response
//	@Router			/session/{session_id} [patch]
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	userID, sessionID, ok := scope(c)
	if !ok {
		return
	}
	req := UpdateSessionReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	s, err := h.svc.Update(c.Request.Context(), userID, sessionID, model.SessionPatch{
		RawInput: req.RawInput,
		Status:   req.Status,
	})
	if err != nil {
		serializer.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: s})
}
