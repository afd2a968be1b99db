package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/serializer"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/service"
)

type FaceHandler struct {
	svc service.FaceService
}

func NewFaceHandler(s service.FaceService) *FaceHandler {
	return &FaceHandler{svc: s}
}

// GetLatestFace godoc
//
//	@Summary		Latest composite face
//	@Description	Highest version of the session's composite face. data is null when none exists yet.
//	@Tags			face
//	@Produce		json
//	@Param			session_id	path	string	true	"Session ID"	format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.CompositeFace}
//	@Router			/session/{session_id}/faces/latest [get]
func (h *FaceHandler) GetLatestFace(c *gin.Context) {
	userID, sessionID, ok := scope(c)
	if !ok {
		return
	}
	f, err := h.svc.Latest(c.Request.Context(), userID, sessionID)
	if err != nil {
		serializer.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: f})
}

// GetFaces godoc
//
//	@Summary		List composite faces
//	@Description	All versions of the session's composite face, newest first
//	@Tags			face
//	@Produce		json
//	@Param			session_id	path	string	true	"Session ID"	format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.CompositeFace}
//	@Router			/session/{session_id}/faces [get]
func (h *FaceHandler) GetFaces(c *gin.Context) {
	userID, sessionID, ok := scope(c)
	if !ok {
		return
	}
	faces, err := h.svc.List(c.Request.Context(), userID, sessionID)
	if err != nil {
		serializer.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: faces})
}

type InsertFaceReq struct {
	FaceImagePath *string                `json:"face_image_path" example:"faces/6ba7b810/2026/10/18/ab12.png"`
	Version       int                    `json:"version" binding:"required,min=1" example:"1"`
	Category      string                 `json:"category" example:"eyes"`
	Meta          map[string]interface{} `json:"meta"`
}

// InsertFace godoc
//
//	@Summary		Insert composite face
//	@Description	Record a face version supplied by the caller. Version numbers are not checked for uniqueness.
//	@Tags			face
//	@Accept			json
//	@Produce		json
//	@Param			session_id	path	string				true	"Session ID"	format(uuid)
//	@Param			payload		body	handler.InsertFaceReq	true	"InsertFace payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.CompositeFace}
//	@Router			/session/{session_id}/faces [post]
func (h *FaceHandler) InsertFace(c *gin.Context) {
	userID, sessionID, ok := scope(c)
	if !ok {
		return
	}
	req := InsertFaceReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	f, err := h.svc.Insert(c.Request.Context(), service.InsertFaceInput{
		UserID:        userID,
		SessionID:     sessionID,
		FaceImagePath: req.FaceImagePath,
		Version:       req.Version,
		Category:      req.Category,
		Meta:          req.Meta,
	})
	if err != nil {
		serializer.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: f})
}
