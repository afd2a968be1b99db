package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/serializer"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/service"
)

type GenerationHandler struct {
	svc           service.GenerationService
	maxAudioBytes int64
}

func NewGenerationHandler(s service.GenerationService, maxAudioBytes int64) *GenerationHandler {
	return &GenerationHandler{svc: s, maxAudioBytes: maxAudioBytes}
}

type GenerateReq struct {
	Description string `form:"description" json:"description" example:"A 30-year-old man with short black hair and glasses"`
	Refine      bool   `form:"refine" json:"refine" example:"false"`
}

// Generate godoc
//
//	@Summary		Generate composite face
//	@Description	Send a witness description (JSON) or a voice recording (multipart field "audio") to the generation service.
//	@Description	A returned image is stored as the next face version of the session.
//	@Tags			generation
//	@Accept			json,mpfd
//	@Produce		json
//	@Param			session_id	path		string				true	"Session ID"	format(uuid)
//	@Param			payload		body		handler.GenerateReq	false	"Generate payload (JSON)"
//	@Param			audio		formData	file				false	"Voice recording (multipart)"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.GenerateOutput}
//	@Failure		502	{object}	serializer.Response
//	@Router			/session/{session_id}/generate [post]
func (h *GenerationHandler) Generate(c *gin.Context) {
	userID, sessionID, ok := scope(c)
	if !ok {
		return
	}

	in := service.GenerateInput{UserID: userID, SessionID: sessionID}
	ct := c.ContentType()
	if strings.HasPrefix(ct, "multipart/form-data") {
		if h.maxAudioBytes > 0 {
			// one extra MiB for the other form fields
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxAudioBytes+1<<20)
		}
		fh, err := c.FormFile("audio")
		if err != nil && err != http.ErrMissingFile {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid multipart body", err))
			return
		}
		if fh != nil && h.maxAudioBytes > 0 && fh.Size > h.maxAudioBytes {
			c.JSON(http.StatusBadRequest, serializer.ParamErr(fmt.Sprintf("audio larger than %d bytes", h.maxAudioBytes), nil))
			return
		}
		in.Audio = fh
		in.Description = c.PostForm("description")
		if v := c.PostForm("refine"); v != "" {
			refine, err := strconv.ParseBool(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid refine", err))
				return
			}
			in.Refine = refine
		}
	} else {
		req := GenerateReq{}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
			return
		}
		in.Description = req.Description
		in.Refine = req.Refine
	}

	out, err := h.svc.Generate(c.Request.Context(), in)
	if err != nil {
		serializer.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}
