package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/serializer"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/service"
)

type ProfileHandler struct {
	svc service.ProfileService
}

func NewProfileHandler(s service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: s}
}

// GetProfile godoc
//
//	@Summary		Get profile
//	@Description	Get the profile of the authenticated user
//	@Tags			profile
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Profile}
//	@Router			/profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		serializer.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: p})
}

type UpdateProfileReq struct {
	FullName string `json:"full_name" example:"Det. Sam Rivera"`
}

// UpdateProfile godoc
//
//	@Summary		Update profile
//	@Description	Set or clear the display name of the authenticated user
//	@Tags			profile
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.UpdateProfileReq	true	"UpdateProfile payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Profile}
//	@Router			/profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	req := UpdateProfileReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	p, err := h.svc.UpdateFullName(c.Request.Context(), userID, req.FullName)
	if err != nil {
		serializer.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: p})
}
