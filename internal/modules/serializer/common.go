package serializer

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smart-forensic-ai/sketch-api/internal/pkg/apperr"
)

// Response
type Response struct {
	Code  int         `json:"code"`
	Data  interface{} `json:"data,omitempty"`
	Msg   string      `json:"msg"`
	Error string      `json:"error,omitempty"`
}

// TraceErrorResponse
type TrackedErrorResponse struct {
	Response
	TraceID string `json:"trace_id"`
}

// CheckLogin
func CheckLogin() Response {
	return Response{
		Code: http.StatusUnauthorized,
		Msg:  "please login first",
	}
}

// Err
func Err(errCode int, msg string, err error) Response {
	res := Response{
		Code: errCode,
		Msg:  msg,
	}
	// development mode, show error detail
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Error = fmt.Sprintf("%+v", err)
	}
	return res
}

// DBErr
func DBErr(msg string, err error) Response {
	if msg == "" {
		msg = "database error"
	}
	return Err(http.StatusInternalServerError, msg, err)
}

// ParamErr
func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "parameter error"
	}
	return Err(http.StatusBadRequest, msg, err)
}

// AuthErr
func AuthErr(msg string) Response {
	if msg == "" {
		msg = "authentication error"
	}
	return Err(http.StatusUnauthorized, msg, nil)
}

// FromError maps a service error to its HTTP status and envelope.
func FromError(err error) (int, Response) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest, ParamErr("", err)
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized, AuthErr("")
	case errors.Is(err, apperr.ErrPermissionDenied):
		return http.StatusForbidden, Err(http.StatusForbidden, "permission denied", err)
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, Err(http.StatusNotFound, "not found", err)
	case errors.Is(err, apperr.ErrInvalidTransition):
		return http.StatusConflict, Err(http.StatusConflict, "invalid status transition", err)
	case errors.Is(err, apperr.ErrExternalService):
		return http.StatusBadGateway, Err(http.StatusBadGateway, "generation service failure", err)
	default:
		return http.StatusInternalServerError, DBErr("", err)
	}
}

// Abort writes the mapped error and stops the handler chain.
func Abort(c *gin.Context, err error) {
	status, res := FromError(err)
	c.AbortWithStatusJSON(status, res)
}
