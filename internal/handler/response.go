package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

// NewMessageResponse is a success response carrying a message and optional data.
func NewMessageResponse(message string, data interface{}) *Response {
	return &Response{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondError writes err as an error envelope. Application errors keep their
// status and message; anything else is logged and reported as a 500.
func RespondError(c *gin.Context, err error) {
	if appErr, ok := apperrors.As(err); ok {
		status := appErr.StatusCode()
		if status >= http.StatusInternalServerError {
			logServerError(c, err)
			c.JSON(status, NewErrorResponse("Internal server error"))
			return
		}
		c.JSON(status, NewErrorResponse(appErr.Message))
		return
	}

	logServerError(c, err)
	c.JSON(http.StatusInternalServerError, NewErrorResponse("Internal server error"))
}

func logServerError(c *gin.Context, err error) {
	log.Error().
		Err(err).
		Str("request_id", c.GetString(ContextRequestID)).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg("request failed")
}
