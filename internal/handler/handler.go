package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
)

// ContextRequestID is the gin context key holding the request id.
const ContextRequestID = "request_id"

// Groups are the route groups handlers register on, by required access.
type Groups struct {
	Public        *gin.RouterGroup
	Authenticated *gin.RouterGroup
	Staff         *gin.RouterGroup
	Admin         *gin.RouterGroup
}

// ParseID reads a positive integer path parameter.
func ParseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.BadRequest(fmt.Sprintf("invalid %s", name), err)
	}
	return id, nil
}

// BindJSON decodes and validates the request body into obj.
func BindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return apperrors.BadRequest(validationMessage(err), err)
	}
	return nil
}

// BindQuery decodes and validates query parameters into obj.
func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		return apperrors.BadRequest(validationMessage(err), err)
	}
	return nil
}

var tagMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"isodate":  "must be a date in YYYY-MM-DD format",
	"oneof":    "must be one of",
	"gt":       "must be greater than",
	"min":      "is too small",
	"len":      "has the wrong length",
	"numeric":  "must be numeric",
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}

	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msg, ok := tagMessages[e.Tag()]
		if !ok {
			msg = "is invalid"
		}
		if e.Param() != "" && (e.Tag() == "oneof" || e.Tag() == "gt") {
			msg += " " + e.Param()
		}
		parts = append(parts, e.Field()+" "+msg)
	}
	return strings.Join(parts, "; ")
}
