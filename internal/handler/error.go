package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/internal/middleware"
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/validation"
)

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  nil,
	})
}

func writeFieldError(c *gin.Context, code, field, rule, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, validation.FieldFailure(code, field, rule, message))
}

// writeInternalError logs err against the request and responds 500 with a
// stable code.
func writeInternalError(c *gin.Context, err error, code, message string) {
	zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("code", code).Msg(message)
	writeError(c, http.StatusInternalServerError, code, message)
}

// writeModelError reports a model invariant violation as a 400 field error.
func writeModelError(c *gin.Context, err error) bool {
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	writeFieldError(c, "VALIDATION_FAILED", verr.Field, "invalid", verr.Message)
	return true
}

// authorize runs the access decision for a single record and writes the
// error response when it fails.
func authorize(c *gin.Context, err error) bool {
	if err != nil {
		middleware.Abort(c, err)
		return false
	}
	return true
}

func parseIDParam(c *gin.Context, name, code, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		writeError(c, http.StatusBadRequest, code, message)
		return uuid.Nil, false
	}
	return id, true
}
