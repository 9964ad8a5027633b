package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	ErrorCodeInvalidArgument    = "INVALID_ARGUMENT"
	ErrorCodeNotFound           = "NOT_FOUND"
	ErrorCodeAlreadyExists      = "ALREADY_EXISTS"
	ErrorCodeFailedPrecondition = "FAILED_PRECONDITION"
	ErrorCodeInternal           = "INTERNAL"
)

// respondWithError renders err as an APIError with the status derived from
// its errbuilder code.
func respondWithError(c *gin.Context, err error, details interface{}) {
	status, code := statusForError(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, APIError{Code: code, Message: errorMessage(err), Details: details})
}

func statusForError(err error) (int, string) {
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument:
		return http.StatusBadRequest, ErrorCodeInvalidArgument
	case errbuilder.CodeNotFound:
		return http.StatusNotFound, ErrorCodeNotFound
	case errbuilder.CodeAlreadyExists:
		return http.StatusConflict, ErrorCodeAlreadyExists
	case errbuilder.CodeFailedPrecondition:
		return http.StatusUnprocessableEntity, ErrorCodeFailedPrecondition
	default:
		return http.StatusInternalServerError, ErrorCodeInternal
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("http request")
	}
}
