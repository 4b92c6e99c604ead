package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error classes. Handlers wrap one of these with fmt.Errorf("%w: ...") and let Fail pick the status.
var (
	ErrValidation       = errors.New("validation error")
	ErrMalformedRequest = errors.New("malformed request")
	ErrNotFound         = errors.New("not found")
	ErrUpstreamStorage  = errors.New("upstream storage error")
	ErrUpstreamSearch   = errors.New("upstream search error")
	ErrPersistence      = errors.New("persistence error")
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code,omitempty"`
}

// StatusFor maps an error to its HTTP status. Unclassified errors are internal.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrMalformedRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUpstreamStorage), errors.Is(err, ErrUpstreamSearch):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error writes a JSON error with the given status.
func Error(ctx *gin.Context, status int, code int, message string) {
	ctx.JSON(status, ErrorResponse{Error: message, Code: code})
}

// Fail logs err and responds with the status of its class and a client-safe message.
func Fail(ctx *gin.Context, err error, code int, message string) {
	status := StatusFor(err)
	fields := []zap.Field{
		zap.Error(err),
		zap.Int("status", status),
		zap.Int("code", code),
		zap.String("method", ctx.Request.Method),
		zap.String("path", ctx.Request.URL.Path),
	}
	if status >= http.StatusInternalServerError {
		Logger.Error(message, fields...)
	} else {
		Logger.Info(message, fields...)
	}
	Error(ctx, status, code, message)
}
