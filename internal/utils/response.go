package utils

import (
	"net/http"
	"promptbuilder-backend/internal/apperr"
	"promptbuilder-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response represents a standardized response structure.
// It includes a status code, a message, and data.
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"` // Ensure data is always present, even if nil (will be null in JSON)
}

// NewResponse creates a new Response instance.
func NewResponse(status int, message string, data interface{}) Response {
	return Response{
		Status:  status,
		Message: message,
		Data:    data,
	}
}

// NewSuccessResponse creates a new success Response instance.
// Defaults status to 200 (OK).
func NewSuccessResponse(message string, data interface{}) Response {
	return Response{
		Status:  http.StatusOK,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse creates a new error Response instance.
// Data is explicitly set to nil.
func NewErrorResponse(status int, message string) Response {
	return Response{
		Status:  status,
		Message: message,
		Data:    nil,
	}
}

// RequestIDKey is the gin context key holding the current request id.
const RequestIDKey = "request_id"

// RequestID returns the id the request logger assigned, or "".
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// RespondError writes err with the status its kind maps to. Unexpected errors
// are logged and attached to the gin context.
func RespondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		logger.Log.Error("Handler error",
			zap.String("request_id", RequestID(c)),
			zap.String("route", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(status, NewErrorResponse(status, err.Error()))
}
