// Package respond writes the JSON error bodies of the API
package respond

import (
	"bitwise74/files-api/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error maps a service error to its status code and message. Unexpected
// errors are logged and hidden from the client
func Error(c *gin.Context, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		Message(c, http.StatusBadRequest, verr.Msg)
	case errors.Is(err, service.ErrUnauthenticated):
		Message(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, service.ErrNotFound):
		Message(c, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrInvalidOperation):
		Message(c, http.StatusBadRequest, "A folder doesn't have content")
	default:
		Message(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Request failed",
			zap.Error(err),
			zap.String("path", c.FullPath()),
			zap.String("requestID", c.GetString("requestID")))
	}
}

func Message(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":     msg,
		"requestID": c.GetString("requestID"),
	})
}
