package middleware

import (
	"bitwise74/files-api/internal/service"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenHeader carries the session token of a request
const TokenHeader = "X-Token"

type Resolver interface {
	Resolve(ctx context.Context, token string) (uint, error)
}

// NewTokenMiddleware rejects requests without a valid session token and
// sets userID for the handlers
func NewTokenMiddleware(r Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		resolve(c, r, false)
	}
}

// NewOptionalTokenMiddleware lets anonymous requests through. A token that
// is present must still be valid
func NewOptionalTokenMiddleware(r Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		resolve(c, r, true)
	}
}

func resolve(c *gin.Context, r Resolver, optional bool) {
	requestID := c.MustGet("requestID").(string)

	token := c.GetHeader(TokenHeader)
	if token == "" && optional {
		c.Next()
		return
	}

	userID, err := r.Resolve(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Unauthorized",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to resolve session", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Set("userID", userID)
	c.Set("token", token)
	c.Next()
}
