// Package root contains the handlers that aren't tied to a resource
package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Heartbeat answers health checks with an empty 200. Proxies must not cache
// it or a dead instance would keep looking alive
func Heartbeat(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Status(http.StatusOK)
}
