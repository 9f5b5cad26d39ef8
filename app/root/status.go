package root

import (
	"bitwise74/files-api/db"
	"bitwise74/files-api/internal"
	"bitwise74/files-api/pkg/respond"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Status reports whether the session store and the database are reachable
func Status(c *gin.Context, d *internal.Deps) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	c.JSON(http.StatusOK, gin.H{
		"redis": d.Sessions.Ping(ctx) == nil,
		"db":    db.Ping(d.DB),
	})
}

// Stats returns the amount of users and files stored
func Stats(c *gin.Context, d *internal.Deps) {
	ctx := c.Request.Context()

	users, err := d.Users.Count(ctx)
	if err != nil {
		respond.Error(c, fmt.Errorf("failed to count users, %w", err))
		return
	}

	files, err := d.Files.Count(ctx)
	if err != nil {
		respond.Error(c, fmt.Errorf("failed to count files, %w", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"files": files,
	})
}
