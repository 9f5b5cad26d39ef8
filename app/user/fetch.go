// Package user contains the handlers of the /users routes
package user

import (
	"bitwise74/files-api/internal"
	"bitwise74/files-api/pkg/respond"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserFetch returns the user behind the session token
func UserFetch(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(uint)

	user, err := d.Accounts.Me(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, user.View())
}
