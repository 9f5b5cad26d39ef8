package auth

import (
	"bitwise74/files-api/internal"
	"bitwise74/files-api/pkg/respond"
	"net/http"

	"github.com/gin-gonic/gin"
)

func Disconnect(c *gin.Context, d *internal.Deps) {
	if err := d.Gate.Logout(c.Request.Context(), c.GetString("token")); err != nil {
		respond.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
