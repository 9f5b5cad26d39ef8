// Package auth contains the handlers that open and close sessions
package auth

import (
	"bitwise74/files-api/internal"
	"bitwise74/files-api/internal/service"
	"bitwise74/files-api/pkg/respond"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Connect exchanges basic auth credentials for a session token
func Connect(c *gin.Context, d *internal.Deps) {
	email, password, err := service.ParseBasic(c.GetHeader("Authorization"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	token, err := d.Gate.Login(c.Request.Context(), email, password)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
	})
}
