package file

import (
	"bitwise74/files-api/internal"
	"bitwise74/files-api/pkg/respond"
	"net/http"

	"github.com/gin-gonic/gin"
)

func FilePublish(c *gin.Context, d *internal.Deps) {
	setVisibility(c, d, true)
}

func FileUnpublish(c *gin.Context, d *internal.Deps) {
	setVisibility(c, d, false)
}

func setVisibility(c *gin.Context, d *internal.Deps, public bool) {
	userID := c.MustGet("userID").(uint)

	fileID, ok := parseID(c)
	if !ok {
		respond.Message(c, http.StatusNotFound, "Not found")
		return
	}

	file, err := d.FileManager.SetVisibility(c.Request.Context(), userID, fileID, public)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, file.View())
}
