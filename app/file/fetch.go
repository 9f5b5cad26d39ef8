package file

import (
	"bitwise74/files-api/internal"
	"bitwise74/files-api/pkg/respond"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FileFetch returns the metadata of a public file or one the caller owns
func FileFetch(c *gin.Context, d *internal.Deps) {
	fileID, ok := parseID(c)
	if !ok {
		respond.Message(c, http.StatusNotFound, "Not found")
		return
	}

	file, err := d.FileManager.Get(c.Request.Context(), c.GetUint("userID"), fileID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, file.View())
}
