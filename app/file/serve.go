package file

import (
	"bitwise74/files-api/internal"
	"bitwise74/files-api/pkg/respond"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FileServe sends the raw content of a file or one of its thumbnails
func FileServe(c *gin.Context, d *internal.Deps) {
	fileID, ok := parseID(c)
	if !ok {
		respond.Message(c, http.StatusNotFound, "Not found")
		return
	}

	content, err := d.FileManager.ReadContent(c.Request.Context(), c.GetUint("userID"), fileID, c.Query("size"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.Data(http.StatusOK, content.ContentType, content.Data)
}
