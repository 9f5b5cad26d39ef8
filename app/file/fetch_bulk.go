package file

import (
	"bitwise74/files-api/internal"
	"bitwise74/files-api/internal/model"
	"bitwise74/files-api/pkg/respond"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// FileFetchBulk lists one page of the caller's files under parentId
func FileFetchBulk(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(uint)

	parentID := model.RootID
	if v := c.Query("parentId"); v != "" && v != "0" {
		id, ok := parseUint(v)
		if !ok {
			// No file can live under a parent that doesn't parse
			c.JSON(http.StatusOK, []model.FileView{})
			return
		}
		parentID = id
	}

	// Bad pages fall back to the first one
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}

	files, err := d.FileManager.List(c.Request.Context(), userID, parentID, page)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, model.Views(files))
}
