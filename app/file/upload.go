package file

import (
	"bitwise74/files-api/internal"
	"bitwise74/files-api/internal/model"
	"bitwise74/files-api/internal/service"
	"bitwise74/files-api/pkg/respond"
	"bitwise74/files-api/pkg/validators"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type uploadBody struct {
	Name     string         `json:"name"`
	Type     model.FileType `json:"type"`
	ParentID flexID         `json:"parentId"`
	IsPublic bool           `json:"isPublic"`
	Data     string         `json:"data"`
}

func FileUpload(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	var data uploadBody
	if err := c.ShouldBindJSON(&data); err != nil && !errors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Message(c, http.StatusRequestEntityTooLarge, "Request body size exceeds limit")
			return
		}

		respond.Message(c, http.StatusBadRequest, "Invalid request body")

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	in := service.CreateInput{
		Name:     data.Name,
		Type:     data.Type,
		ParentID: data.ParentID.ID,
		IsPublic: data.IsPublic,
		Data:     data.Data,
	}

	// A malformed parent can never exist, the other fields are reported first
	if data.ParentID.Invalid {
		if _, err := validators.FileValidator(in.Name, in.Type, in.Data); err != nil {
			respond.Message(c, http.StatusBadRequest, err.Error())
			return
		}

		respond.Message(c, http.StatusBadRequest, "Parent not found")
		return
	}

	file, err := d.FileManager.Create(c.Request.Context(), userID, in)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, file.View())
}
