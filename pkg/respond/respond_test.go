package respond

import (
	"bitwise74/files-api/internal/service"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err    error
		status int
		body   string
	}{
		{&service.ValidationError{Msg: "Missing name"}, http.StatusBadRequest, `{"error":"Missing name","requestID":"abc"}`},
		{fmt.Errorf("wrapped, %w", service.ErrUnauthenticated), http.StatusUnauthorized, `{"error":"Unauthorized","requestID":"abc"}`},
		{service.ErrNotFound, http.StatusNotFound, `{"error":"Not found","requestID":"abc"}`},
		{service.ErrInvalidOperation, http.StatusBadRequest, `{"error":"A folder doesn't have content","requestID":"abc"}`},
		{errors.New("db gone"), http.StatusInternalServerError, `{"error":"Internal server error","requestID":"abc"}`},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("requestID", "abc")

		Error(c, tt.err)

		assert.Equal(t, tt.status, w.Code, tt.err.Error())
		assert.JSONEq(t, tt.body, w.Body.String())
		assert.True(t, c.IsAborted())
	}
}
