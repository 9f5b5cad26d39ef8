// Package file contains the handlers of the /files routes
package file

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseID reads the :id path parameter. IDs start at 1
func parseID(c *gin.Context) (uint, bool) {
	return parseUint(c.Param("id"))
}

func parseUint(s string) (uint, bool) {
	n, err := strconv.ParseUint(s, 10, 0)
	if err != nil || n == 0 {
		return 0, false
	}

	return uint(n), true
}

// flexID accepts both 3 and "3". Clients send the root as 0 or "0"
type flexID struct {
	ID uint
	// Set when the value can't be an ID, a missing value is the root
	Invalid bool
}

func (f *flexID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		if v < 0 || v != float64(uint(v)) {
			f.Invalid = true
			return nil
		}
		f.ID = uint(v)
	case string:
		if v == "" || v == "0" {
			return nil
		}

		n, ok := parseUint(v)
		f.ID, f.Invalid = n, !ok
	default:
		f.Invalid = true
	}

	return nil
}
