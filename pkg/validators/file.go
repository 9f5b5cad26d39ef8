package validators

import (
	"bitwise74/files-api/internal/model"
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrFileNameEmpty   = errors.New("Missing name")
	ErrFileTypeInvalid = errors.New("Missing type")
	ErrFileDataEmpty   = errors.New("Missing data")
	ErrFileDataInvalid = errors.New("Invalid data")
)

var encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// FileValidator checks an upload payload in the order clients expect the
// errors and returns the decoded content. Folders never carry content
func FileValidator(name string, t model.FileType, data string) ([]byte, error) {
	if name == "" {
		return nil, ErrFileNameEmpty
	}

	if !t.Valid() {
		return nil, ErrFileTypeInvalid
	}

	if !t.HasContent() {
		return nil, nil
	}

	if data == "" {
		return nil, ErrFileDataEmpty
	}

	data = strings.TrimSpace(data)
	for _, enc := range encodings {
		if b, err := enc.DecodeString(data); err == nil {
			return b, nil
		}
	}

	return nil, ErrFileDataInvalid
}
