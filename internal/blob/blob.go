// Package blob stores raw file content outside of the database
package blob

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotExist is returned when reading a blob that was never written
var ErrNotExist = errors.New("blob does not exist")

type Store interface {
	// Path returns the address a blob called name is stored under. The
	// returned value is what gets persisted on the file record
	Path(name string) string
	// Write replaces the content at path. Readers never observe a partial write
	Write(ctx context.Context, path string, data []byte) error
	Read(ctx context.Context, path string) ([]byte, error)
	// Delete removes a blob. Deleting a missing blob is not an error
	Delete(ctx context.Context, path string) error
}

// NewName returns a fresh unique blob name
func NewName() string {
	return uuid.NewString()
}
