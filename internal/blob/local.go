package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps blobs as plain files under a root directory
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root, %w", err)
	}

	return &LocalStore{root: abs}, nil
}

func (l *LocalStore) Root() string {
	return l.root
}

func (l *LocalStore) Path(name string) string {
	return filepath.Join(l.root, name)
}

func (l *LocalStore) Write(_ context.Context, path string, data []byte) error {
	if err := l.check(path); err != nil {
		return err
	}

	// Created on first write, same as a fresh install with no uploads yet
	if err := os.MkdirAll(l.root, 0o755); err != nil {
		return fmt.Errorf("failed to create storage folder, %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file, %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write blob, %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close blob, %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move blob into place, %w", err)
	}

	return nil
}

func (l *LocalStore) Read(_ context.Context, path string) ([]byte, error) {
	if err := l.check(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotExist
		}

		return nil, fmt.Errorf("failed to read blob, %w", err)
	}

	return data, nil
}

func (l *LocalStore) Delete(_ context.Context, path string) error {
	if err := l.check(path); err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete blob, %w", err)
	}

	return nil
}

// check rejects paths outside of the storage root
func (l *LocalStore) check(path string) error {
	rel, err := filepath.Rel(l.root, filepath.Clean(path))
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") || strings.ContainsRune(rel, filepath.Separator) {
		return fmt.Errorf("path %q is outside of the storage root", path)
	}

	return nil
}
