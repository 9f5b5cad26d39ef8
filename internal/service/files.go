package service

import (
	"bitwise74/files-api/internal/blob"
	"bitwise74/files-api/internal/model"
	"bitwise74/files-api/internal/queue"
	"bitwise74/files-api/internal/store"
	"bitwise74/files-api/pkg/metrics"
	"bitwise74/files-api/pkg/validators"
	"context"
	"errors"
	"fmt"
	"math"
	"mime"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

const PageSize = 20

// ThumbnailWidths are the widths the thumbnail worker generates for images
var ThumbnailWidths = []int{500, 250, 100}

// VariantPath is where the thumbnail of the given width is stored
func VariantPath(localPath string, width int) string {
	return fmt.Sprintf("%s_%d", localPath, width)
}

type CreateInput struct {
	Name     string
	Type     model.FileType
	ParentID uint
	IsPublic bool
	// Base64 encoded content, ignored for folders
	Data string
}

// Content is a raw blob ready to be sent to a client
type Content struct {
	Name        string
	ContentType string
	Data        []byte
}

type FileManager struct {
	files FileRepo
	blobs blob.Store
	queue queue.Enqueuer
}

func NewFileManager(files FileRepo, blobs blob.Store, q queue.Enqueuer) *FileManager {
	return &FileManager{
		files: files,
		blobs: blobs,
		queue: q,
	}
}

// Create stores a new file or folder for userID. The blob is written before
// the record so a stored record always has its content
func (m *FileManager) Create(ctx context.Context, userID uint, in CreateInput) (*model.File, error) {
	data, err := validators.FileValidator(in.Name, in.Type, in.Data)
	if err != nil {
		return nil, invalid(err.Error())
	}

	if in.ParentID != model.RootID {
		// Parents must belong to the caller, a public folder of another user won't do
		parent, err := m.files.FindOwned(ctx, in.ParentID, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, invalid("Parent not found")
			}

			return nil, fmt.Errorf("failed to find parent, %w", err)
		}

		if parent.Type != model.TypeFolder {
			return nil, invalid("Parent is not a folder")
		}
	}

	file := &model.File{
		UserID:   userID,
		ParentID: in.ParentID,
		Name:     in.Name,
		Type:     in.Type,
		IsPublic: in.IsPublic,
	}

	if in.Type.HasContent() {
		file.LocalPath = m.blobs.Path(blob.NewName())

		if err := m.blobs.Write(ctx, file.LocalPath, data); err != nil {
			return nil, fmt.Errorf("failed to write blob, %w", err)
		}
	}

	if err := m.files.Create(ctx, file); err != nil {
		if file.LocalPath != "" {
			if derr := m.blobs.Delete(ctx, file.LocalPath); derr != nil {
				zap.L().Error("Failed to remove blob of unsaved file", zap.Error(derr), zap.String("path", file.LocalPath))
			}
		}

		return nil, fmt.Errorf("failed to save file, %w", err)
	}

	metrics.Uploads.WithLabelValues(string(file.Type)).Inc()

	if in.Type.HasContent() {
		err := m.queue.EnqueueThumbnail(ctx, queue.ThumbnailJob{FileID: file.ID, UserID: userID})
		if err != nil {
			metrics.EnqueueFailures.WithLabelValues(queue.TypeThumbnail).Inc()
			zap.L().Error("Failed to enqueue thumbnail job", zap.Error(err), zap.Uint("file_id", file.ID))
		}
	}

	return file, nil
}

// Get returns a file when it's public or owned by userID. Anonymous callers
// use a zero userID
func (m *FileManager) Get(ctx context.Context, userID, fileID uint) (*model.File, error) {
	file, err := m.files.FindByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to find file, %w", err)
	}

	if !file.IsPublic && (userID == 0 || file.UserID != userID) {
		return nil, ErrNotFound
	}

	return file, nil
}

// List returns one page of the files userID keeps directly under parentID
func (m *FileManager) List(ctx context.Context, userID, parentID uint, page int) ([]model.File, error) {
	if page < 0 {
		page = 0
	}

	// No row sits that far out and the offset would overflow
	if page > math.MaxInt/PageSize {
		return []model.File{}, nil
	}

	files, err := m.files.ListByParent(ctx, userID, parentID, page*PageSize, PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list files, %w", err)
	}

	return files, nil
}

// SetVisibility publishes or unpublishes a file owned by userID
func (m *FileManager) SetVisibility(ctx context.Context, userID, fileID uint, public bool) (*model.File, error) {
	file, err := m.files.SetPublic(ctx, fileID, userID, public)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to update file, %w", err)
	}

	return file, nil
}

// ReadContent returns the content of a file, or of one of its thumbnails
// when size is set
func (m *FileManager) ReadContent(ctx context.Context, userID, fileID uint, size string) (*Content, error) {
	file, err := m.Get(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}

	if !file.Type.HasContent() {
		return nil, ErrInvalidOperation
	}

	path := file.LocalPath
	if size != "" {
		w, err := strconv.Atoi(size)
		if err != nil || !slices.Contains(ThumbnailWidths, w) {
			return nil, ErrNotFound
		}

		path = VariantPath(file.LocalPath, w)
	}

	data, err := m.blobs.Read(ctx, path)
	if err != nil {
		if errors.Is(err, blob.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to read blob, %w", err)
	}

	return &Content{
		Name:        file.Name,
		ContentType: contentType(file.Name, data),
		Data:        data,
	}, nil
}

func contentType(name string, data []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}

	return mimetype.Detect(data).String()
}
