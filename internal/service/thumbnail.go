package service

import (
	"bitwise74/files-api/internal/blob"
	"bitwise74/files-api/internal/model"
	"bitwise74/files-api/internal/queue"
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// ThumbnailProcessor writes the resized variants of uploaded images
type ThumbnailProcessor struct {
	files  FileRepo
	blobs  blob.Store
	widths []int
}

func NewThumbnailProcessor(files FileRepo, blobs blob.Store) *ThumbnailProcessor {
	return &ThumbnailProcessor{
		files:  files,
		blobs:  blobs,
		widths: ThumbnailWidths,
	}
}

// Process handles one thumbnail job. Existing variants are overwritten so
// running a job twice is harmless
func (p *ThumbnailProcessor) Process(ctx context.Context, j queue.ThumbnailJob) error {
	file, err := p.files.FindOwned(ctx, j.FileID, j.UserID)
	if err != nil {
		return fmt.Errorf("failed to find file %d, %w", j.FileID, err)
	}

	if file.Type != model.TypeImage {
		zap.L().Debug("Skipping thumbnails for non image file", zap.Uint("file_id", file.ID))
		return nil
	}

	data, err := p.blobs.Read(ctx, file.LocalPath)
	if err != nil {
		return fmt.Errorf("failed to read original, %w", err)
	}

	_, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to detect image format, %w", err)
	}

	format, err := imaging.FormatFromExtension(name)
	if err != nil {
		return fmt.Errorf("unsupported image format %s, %w", name, err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("failed to decode image, %w", err)
	}

	for _, w := range p.widths {
		var buf bytes.Buffer

		thumb := imaging.Resize(img, w, 0, imaging.Lanczos)
		if err := imaging.Encode(&buf, thumb, format); err != nil {
			return fmt.Errorf("failed to encode %dpx thumbnail, %w", w, err)
		}

		if err := p.blobs.Write(ctx, VariantPath(file.LocalPath, w), buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write %dpx thumbnail, %w", w, err)
		}
	}

	zap.L().Debug("Thumbnails created", zap.Uint("file_id", file.ID), zap.Ints("widths", p.widths))
	return nil
}
