// Package queue carries background jobs from the request handlers to the
// workers. Delivery is at least once, so handlers must be idempotent
package queue

import (
	"bitwise74/files-api/pkg/metrics"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	TypeThumbnail = "file:thumbnail"
	TypeWelcome   = "user:welcome"
)

var (
	ErrQueueFull   = errors.New("job queue full")
	ErrQueueClosed = errors.New("job queue closed")
)

// ThumbnailJob asks for the resized variants of an uploaded file
type ThumbnailJob struct {
	FileID uint `json:"fileId"`
	UserID uint `json:"userId"`
}

// WelcomeJob is sent once per registered user
type WelcomeJob struct {
	UserID uint `json:"userId"`
}

// Enqueuer hands jobs over to a queue. None of the methods wait for the job
// to run
type Enqueuer interface {
	EnqueueThumbnail(ctx context.Context, j ThumbnailJob) error
	EnqueueWelcome(ctx context.Context, j WelcomeJob) error
}

// Handlers are the functions that run the jobs on the worker side
type Handlers struct {
	Thumbnail func(context.Context, ThumbnailJob) error
	Welcome   func(context.Context, WelcomeJob) error
}

// Process decodes payload according to kind and runs the matching handler
func (h Handlers) Process(ctx context.Context, kind string, payload []byte) (err error) {
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		metrics.Jobs.WithLabelValues(kind, result).Inc()
	}()

	switch kind {
	case TypeThumbnail:
		var j ThumbnailJob
		if err := decode(payload, &j); err != nil {
			return err
		}

		if j.FileID == 0 {
			return errors.New("missing fileId")
		}
		if j.UserID == 0 {
			return errors.New("missing userId")
		}

		if h.Thumbnail == nil {
			return fmt.Errorf("no handler registered for %s", kind)
		}
		return h.Thumbnail(ctx, j)
	case TypeWelcome:
		var j WelcomeJob
		if err := decode(payload, &j); err != nil {
			return err
		}

		if j.UserID == 0 {
			return errors.New("missing userId")
		}

		if h.Welcome == nil {
			return fmt.Errorf("no handler registered for %s", kind)
		}
		return h.Welcome(ctx, j)
	}

	return fmt.Errorf("unknown job type %q", kind)
}

func decode(payload []byte, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("failed to decode job payload, %w", err)
	}

	return nil
}
