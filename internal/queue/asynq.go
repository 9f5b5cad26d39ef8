package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AsynqQueue enqueues jobs into redis. Asynq retries failed tasks with
// exponential backoff
type AsynqQueue struct {
	c        *asynq.Client
	maxRetry int
}

func NewAsynqQueue(opt asynq.RedisConnOpt, maxRetry int) *AsynqQueue {
	return &AsynqQueue{
		c:        asynq.NewClient(opt),
		maxRetry: maxRetry,
	}
}

func (q *AsynqQueue) enqueue(ctx context.Context, kind string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}

	info, err := q.c.EnqueueContext(ctx, asynq.NewTask(kind, payload),
		asynq.MaxRetry(q.maxRetry),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s task, %w", kind, err)
	}

	zap.L().Debug("New job enqueued", zap.String("type", kind), zap.String("task_id", info.ID))
	return nil
}

func (q *AsynqQueue) EnqueueThumbnail(ctx context.Context, j ThumbnailJob) error {
	return q.enqueue(ctx, TypeThumbnail, j)
}

func (q *AsynqQueue) EnqueueWelcome(ctx context.Context, j WelcomeJob) error {
	return q.enqueue(ctx, TypeWelcome, j)
}

func (q *AsynqQueue) Close() error {
	return q.c.Close()
}

// Worker consumes the asynq queue
type Worker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
}

func NewWorker(opt asynq.RedisConnOpt, concurrency int, h Handlers) *Worker {
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Logger:      zap.S(),
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)

			zap.L().Error("Job failed",
				zap.String("type", task.Type()),
				zap.Int("retried", retried),
				zap.Int("max_retry", maxRetry),
				zap.Error(err))
		}),
	})

	return &Worker{srv: srv, mux: NewServeMux(h)}
}

// NewServeMux routes asynq tasks to the handlers
func NewServeMux(h Handlers) *asynq.ServeMux {
	mux := asynq.NewServeMux()

	process := func(ctx context.Context, t *asynq.Task) error {
		return h.Process(ctx, t.Type(), t.Payload())
	}

	mux.HandleFunc(TypeThumbnail, process)
	mux.HandleFunc(TypeWelcome, process)

	return mux
}

// Start runs the worker in the background
func (w *Worker) Start() error {
	return w.srv.Start(w.mux)
}

func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
