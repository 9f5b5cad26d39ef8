package queue

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

type job struct {
	kind    string
	payload []byte
	attempt int
}

// JobQueue is an in process queue with a fixed worker pool. Jobs are lost
// on restart, use the asynq queue when that matters
type JobQueue struct {
	jobs     chan *job
	handlers Handlers
	running  atomic.Int32
	workers  int
	maxRetry int
	// RetryDelay is multiplied by the attempt number
	RetryDelay time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewJobQueue initializes a new job queue that limits the
// max amount of jobs that can be queued at once
func NewJobQueue(workers, size, maxRetry int, h Handlers) *JobQueue {
	zap.L().Debug("Initializing job queue", zap.Int("max_jobs", size), zap.Int("workers", workers))

	ctx, cancel := context.WithCancel(context.Background())

	return &JobQueue{
		jobs:       make(chan *job, size),
		handlers:   h,
		workers:    workers,
		maxRetry:   maxRetry,
		RetryDelay: time.Second,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (q *JobQueue) StartWorkerPool() {
	for range q.workers {
		q.wg.Add(1)
		go q.worker()
	}
}

// Stop signals the workers and waits for the running jobs to return. Queued
// jobs are dropped
func (q *JobQueue) Stop() {
	q.cancel()
	q.wg.Wait()
}

// Running returns the amount of jobs that are queued or being processed
func (q *JobQueue) Running() int32 {
	return q.running.Load()
}

func (q *JobQueue) worker() {
	defer q.wg.Done()

	for {
		select {
		case <-q.ctx.Done():
			return
		case j := <-q.jobs:
			q.run(j)
		}
	}
}

func (q *JobQueue) run(j *job) {
	err := q.handlers.Process(q.ctx, j.kind, j.payload)
	if err == nil {
		q.running.Add(-1)
		zap.L().Debug("Job finished successfully", zap.String("type", j.kind))
		return
	}

	if j.attempt >= q.maxRetry || q.ctx.Err() != nil {
		q.running.Add(-1)
		zap.L().Error("Job failed, giving up",
			zap.String("type", j.kind),
			zap.Int("attempt", j.attempt+1),
			zap.Error(err))
		return
	}

	j.attempt++
	delay := q.RetryDelay * time.Duration(j.attempt)

	zap.L().Warn("Job failed, retrying",
		zap.String("type", j.kind),
		zap.Int("attempt", j.attempt),
		zap.Duration("in", delay),
		zap.Error(err))

	time.AfterFunc(delay, func() {
		select {
		case <-q.ctx.Done():
		case q.jobs <- j:
			return
		default:
			zap.L().Error("Job queue full, dropping retry", zap.String("type", j.kind))
		}

		q.running.Add(-1)
	})
}

func (q *JobQueue) enqueue(kind string, v any) error {
	if q.ctx.Err() != nil {
		return ErrQueueClosed
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}

	q.running.Add(1)

	select {
	case q.jobs <- &job{kind: kind, payload: payload}:
		zap.L().Debug("New job enqueued", zap.String("type", kind), zap.Int32("enqueued", q.running.Load()))
		return nil
	default:
		q.running.Add(-1)
		return ErrQueueFull
	}
}

func (q *JobQueue) EnqueueThumbnail(_ context.Context, j ThumbnailJob) error {
	return q.enqueue(TypeThumbnail, j)
}

func (q *JobQueue) EnqueueWelcome(_ context.Context, j WelcomeJob) error {
	return q.enqueue(TypeWelcome, j)
}
