package queue

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlersProcess(t *testing.T) {
	ctx := context.Background()

	var got ThumbnailJob
	h := Handlers{
		Thumbnail: func(_ context.Context, j ThumbnailJob) error {
			got = j
			return nil
		},
	}

	require.NoError(t, h.Process(ctx, TypeThumbnail, []byte(`{"fileId":3,"userId":9}`)))
	assert.Equal(t, ThumbnailJob{FileID: 3, UserID: 9}, got)

	assert.ErrorContains(t, h.Process(ctx, TypeThumbnail, []byte(`{"userId":9}`)), "missing fileId")
	assert.ErrorContains(t, h.Process(ctx, TypeThumbnail, []byte(`{"fileId":3}`)), "missing userId")
	assert.Error(t, h.Process(ctx, TypeThumbnail, []byte(`not json`)))
	assert.Error(t, h.Process(ctx, "nope", []byte(`{}`)))

	// Registered type without a handler
	assert.Error(t, h.Process(ctx, TypeWelcome, []byte(`{"userId":1}`)))
}

func TestJobQueueRunsJobs(t *testing.T) {
	var mu sync.Mutex
	seen := []uint{}

	q := NewJobQueue(2, 16, 0, Handlers{
		Thumbnail: func(_ context.Context, j ThumbnailJob) error {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, j.FileID)
			return nil
		},
		Welcome: func(context.Context, WelcomeJob) error { return nil },
	})
	q.StartWorkerPool()
	defer q.Stop()

	for i := uint(1); i <= 5; i++ {
		require.NoError(t, q.EnqueueThumbnail(context.Background(), ThumbnailJob{FileID: i, UserID: 1}))
	}
	require.NoError(t, q.EnqueueWelcome(context.Background(), WelcomeJob{UserID: 1}))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 5 && q.Running() == 0
	}, 2*time.Second, 10*time.Millisecond)

	assert.ElementsMatch(t, []uint{1, 2, 3, 4, 5}, seen)
}

func TestJobQueueRetries(t *testing.T) {
	var calls atomic.Int32

	q := NewJobQueue(1, 4, 3, Handlers{
		Thumbnail: func(context.Context, ThumbnailJob) error {
			if calls.Add(1) < 3 {
				return errors.New("not yet")
			}
			return nil
		},
	})
	q.RetryDelay = 5 * time.Millisecond
	q.StartWorkerPool()
	defer q.Stop()

	require.NoError(t, q.EnqueueThumbnail(context.Background(), ThumbnailJob{FileID: 1, UserID: 1}))

	assert.Eventually(t, func() bool {
		return calls.Load() == 3 && q.Running() == 0
	}, 2*time.Second, 5*time.Millisecond)
}

func TestJobQueueGivesUp(t *testing.T) {
	var calls atomic.Int32

	q := NewJobQueue(1, 4, 2, Handlers{
		Thumbnail: func(context.Context, ThumbnailJob) error {
			calls.Add(1)
			return errors.New("always")
		},
	})
	q.RetryDelay = time.Millisecond
	q.StartWorkerPool()
	defer q.Stop()

	require.NoError(t, q.EnqueueThumbnail(context.Background(), ThumbnailJob{FileID: 1, UserID: 1}))

	assert.Eventually(t, func() bool {
		return q.Running() == 0
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(3), calls.Load())
}

func TestJobQueueFull(t *testing.T) {
	// No workers, nothing drains the buffer
	q := NewJobQueue(0, 1, 0, Handlers{})
	defer q.Stop()

	require.NoError(t, q.EnqueueThumbnail(context.Background(), ThumbnailJob{FileID: 1, UserID: 1}))
	assert.ErrorIs(t, q.EnqueueThumbnail(context.Background(), ThumbnailJob{FileID: 2, UserID: 1}), ErrQueueFull)
	assert.Equal(t, int32(1), q.Running())
}

func TestJobQueueClosed(t *testing.T) {
	q := NewJobQueue(1, 1, 0, Handlers{})
	q.StartWorkerPool()
	q.Stop()

	assert.ErrorIs(t, q.EnqueueWelcome(context.Background(), WelcomeJob{UserID: 1}), ErrQueueClosed)
}

func TestAsynqRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR env not set")
	}

	opt := asynq.RedisClientOpt{Addr: addr}
	done := make(chan WelcomeJob, 1)

	w := NewWorker(opt, 1, Handlers{
		Welcome: func(_ context.Context, j WelcomeJob) error {
			done <- j
			return nil
		},
	})
	require.NoError(t, w.Start())
	defer w.Shutdown()

	q := NewAsynqQueue(opt, 1)
	defer q.Close()

	require.NoError(t, q.EnqueueWelcome(context.Background(), WelcomeJob{UserID: 77}))

	select {
	case j := <-done:
		assert.Equal(t, uint(77), j.UserID)
	case <-time.After(10 * time.Second):
		t.Fatal("welcome job was not processed")
	}
}
