package service

import (
	"bitwise74/files-api/db"
	"bitwise74/files-api/internal/blob"
	"bitwise74/files-api/internal/model"
	"bitwise74/files-api/internal/queue"
	"bitwise74/files-api/internal/session"
	"bitwise74/files-api/internal/store"
	"bitwise74/files-api/pkg/security"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	mu       sync.Mutex
	thumbs   []queue.ThumbnailJob
	welcomes []queue.WelcomeJob
	err      error
}

func (q *fakeQueue) EnqueueThumbnail(_ context.Context, j queue.ThumbnailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.err != nil {
		return q.err
	}
	q.thumbs = append(q.thumbs, j)
	return nil
}

func (q *fakeQueue) EnqueueWelcome(_ context.Context, j queue.WelcomeJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.err != nil {
		return q.err
	}
	q.welcomes = append(q.welcomes, j)
	return nil
}

// failingBlobs fails every write
type failingBlobs struct {
	blob.Store
}

func (failingBlobs) Write(context.Context, string, []byte) error {
	return errors.New("disk full")
}

// failingCreate fails every insert
type failingCreate struct {
	FileRepo
}

func (failingCreate) Create(context.Context, *model.File) error {
	return errors.New("db down")
}

type env struct {
	users    *store.Users
	files    *store.Files
	sessions *session.MemoryStore
	blobs    *blob.LocalStore
	queue    *fakeQueue

	gate     *Gate
	fm       *FileManager
	accounts *UserService
}

func testArgon() *security.ArgonHash {
	return &security.ArgonHash{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func newEnv(t *testing.T) *env {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	d, err := db.New("sqlite", fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := d.DB(); err == nil {
			sqlDB.Close()
		}
	})

	blobs, err := blob.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	sessions := session.NewMemoryStore()
	t.Cleanup(func() { sessions.Close() })

	e := &env{
		users:    store.NewUsers(d),
		files:    store.NewFiles(d),
		sessions: sessions,
		blobs:    blobs,
		queue:    &fakeQueue{},
	}

	argon := testArgon()
	e.gate = NewGate(e.users, sessions, argon, 0)
	e.fm = NewFileManager(e.files, blobs, e.queue)
	e.accounts = NewUserService(e.users, argon, e.queue)

	return e
}

// register creates a user and returns its ID
func (e *env) register(t *testing.T, email string) uint {
	t.Helper()

	u, err := e.accounts.Register(context.Background(), email, "secret")
	require.NoError(t, err)
	return u.ID
}
