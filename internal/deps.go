package internal

import (
	"bitwise74/files-api/internal/blob"
	"bitwise74/files-api/internal/queue"
	"bitwise74/files-api/internal/service"
	"bitwise74/files-api/internal/session"
	"bitwise74/files-api/internal/store"
	"bitwise74/files-api/pkg/security"
	"time"

	"gorm.io/gorm"
)

type Deps struct {
	DB       *gorm.DB
	Users    *store.Users
	Files    *store.Files
	Sessions session.Store
	Blobs    blob.Store
	Queue    queue.Enqueuer

	Gate        *service.Gate
	FileManager *service.FileManager
	Accounts    *service.UserService
}

// Build wires the services on top of already opened stores
func Build(db *gorm.DB, sessions session.Store, blobs blob.Store, q queue.Enqueuer, sessionTTL time.Duration) *Deps {
	users := store.NewUsers(db)
	files := store.NewFiles(db)
	argon := security.New()

	return &Deps{
		DB:       db,
		Users:    users,
		Files:    files,
		Sessions: sessions,
		Blobs:    blobs,
		Queue:    q,

		Gate:        service.NewGate(users, sessions, argon, sessionTTL),
		FileManager: service.NewFileManager(files, blobs, q),
		Accounts:    service.NewUserService(users, argon, q),
	}
}

// NewHandlers returns the job handlers run by the workers
func NewHandlers(db *gorm.DB, blobs blob.Store, mail service.MailConfig) queue.Handlers {
	users := store.NewUsers(db)
	files := store.NewFiles(db)

	return queue.Handlers{
		Thumbnail: service.NewThumbnailProcessor(files, blobs).Process,
		Welcome:   service.NewWelcomeSender(users, mail).Process,
	}
}
