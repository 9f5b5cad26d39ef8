package service

import (
	"bitwise74/files-api/internal/model"
	"context"
)

// UserRepo is the part of the user store the services need
type UserRepo interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Exists(ctx context.Context, email string) (bool, error)
}

// FileRepo is the part of the file store the services need
type FileRepo interface {
	Create(ctx context.Context, file *model.File) error
	FindByID(ctx context.Context, id uint) (*model.File, error)
	FindOwned(ctx context.Context, id, userID uint) (*model.File, error)
	ListByParent(ctx context.Context, userID, parentID uint, offset, limit int) ([]model.File, error)
	SetPublic(ctx context.Context, id, userID uint, public bool) (*model.File, error)
}
