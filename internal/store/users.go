package store

import (
	"bitwise74/files-api/internal/model"
	"context"

	"gorm.io/gorm"
)

type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (u *Users) Create(ctx context.Context, user *model.User) error {
	return u.db.WithContext(ctx).Create(user).Error
}

func (u *Users) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User

	err := u.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).
		Error
	if err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (u *Users) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	err := u.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).
		Error
	if err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (u *Users) Exists(ctx context.Context, email string) (bool, error) {
	var n int64

	err := u.db.WithContext(ctx).
		Model(model.User{}).
		Where("email = ?", email).
		Count(&n).
		Error

	return n > 0, err
}

func (u *Users) Count(ctx context.Context) (int64, error) {
	var n int64
	err := u.db.WithContext(ctx).Model(model.User{}).Count(&n).Error
	return n, err
}
