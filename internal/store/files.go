package store

import (
	"bitwise74/files-api/internal/model"
	"context"

	"gorm.io/gorm"
)

type Files struct {
	db *gorm.DB
}

func NewFiles(db *gorm.DB) *Files {
	return &Files{db: db}
}

func (f *Files) Create(ctx context.Context, file *model.File) error {
	return f.db.WithContext(ctx).Create(file).Error
}

func (f *Files) FindByID(ctx context.Context, id uint) (*model.File, error) {
	var file model.File

	err := f.db.WithContext(ctx).
		Where("id = ?", id).
		First(&file).
		Error
	if err != nil {
		return nil, translate(err)
	}

	return &file, nil
}

// FindOwned only matches a file that belongs to userID
func (f *Files) FindOwned(ctx context.Context, id, userID uint) (*model.File, error) {
	var file model.File

	err := f.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&file).
		Error
	if err != nil {
		return nil, translate(err)
	}

	return &file, nil
}

// ListByParent returns the user's files under parentID in insertion order
func (f *Files) ListByParent(ctx context.Context, userID, parentID uint, offset, limit int) ([]model.File, error) {
	files := []model.File{}

	err := f.db.WithContext(ctx).
		Where("user_id = ? AND parent_id = ?", userID, parentID).
		Order("id asc").
		Offset(offset).
		Limit(limit).
		Find(&files).
		Error

	return files, err
}

// SetPublic updates the visibility of a file owned by userID and returns the
// stored record
func (f *Files) SetPublic(ctx context.Context, id, userID uint, public bool) (*model.File, error) {
	var file model.File

	err := f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("id = ? AND user_id = ?", id, userID).
			First(&file).
			Error; err != nil {
			return err
		}

		return tx.
			Model(&file).
			Update("is_public", public).
			Error
	})
	if err != nil {
		return nil, translate(err)
	}

	file.IsPublic = public

	return &file, nil
}

func (f *Files) Count(ctx context.Context) (int64, error) {
	var n int64
	err := f.db.WithContext(ctx).Model(model.File{}).Count(&n).Error
	return n, err
}
