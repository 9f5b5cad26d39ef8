// Package model defines database models
package model

// FileType is the kind of entry stored in the tree
type FileType string

const (
	TypeFile   FileType = "file"
	TypeFolder FileType = "folder"
	TypeImage  FileType = "image"
)

// RootID is the parent of every top level entry
const RootID uint = 0

// Valid reports whether t is one of the recognized kinds
func (t FileType) Valid() bool {
	switch t {
	case TypeFile, TypeFolder, TypeImage:
		return true
	}

	return false
}

// HasContent reports whether entries of this kind are backed by a blob
func (t FileType) HasContent() bool {
	return t == TypeFile || t == TypeImage
}

type File struct {
	ID       uint     `gorm:"primaryKey;autoIncrement"`
	UserID   uint     `gorm:"index:idx_files_owner_parent;not null"`
	ParentID uint     `gorm:"index:idx_files_owner_parent;not null;default:0"`
	Name     string   `gorm:"not null"`
	Type     FileType `gorm:"size:16;not null"`
	IsPublic bool     `gorm:"not null;default:false"`
	// Empty for folders. Thumbnails live next to it as <LocalPath>_<width>
	LocalPath string
}

// FileView is the public representation of a File. The blob path is never
// exposed
type FileView struct {
	ID       uint     `json:"id"`
	UserID   uint     `json:"userId"`
	Name     string   `json:"name"`
	Type     FileType `json:"type"`
	IsPublic bool     `json:"isPublic"`
	ParentID uint     `json:"parentId"`
}

func (f *File) View() FileView {
	return FileView{
		ID:       f.ID,
		UserID:   f.UserID,
		Name:     f.Name,
		Type:     f.Type,
		IsPublic: f.IsPublic,
		ParentID: f.ParentID,
	}
}

// Views converts a slice of files, never returning nil
func Views(files []File) []FileView {
	out := make([]FileView, 0, len(files))
	for i := range files {
		out = append(out, files[i].View())
	}

	return out
}
