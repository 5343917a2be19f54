package catalog

import (
	"time"
)

// File is a leaf node referencing stored bytes. Path is the logical position
// in the tree; PhysicalPath is where the bytes actually live (set by the
// upload pipeline) and is independent of the logical path.
type File struct {
	ID           string    `json:"id" db:"id"`
	FolderID     string    `json:"folder_id" db:"folder_id"`
	Name         string    `json:"name" db:"name"`
	Path         string    `json:"path" db:"path"`
	MimeType     *string   `json:"mime_type,omitempty" db:"mime_type"`
	Size         int64     `json:"size" db:"size"`
	PhysicalPath *string   `json:"physical_path,omitempty" db:"physical_path"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Basename returns the leaf token used for the file's logical path: the last
// segment of PhysicalPath when the upload pipeline assigned an on-disk name,
// otherwise the display name.
func (f *File) Basename() string {
	if f.PhysicalPath == nil || *f.PhysicalPath == "" {
		return f.Name
	}
	p := *f.PhysicalPath
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			return p[i+1:]
		}
	}
	return p
}
