package catalog

import (
	"time"
)

// Folder is a directory node in the hierarchy. The tree structure is encoded
// by ParentID (nil = root); Path is a denormalized projection of the ancestor
// chain that is kept consistent by the catalog services on every mutation.
type Folder struct {
	ID        string    `json:"id" db:"id"`
	ParentID  *string   `json:"parent_id" db:"parent_id"` // NULL = root level
	Name      string    `json:"name" db:"name"`
	Path      string    `json:"path" db:"path"` // "/Docs/Reports", stored, never trailing slash
	IsSystem  bool      `json:"is_system" db:"is_system"`
	IsHidden  bool      `json:"is_hidden" db:"is_hidden"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// FolderWithFiles pairs a folder with its direct files (one level, no recursion).
type FolderWithFiles struct {
	Folder
	Files []File `json:"files"`
}

// FolderContents is one level of a folder: direct subfolders and direct files,
// each tagged with its item type.
type FolderContents struct {
	Folders []Item `json:"folders"`
	Files   []Item `json:"files"`
}
