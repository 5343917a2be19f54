package catalog

import (
	"context"

	"filedex/internal/domain/models/catalog"
	"filedex/internal/httputil"
)

// FolderService handles folder business logic: path derivation at creation,
// descendant path repair on rename/move, and recursive cascade on delete.
type FolderService interface {
	// CreateFolder creates a new folder, deriving its path from the parent
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*catalog.Folder, error)

	// GetFolder retrieves a folder with its direct subfolders and files
	GetFolder(ctx context.Context, id string) (*FolderDetail, error)

	// ListFolders retrieves all folders (flat list)
	ListFolders(ctx context.Context) ([]catalog.Folder, error)

	// UpdateFolder renames and/or moves a folder, repairing every descendant
	// path in the same transaction
	UpdateFolder(ctx context.Context, id string, req *UpdateFolderRequest) (*catalog.Folder, error)

	// DeleteFolder deletes a folder and its whole subtree, returning the
	// deleted folder
	DeleteFolder(ctx context.Context, id string) (*catalog.Folder, error)

	// GetDirectSubfolders lists folders whose parent is id, each with its
	// direct files (one level, non-recursive)
	GetDirectSubfolders(ctx context.Context, id string) ([]catalog.FolderWithFiles, error)

	// GetFolderContents lists one level of a folder as type-tagged items
	GetFolderContents(ctx context.Context, id string) (*catalog.FolderContents, error)

	// GetFolderByPath resolves a "/"-separated path segment by segment from
	// the root. Returns nil, nil when no folder matches.
	GetFolderByPath(ctx context.Context, path string) (*catalog.Folder, error)

	// SearchFolders performs a case-insensitive substring search on names
	SearchFolders(ctx context.Context, term string) ([]catalog.Folder, error)

	// CreateBulkFolders creates folders item by item; items whose parent does
	// not exist are created at the root and reported as such
	CreateBulkFolders(ctx context.Context, items []CreateFolderRequest) (*catalog.BulkResult, error)

	// UpdateBulkFolders renames folders atomically: all updates commit or none
	UpdateBulkFolders(ctx context.Context, items []BulkUpdateFolderItem) (*catalog.BulkResult, error)

	// DeleteBulkFolders deletes the given folders and their files
	DeleteBulkFolders(ctx context.Context, ids []string) (*catalog.BulkResult, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"`
	IsSystem bool    `json:"is_system,omitempty"`
	IsHidden bool    `json:"is_hidden,omitempty"`
}

// UpdateFolderRequest represents a folder update request.
// ParentID uses tri-state semantics: absent = keep, null = move to root,
// value = move under that folder.
type UpdateFolderRequest struct {
	Name     *string                 `json:"name,omitempty"`
	ParentID httputil.OptionalString `json:"parent_id,omitempty"`
	IsSystem *bool                   `json:"is_system,omitempty"`
	IsHidden *bool                   `json:"is_hidden,omitempty"`
}

// BulkUpdateFolderItem is one rename in a bulk folder update
type BulkUpdateFolderItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FolderDetail is a folder with its immediate children loaded
type FolderDetail struct {
	catalog.Folder
	Subfolders []catalog.Folder `json:"subfolders"`
	Files      []catalog.File   `json:"files"`
}
