package catalog

import (
	"context"

	"filedex/internal/domain/models/catalog"
	"filedex/internal/httputil"
)

// FileService handles file business logic. Creation is fail-fast on a missing
// folder: a file can never exist without one.
type FileService interface {
	// CreateFile creates a file inside an existing folder, deriving its path
	// from the folder path and the on-disk basename
	CreateFile(ctx context.Context, req *CreateFileRequest) (*catalog.File, error)

	// GetFile retrieves a file by ID
	GetFile(ctx context.Context, id string) (*catalog.File, error)

	// ListFiles retrieves all files (flat list)
	ListFiles(ctx context.Context) ([]catalog.File, error)

	// ListFilesByFolder lists the direct files of a folder
	ListFilesByFolder(ctx context.Context, folderID string) ([]catalog.File, error)

	// UpdateFile patches name/mime type/size, recomputing the path from the
	// file's folder when the name changes
	UpdateFile(ctx context.Context, id string, req *UpdateFileRequest) (*catalog.File, error)

	// DeleteFile removes the row and best-effort removes the stored bytes,
	// returning the deleted file
	DeleteFile(ctx context.Context, id string) (*catalog.File, error)

	// SearchFiles performs a case-insensitive substring search on names
	SearchFiles(ctx context.Context, term string) ([]catalog.File, error)

	// CreateBulkFiles creates files item by item; items whose folder does not
	// exist are dropped and reported as such
	CreateBulkFiles(ctx context.Context, items []CreateFileRequest) (*catalog.BulkResult, error)

	// UpdateBulkFiles patches files atomically: all updates commit or none
	UpdateBulkFiles(ctx context.Context, items []BulkUpdateFileItem) (*catalog.BulkResult, error)

	// DeleteBulkFiles deletes the given files
	DeleteBulkFiles(ctx context.Context, ids []string) (*catalog.BulkResult, error)
}

// CreateFileRequest represents a file creation request
type CreateFileRequest struct {
	Name         string  `json:"name"`
	FolderID     string  `json:"folder_id"`
	MimeType     *string `json:"mime_type,omitempty"`
	Size         *int64  `json:"size,omitempty"` // defaults to 0
	PhysicalPath *string `json:"physical_path,omitempty"`
}

// UpdateFileRequest represents a file patch.
// MimeType uses tri-state semantics so a client can clear it with null.
type UpdateFileRequest struct {
	Name     *string                 `json:"name,omitempty"`
	MimeType httputil.OptionalString `json:"mime_type,omitempty"`
	Size     *int64                  `json:"size,omitempty"`
}

// BulkUpdateFileItem is one patch in a bulk file update
type BulkUpdateFileItem struct {
	ID       string  `json:"id"`
	Name     *string `json:"name,omitempty"`
	MimeType *string `json:"mime_type,omitempty"`
	Size     *int64  `json:"size,omitempty"`
}
