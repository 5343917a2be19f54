package catalog

import (
	"context"

	"filedex/internal/domain/models/catalog"
)

// FileRepository defines data access operations for files
type FileRepository interface {
	// Create inserts a new file
	Create(ctx context.Context, file *catalog.File) error

	// CreateMany inserts files in one batch, returning the number inserted
	CreateMany(ctx context.Context, files []*catalog.File) (int, error)

	// GetByID retrieves a file by ID
	GetByID(ctx context.Context, id string) (*catalog.File, error)

	// Update persists mutable file fields (name, path, mime type, size)
	Update(ctx context.Context, file *catalog.File) error

	// Delete removes a file row
	Delete(ctx context.Context, id string) error

	// DeleteMany removes file rows by id, returning the number deleted
	DeleteMany(ctx context.Context, ids []string) (int, error)

	// DeleteByFolders removes every file belonging to the given folders,
	// returning the number deleted
	DeleteByFolders(ctx context.Context, folderIDs []string) (int, error)

	// ListByFolder lists the direct files of a folder
	ListByFolder(ctx context.Context, folderID string) ([]catalog.File, error)

	// ListByFolderForUpdate lists the direct files of a folder with their
	// rows locked for the surrounding transaction. Must run inside a
	// transaction.
	ListByFolderForUpdate(ctx context.Context, folderID string) ([]catalog.File, error)

	// ListAll retrieves every file (flat list)
	ListAll(ctx context.Context) ([]catalog.File, error)

	// SearchByName performs a case-insensitive substring match on file names
	SearchByName(ctx context.Context, term string) ([]catalog.File, error)
}
