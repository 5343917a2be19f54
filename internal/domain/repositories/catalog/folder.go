package catalog

import (
	"context"

	"filedex/internal/domain/models/catalog"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create inserts a new folder
	Create(ctx context.Context, folder *catalog.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id string) (*catalog.Folder, error)

	// GetByIDForUpdate retrieves a folder by ID and locks its row for the
	// duration of the surrounding transaction. Must run inside a transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*catalog.Folder, error)

	// GetByName retrieves a folder by exact name under the given parent
	// (nil parent = root level). Returns nil, nil when no folder matches.
	GetByName(ctx context.Context, parentID *string, name string) (*catalog.Folder, error)

	// Update persists name, path and parent of a folder
	Update(ctx context.Context, folder *catalog.Folder) error

	// Delete removes a folder row; descendant rows go with it via the
	// schema-level ON DELETE CASCADE
	Delete(ctx context.Context, id string) error

	// DeleteMany removes folder rows by id, returning the number deleted
	DeleteMany(ctx context.Context, ids []string) (int, error)

	// ListChildren lists immediate child folders (nil = root folders)
	ListChildren(ctx context.Context, parentID *string) ([]catalog.Folder, error)

	// ListChildrenForUpdate lists immediate child folders with their rows
	// locked for the surrounding transaction. Must run inside a transaction.
	ListChildrenForUpdate(ctx context.Context, parentID *string) ([]catalog.Folder, error)

	// ListAll retrieves every folder (flat list)
	ListAll(ctx context.Context) ([]catalog.Folder, error)

	// SearchByName performs a case-insensitive substring match on folder names
	SearchByName(ctx context.Context, term string) ([]catalog.Folder, error)
}
