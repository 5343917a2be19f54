package storage

import (
	"context"
	"io"
)

// Object describes stored bytes after a successful save.
type Object struct {
	// Basename is the collision-proof name assigned on disk, which becomes
	// the leaf token of the file's logical path.
	Basename string
	// PhysicalPath locates the bytes inside the backend (relative key),
	// independent of the logical catalog path.
	PhysicalPath string
	Size         int64
	MimeType     string
}

// Storage is the physical byte store behind the catalog. The catalog only
// records physical paths; everything about layout and naming lives here.
type Storage interface {
	// Save writes the bytes under a collision-proof name and returns where
	// they ended up.
	Save(ctx context.Context, originalName, mimeType string, r io.Reader, size int64) (*Object, error)

	// Remove deletes the bytes at physicalPath. Missing bytes are not an
	// error: the logical delete already happened and must stand.
	Remove(ctx context.Context, physicalPath string) error
}
