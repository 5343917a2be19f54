package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalStorage stores bytes on the local filesystem under a base directory,
// sharded into year/month subdirectories. Saved files get a
// "name-timestamp-random.ext" basename so concurrent uploads of the same
// original name never collide.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage creates the base directory if needed and returns a
// filesystem-backed storage.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// Save writes the bytes under uploads/<year>/<month>/<assigned-name>.
func (s *LocalStorage) Save(ctx context.Context, originalName, mimeType string, r io.Reader, size int64) (*Object, error) {
	now := time.Now()
	subdir := filepath.Join(fmt.Sprintf("%d", now.Year()), fmt.Sprintf("%d", int(now.Month())))

	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload subdirectory: %w", err)
	}

	basename := AssignBasename(originalName, now)
	target := filepath.Join(dir, basename)

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}

	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(target)
		return nil, fmt.Errorf("write upload file: %w", err)
	}

	return &Object{
		Basename:     basename,
		PhysicalPath: path.Join(filepath.ToSlash(subdir), basename),
		Size:         written,
		MimeType:     mimeType,
	}, nil
}

// Remove deletes the bytes at physicalPath; already-gone bytes are fine.
func (s *LocalStorage) Remove(ctx context.Context, physicalPath string) error {
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(physicalPath)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove stored bytes: %w", err)
	}
	return nil
}

// AssignBasename derives the collision-proof on-disk name
// "original-timestamp-random.ext" from the uploaded name.
func AssignBasename(originalName string, now time.Time) string {
	lower := strings.ToLower(originalName)
	ext := path.Ext(lower)
	stem := strings.TrimSuffix(lower, ext)
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s-%d-%s%s", stem, now.UnixMilli(), random, ext)
}
