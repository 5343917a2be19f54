package catalog

import (
	"context"
	"fmt"
	"strings"

	"filedex/internal/domain"
	models "filedex/internal/domain/models/catalog"
	"filedex/internal/domain/repositories"
)

// In-memory repository fakes. They preserve insertion order so list results
// are deterministic, and they return errors the same way the postgres
// implementations do (wrapping domain.ErrNotFound). The ForUpdate variants
// count their calls so tests can assert a code path took row locks, and
// failUpdateID lets a test make one Update call fail mid-batch.

type fakeFolderRepo struct {
	folders []*models.Folder

	lockedGets       int
	lockedChildLists int
	failUpdateID     string
}

func (r *fakeFolderRepo) Create(_ context.Context, folder *models.Folder) error {
	if folder.ParentID != nil {
		if r.find(*folder.ParentID) == nil {
			return fmt.Errorf("parent folder: %w", domain.ErrNotFound)
		}
	}
	cp := *folder
	r.folders = append(r.folders, &cp)
	return nil
}

func (r *fakeFolderRepo) find(id string) *models.Folder {
	for _, f := range r.folders {
		if f.ID == id {
			return f
		}
	}
	return nil
}

func (r *fakeFolderRepo) GetByID(_ context.Context, id string) (*models.Folder, error) {
	if f := r.find(id); f != nil {
		cp := *f
		return &cp, nil
	}
	return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
}

func (r *fakeFolderRepo) GetByIDForUpdate(ctx context.Context, id string) (*models.Folder, error) {
	r.lockedGets++
	return r.GetByID(ctx, id)
}

func (r *fakeFolderRepo) GetByName(_ context.Context, parentID *string, name string) (*models.Folder, error) {
	for _, f := range r.folders {
		if sameParent(f.ParentID, parentID) && f.Name == name {
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeFolderRepo) Update(_ context.Context, folder *models.Folder) error {
	if r.failUpdateID != "" && folder.ID == r.failUpdateID {
		return fmt.Errorf("update folder: %w", errInjected)
	}
	existing := r.find(folder.ID)
	if existing == nil {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}
	*existing = *folder
	return nil
}

func (r *fakeFolderRepo) Delete(_ context.Context, id string) error {
	for i, f := range r.folders {
		if f.ID == id {
			r.folders = append(r.folders[:i], r.folders[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
}

func (r *fakeFolderRepo) DeleteMany(_ context.Context, ids []string) (int, error) {
	count := 0
	for _, id := range ids {
		for i, f := range r.folders {
			if f.ID == id {
				r.folders = append(r.folders[:i], r.folders[i+1:]...)
				count++
				break
			}
		}
	}
	return count, nil
}

func (r *fakeFolderRepo) ListChildren(_ context.Context, parentID *string) ([]models.Folder, error) {
	var out []models.Folder
	for _, f := range r.folders {
		if sameParent(f.ParentID, parentID) {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) ListChildrenForUpdate(ctx context.Context, parentID *string) ([]models.Folder, error) {
	r.lockedChildLists++
	return r.ListChildren(ctx, parentID)
}

func (r *fakeFolderRepo) ListAll(_ context.Context) ([]models.Folder, error) {
	out := make([]models.Folder, 0, len(r.folders))
	for _, f := range r.folders {
		out = append(out, *f)
	}
	return out, nil
}

func (r *fakeFolderRepo) SearchByName(_ context.Context, term string) ([]models.Folder, error) {
	var out []models.Folder
	for _, f := range r.folders {
		if strings.Contains(strings.ToLower(f.Name), strings.ToLower(term)) {
			out = append(out, *f)
		}
	}
	return out, nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

type fakeFileRepo struct {
	files []*models.File

	lockedFolderLists int
	failUpdateID      string
}

func (r *fakeFileRepo) Create(_ context.Context, file *models.File) error {
	cp := *file
	r.files = append(r.files, &cp)
	return nil
}

func (r *fakeFileRepo) CreateMany(_ context.Context, files []*models.File) (int, error) {
	for _, f := range files {
		cp := *f
		r.files = append(r.files, &cp)
	}
	return len(files), nil
}

func (r *fakeFileRepo) find(id string) *models.File {
	for _, f := range r.files {
		if f.ID == id {
			return f
		}
	}
	return nil
}

func (r *fakeFileRepo) GetByID(_ context.Context, id string) (*models.File, error) {
	if f := r.find(id); f != nil {
		cp := *f
		return &cp, nil
	}
	return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
}

func (r *fakeFileRepo) Update(_ context.Context, file *models.File) error {
	if r.failUpdateID != "" && file.ID == r.failUpdateID {
		return fmt.Errorf("update file: %w", errInjected)
	}
	existing := r.find(file.ID)
	if existing == nil {
		return fmt.Errorf("file %s: %w", file.ID, domain.ErrNotFound)
	}
	*existing = *file
	return nil
}

func (r *fakeFileRepo) Delete(_ context.Context, id string) error {
	for i, f := range r.files {
		if f.ID == id {
			r.files = append(r.files[:i], r.files[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
}

func (r *fakeFileRepo) DeleteMany(_ context.Context, ids []string) (int, error) {
	count := 0
	for _, id := range ids {
		for i, f := range r.files {
			if f.ID == id {
				r.files = append(r.files[:i], r.files[i+1:]...)
				count++
				break
			}
		}
	}
	return count, nil
}

func (r *fakeFileRepo) DeleteByFolders(_ context.Context, folderIDs []string) (int, error) {
	inSet := func(id string) bool {
		for _, fid := range folderIDs {
			if fid == id {
				return true
			}
		}
		return false
	}

	count := 0
	kept := r.files[:0]
	for _, f := range r.files {
		if inSet(f.FolderID) {
			count++
			continue
		}
		kept = append(kept, f)
	}
	r.files = kept
	return count, nil
}

func (r *fakeFileRepo) ListByFolder(_ context.Context, folderID string) ([]models.File, error) {
	var out []models.File
	for _, f := range r.files {
		if f.FolderID == folderID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) ListByFolderForUpdate(ctx context.Context, folderID string) ([]models.File, error) {
	r.lockedFolderLists++
	return r.ListByFolder(ctx, folderID)
}

func (r *fakeFileRepo) ListAll(_ context.Context) ([]models.File, error) {
	out := make([]models.File, 0, len(r.files))
	for _, f := range r.files {
		out = append(out, *f)
	}
	return out, nil
}

func (r *fakeFileRepo) SearchByName(_ context.Context, term string) ([]models.File, error) {
	var out []models.File
	for _, f := range r.files {
		if strings.Contains(strings.ToLower(f.Name), strings.ToLower(term)) {
			out = append(out, *f)
		}
	}
	return out, nil
}

// fakeTxManager runs the function directly; the fakes have no transactions
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// errInjected stands in for a database failure in rollback tests.
var errInjected = fmt.Errorf("injected failure")

// snapshotTxManager gives the fakes rollback semantics: it snapshots both
// repositories before running the function and restores them when it fails,
// mirroring what a real transaction does on ROLLBACK.
type snapshotTxManager struct {
	folders *fakeFolderRepo
	files   *fakeFileRepo
}

func (m snapshotTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	folderSnap := snapshotFolders(m.folders.folders)
	fileSnap := snapshotFiles(m.files.files)

	if err := fn(ctx); err != nil {
		m.folders.folders = folderSnap
		m.files.files = fileSnap
		return err
	}
	return nil
}

func snapshotFolders(folders []*models.Folder) []*models.Folder {
	out := make([]*models.Folder, len(folders))
	for i, f := range folders {
		cp := *f
		out[i] = &cp
	}
	return out
}

func snapshotFiles(files []*models.File) []*models.File {
	out := make([]*models.File, len(files))
	for i, f := range files {
		cp := *f
		out[i] = &cp
	}
	return out
}
