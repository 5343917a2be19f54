package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"filedex/internal/domain"
	models "filedex/internal/domain/models/catalog"
	catalogSvc "filedex/internal/domain/services/catalog"
	"filedex/internal/httputil"
)

func newTestFileService() (catalogSvc.FileService, *fakeFolderRepo, *fakeFileRepo) {
	folderRepo := &fakeFolderRepo{}
	fileRepo := &fakeFileRepo{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewFileService(fileRepo, folderRepo, fakeTxManager{}, nil, logger)
	return svc, folderRepo, fileRepo
}

func addFolder(repo *fakeFolderRepo, id, name, path string) {
	repo.folders = append(repo.folders, &models.Folder{ID: id, Name: name, Path: path})
}

func int64Ptr(n int64) *int64 { return &n }

func TestCreateFile(t *testing.T) {
	ctx := context.Background()

	t.Run("derives path from folder and name", func(t *testing.T) {
		svc, folderRepo, _ := newTestFileService()
		addFolder(folderRepo, "dir1", "Docs", "/Docs")

		file, err := svc.CreateFile(ctx, &catalogSvc.CreateFileRequest{
			Name:     "notes.txt",
			FolderID: "dir1",
		})
		if err != nil {
			t.Fatalf("CreateFile returned error: %v", err)
		}
		if file.Path != "/Docs/notes.txt" {
			t.Errorf("path = %q, want %q", file.Path, "/Docs/notes.txt")
		}
		if file.Size != 0 {
			t.Errorf("size = %d, want 0 default", file.Size)
		}
	})

	t.Run("physical basename wins over display name in path", func(t *testing.T) {
		svc, folderRepo, _ := newTestFileService()
		addFolder(folderRepo, "dir1", "Docs", "/Docs")

		file, err := svc.CreateFile(ctx, &catalogSvc.CreateFileRequest{
			Name:         "notes.txt",
			FolderID:     "dir1",
			PhysicalPath: strPtr("2026/8/notes-1756351000-abc123def456.txt"),
		})
		if err != nil {
			t.Fatalf("CreateFile returned error: %v", err)
		}
		want := "/Docs/notes-1756351000-abc123def456.txt"
		if file.Path != want {
			t.Errorf("path = %q, want %q", file.Path, want)
		}
		if file.Name != "notes.txt" {
			t.Errorf("display name = %q, want %q", file.Name, "notes.txt")
		}
	})

	t.Run("name is trimmed before path derivation", func(t *testing.T) {
		svc, folderRepo, _ := newTestFileService()
		addFolder(folderRepo, "dir1", "Docs", "/Docs")

		file, err := svc.CreateFile(ctx, &catalogSvc.CreateFileRequest{
			Name:     "  notes.txt  ",
			FolderID: "dir1",
		})
		if err != nil {
			t.Fatalf("CreateFile returned error: %v", err)
		}
		if file.Name != "notes.txt" {
			t.Errorf("name = %q, want %q", file.Name, "notes.txt")
		}
		if file.Path != "/Docs/notes.txt" {
			t.Errorf("path = %q, want %q", file.Path, "/Docs/notes.txt")
		}
	})

	t.Run("missing folder fails fast", func(t *testing.T) {
		svc, _, fileRepo := newTestFileService()

		_, err := svc.CreateFile(ctx, &catalogSvc.CreateFileRequest{
			Name:     "notes.txt",
			FolderID: "no-such-id",
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want not found", err)
		}
		if len(fileRepo.files) != 0 {
			t.Errorf("files created = %d, want 0", len(fileRepo.files))
		}
	})

	t.Run("invalid request is rejected", func(t *testing.T) {
		svc, folderRepo, _ := newTestFileService()
		addFolder(folderRepo, "dir1", "Docs", "/Docs")

		cases := []catalogSvc.CreateFileRequest{
			{Name: "", FolderID: "dir1"},
			{Name: "   ", FolderID: "dir1"},
			{Name: "bad/name", FolderID: "dir1"},
			{Name: "ok.txt", FolderID: ""},
			{Name: "ok.txt", FolderID: "dir1", Size: int64Ptr(-1)},
		}
		for _, req := range cases {
			if _, err := svc.CreateFile(ctx, &req); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("CreateFile(%+v) error = %v, want validation error", req, err)
			}
		}
	})
}

func TestUpdateFile(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (catalogSvc.FileService, *fakeFileRepo) {
		t.Helper()
		svc, folderRepo, fileRepo := newTestFileService()
		addFolder(folderRepo, "dir1", "Docs", "/Docs")
		mime := "text/plain"
		fileRepo.files = append(fileRepo.files, &models.File{
			ID:       "f1",
			FolderID: "dir1",
			Name:     "old.txt",
			Path:     "/Docs/old.txt",
			MimeType: &mime,
			Size:     10,
		})
		return svc, fileRepo
	}

	t.Run("rename recomputes path", func(t *testing.T) {
		svc, _ := seed(t)

		file, err := svc.UpdateFile(ctx, "f1", &catalogSvc.UpdateFileRequest{
			Name: strPtr("new.txt"),
		})
		if err != nil {
			t.Fatalf("UpdateFile returned error: %v", err)
		}
		if file.Path != "/Docs/new.txt" {
			t.Errorf("path = %q, want %q", file.Path, "/Docs/new.txt")
		}
	})

	t.Run("null mime type clears it", func(t *testing.T) {
		svc, fileRepo := seed(t)

		_, err := svc.UpdateFile(ctx, "f1", &catalogSvc.UpdateFileRequest{
			MimeType: httputil.OptionalString{Present: true, Value: nil},
		})
		if err != nil {
			t.Fatalf("UpdateFile returned error: %v", err)
		}
		stored, _ := fileRepo.GetByID(ctx, "f1")
		if stored.MimeType != nil {
			t.Errorf("mime type = %q, want nil", *stored.MimeType)
		}
	})

	t.Run("absent mime type is kept", func(t *testing.T) {
		svc, fileRepo := seed(t)

		_, err := svc.UpdateFile(ctx, "f1", &catalogSvc.UpdateFileRequest{
			Size: int64Ptr(42),
		})
		if err != nil {
			t.Fatalf("UpdateFile returned error: %v", err)
		}
		stored, _ := fileRepo.GetByID(ctx, "f1")
		if stored.MimeType == nil || *stored.MimeType != "text/plain" {
			t.Errorf("mime type = %v, want text/plain kept", stored.MimeType)
		}
		if stored.Size != 42 {
			t.Errorf("size = %d, want 42", stored.Size)
		}
	})

	t.Run("empty patch is rejected", func(t *testing.T) {
		svc, _ := seed(t)

		_, err := svc.UpdateFile(ctx, "f1", &catalogSvc.UpdateFileRequest{})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want validation error", err)
		}
	})

	t.Run("whitespace-only name is rejected", func(t *testing.T) {
		svc, fileRepo := seed(t)

		_, err := svc.UpdateFile(ctx, "f1", &catalogSvc.UpdateFileRequest{
			Name: strPtr("  \t "),
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("error = %v, want validation error", err)
		}

		stored, _ := fileRepo.GetByID(ctx, "f1")
		if stored.Name != "old.txt" || stored.Path != "/Docs/old.txt" {
			t.Errorf("file mutated: name = %q, path = %q", stored.Name, stored.Path)
		}
	})
}

func TestDeleteFile(t *testing.T) {
	ctx := context.Background()
	svc, folderRepo, fileRepo := newTestFileService()
	addFolder(folderRepo, "dir1", "Docs", "/Docs")
	fileRepo.files = append(fileRepo.files, &models.File{ID: "f1", FolderID: "dir1", Name: "a.txt"})

	deleted, err := svc.DeleteFile(ctx, "f1")
	if err != nil {
		t.Fatalf("DeleteFile returned error: %v", err)
	}
	if deleted.ID != "f1" {
		t.Errorf("deleted ID = %q, want f1", deleted.ID)
	}
	if len(fileRepo.files) != 0 {
		t.Errorf("files remaining = %d, want 0", len(fileRepo.files))
	}

	if _, err := svc.DeleteFile(ctx, "f1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete: error = %v, want not found", err)
	}
}

func TestCreateBulkFiles(t *testing.T) {
	ctx := context.Background()
	svc, folderRepo, fileRepo := newTestFileService()
	addFolder(folderRepo, "dir1", "Docs", "/Docs")

	result, err := svc.CreateBulkFiles(ctx, []catalogSvc.CreateFileRequest{
		{Name: "a.txt", FolderID: "dir1"},
		{Name: "b.txt", FolderID: "no-such-id"},
		{Name: "bad/name", FolderID: "dir1"},
		{Name: "c.txt", FolderID: "dir1"},
	})
	if err != nil {
		t.Fatalf("CreateBulkFiles returned error: %v", err)
	}

	if result.Count != 2 {
		t.Errorf("count = %d, want 2", result.Count)
	}
	if len(fileRepo.files) != 2 {
		t.Errorf("files stored = %d, want 2", len(fileRepo.files))
	}

	wantOutcomes := map[int]string{
		0: models.BulkOutcomeCreated,
		1: models.BulkOutcomeFolderNotFound,
		2: models.BulkOutcomeSkipped,
		3: models.BulkOutcomeCreated,
	}
	for _, res := range result.Results {
		if res.Outcome != wantOutcomes[res.Index] {
			t.Errorf("result[index=%d].Outcome = %q, want %q", res.Index, res.Outcome, wantOutcomes[res.Index])
		}
	}
}

func TestUpdateBulkFiles(t *testing.T) {
	ctx := context.Background()
	svc, folderRepo, fileRepo := newTestFileService()
	addFolder(folderRepo, "dir1", "Docs", "/Docs")
	fileRepo.files = append(fileRepo.files,
		&models.File{ID: "f1", FolderID: "dir1", Name: "a.txt", Path: "/Docs/a.txt"},
		&models.File{ID: "f2", FolderID: "dir1", Name: "b.txt", Path: "/Docs/b.txt"},
	)

	result, err := svc.UpdateBulkFiles(ctx, []catalogSvc.BulkUpdateFileItem{
		{ID: "f1", Name: strPtr("renamed.txt")},
		{ID: "no-such-id", Name: strPtr("x.txt")},
		{ID: "f2", Size: int64Ptr(99)},
	})
	if err != nil {
		t.Fatalf("UpdateBulkFiles returned error: %v", err)
	}

	if result.Count != 2 {
		t.Errorf("count = %d, want 2", result.Count)
	}
	if result.Results[1].Outcome != models.BulkOutcomeNotFound {
		t.Errorf("result[1].Outcome = %q, want %q", result.Results[1].Outcome, models.BulkOutcomeNotFound)
	}

	f1, _ := fileRepo.GetByID(ctx, "f1")
	if f1.Path != "/Docs/renamed.txt" {
		t.Errorf("renamed path = %q, want %q", f1.Path, "/Docs/renamed.txt")
	}
	f2, _ := fileRepo.GetByID(ctx, "f2")
	if f2.Size != 99 {
		t.Errorf("f2 size = %d, want 99", f2.Size)
	}
}

func TestUpdateBulkFilesRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	folderRepo := &fakeFolderRepo{}
	fileRepo := &fakeFileRepo{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewFileService(fileRepo, folderRepo,
		snapshotTxManager{folders: folderRepo, files: fileRepo}, nil, logger)

	addFolder(folderRepo, "dir1", "Docs", "/Docs")
	fileRepo.files = append(fileRepo.files,
		&models.File{ID: "f1", FolderID: "dir1", Name: "a.txt", Path: "/Docs/a.txt"},
		&models.File{ID: "f2", FolderID: "dir1", Name: "b.txt", Path: "/Docs/b.txt", Size: 10},
	)

	// The first patch succeeds inside the transaction, then the second fails.
	fileRepo.failUpdateID = "f2"
	result, err := svc.UpdateBulkFiles(ctx, []catalogSvc.BulkUpdateFileItem{
		{ID: "f1", Name: strPtr("renamed.txt")},
		{ID: "f2", Size: int64Ptr(99)},
	})
	if !errors.Is(err, errInjected) {
		t.Fatalf("error = %v, want the injected failure", err)
	}
	if result != nil {
		t.Fatalf("result = %+v, want nil when the transaction fails", result)
	}

	f1, err := fileRepo.GetByID(ctx, "f1")
	if err != nil {
		t.Fatalf("get f1: %v", err)
	}
	if f1.Name != "a.txt" || f1.Path != "/Docs/a.txt" {
		t.Errorf("first patch leaked: name = %q, path = %q", f1.Name, f1.Path)
	}
	f2, err := fileRepo.GetByID(ctx, "f2")
	if err != nil {
		t.Fatalf("get f2: %v", err)
	}
	if f2.Size != 10 {
		t.Errorf("f2 size = %d, want 10 untouched", f2.Size)
	}
}

func TestDeleteBulkFiles(t *testing.T) {
	ctx := context.Background()
	svc, folderRepo, fileRepo := newTestFileService()
	addFolder(folderRepo, "dir1", "Docs", "/Docs")
	fileRepo.files = append(fileRepo.files,
		&models.File{ID: "f1", FolderID: "dir1", Name: "a.txt"},
		&models.File{ID: "f2", FolderID: "dir1", Name: "b.txt"},
	)

	result, err := svc.DeleteBulkFiles(ctx, []string{"f1", "no-such-id", "f2"})
	if err != nil {
		t.Fatalf("DeleteBulkFiles returned error: %v", err)
	}

	if result.Count != 2 {
		t.Errorf("count = %d, want 2", result.Count)
	}
	if result.Results[1].Outcome != models.BulkOutcomeNotFound {
		t.Errorf("result[1].Outcome = %q, want %q", result.Results[1].Outcome, models.BulkOutcomeNotFound)
	}
	if len(fileRepo.files) != 0 {
		t.Errorf("files remaining = %d, want 0", len(fileRepo.files))
	}
}

func TestSearchItemsMergesBothKinds(t *testing.T) {
	ctx := context.Background()
	folderRepo := &fakeFolderRepo{}
	fileRepo := &fakeFileRepo{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewSearchService(folderRepo, fileRepo, logger)

	folderRepo.folders = append(folderRepo.folders, &models.Folder{ID: "d1", Name: "Reports", Path: "/Reports"})
	fileRepo.files = append(fileRepo.files, &models.File{ID: "f1", FolderID: "d1", Name: "report.pdf", Path: "/Reports/report.pdf"})

	items, err := svc.SearchItems(ctx, "report")
	if err != nil {
		t.Fatalf("SearchItems returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].Type != models.ItemTypeFolder || items[1].Type != models.ItemTypeFile {
		t.Errorf("item types = %q, %q", items[0].Type, items[1].Type)
	}

	if _, err := svc.SearchItems(ctx, ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty term: error = %v, want validation error", err)
	}
}
