package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"filedex/internal/domain"
	models "filedex/internal/domain/models/catalog"
	"filedex/internal/domain/repositories"
	catalogRepo "filedex/internal/domain/repositories/catalog"
	catalogSvc "filedex/internal/domain/services/catalog"
	"filedex/internal/storage"
)

type fileService struct {
	fileRepo   catalogRepo.FileRepository
	folderRepo catalogRepo.FolderRepository
	txManager  repositories.TransactionManager
	store      storage.Storage
	logger     *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	fileRepo catalogRepo.FileRepository,
	folderRepo catalogRepo.FolderRepository,
	txManager repositories.TransactionManager,
	store storage.Storage,
	logger *slog.Logger,
) catalogSvc.FileService {
	return &fileService{
		fileRepo:   fileRepo,
		folderRepo: folderRepo,
		txManager:  txManager,
		store:      store,
		logger:     logger,
	}
}

// CreateFile creates a file inside an existing folder. Unlike folder
// creation there is no root fallback: a dangling folder reference fails.
func (s *fileService) CreateFile(ctx context.Context, req *catalogSvc.CreateFileRequest) (*models.File, error) {
	// Trim before validating so whitespace-only names fail Required
	req.Name = strings.TrimSpace(req.Name)
	if err := validateCreateFileRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folderRepo.GetByID(ctx, req.FolderID)
	if err != nil {
		return nil, err
	}

	file := s.buildFile(req, folder)
	if err := s.fileRepo.Create(ctx, file); err != nil {
		return nil, err
	}

	s.logger.Info("file created",
		"id", file.ID,
		"name", file.Name,
		"folder_id", file.FolderID,
		"path", file.Path,
	)

	return file, nil
}

// buildFile assembles a File from a creation request and its resolved folder.
// The logical path leaf is the on-disk basename when the upload pipeline
// assigned one, the display name otherwise.
func (s *fileService) buildFile(req *catalogSvc.CreateFileRequest, folder *models.Folder) *models.File {
	now := time.Now()
	file := &models.File{
		ID:           uuid.NewString(),
		FolderID:     folder.ID,
		Name:         req.Name,
		MimeType:     req.MimeType,
		PhysicalPath: req.PhysicalPath,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Size != nil {
		file.Size = *req.Size
	}
	file.Path = JoinPath(folder.Path, file.Basename())
	return file
}

// GetFile retrieves a file by ID
func (s *fileService) GetFile(ctx context.Context, id string) (*models.File, error) {
	return s.fileRepo.GetByID(ctx, id)
}

// ListFiles retrieves all files (flat list)
func (s *fileService) ListFiles(ctx context.Context) ([]models.File, error) {
	return s.fileRepo.ListAll(ctx)
}

// ListFilesByFolder lists the direct files of a folder
func (s *fileService) ListFilesByFolder(ctx context.Context, folderID string) ([]models.File, error) {
	return s.fileRepo.ListByFolder(ctx, folderID)
}

// UpdateFile patches name, mime type and size. A name change recomputes the
// path from the file's folder's current path; the physical path is never
// touched here.
func (s *fileService) UpdateFile(ctx context.Context, id string, req *catalogSvc.UpdateFileRequest) (*models.File, error) {
	if req.Name == nil && !req.MimeType.Present && req.Size == nil {
		return nil, fmt.Errorf("%w: at least one field must be provided", domain.ErrValidation)
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if err := validateUpdateFileRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.applyFilePatch(ctx, file, req); err != nil {
		return nil, err
	}

	if err := s.fileRepo.Update(ctx, file); err != nil {
		return nil, err
	}

	s.logger.Info("file updated", "id", file.ID, "name", file.Name, "path", file.Path)
	return file, nil
}

func (s *fileService) applyFilePatch(ctx context.Context, file *models.File, req *catalogSvc.UpdateFileRequest) error {
	if req.Name != nil {
		folder, err := s.folderRepo.GetByID(ctx, file.FolderID)
		if err != nil {
			return err
		}
		file.Name = *req.Name
		file.Path = JoinPath(folder.Path, file.Name)
	}
	// Tri-state: null clears the mime type, absent keeps it
	if req.MimeType.Present {
		file.MimeType = req.MimeType.Value
	}
	if req.Size != nil {
		file.Size = *req.Size
	}
	file.UpdatedAt = time.Now()
	return nil
}

// DeleteFile removes the row, then best-effort removes the stored bytes. A
// failed byte removal is logged and swallowed: the logical delete stands.
func (s *fileService) DeleteFile(ctx context.Context, id string) (*models.File, error) {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.fileRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.removeBytes(ctx, file)

	s.logger.Info("file deleted", "id", file.ID, "name", file.Name, "path", file.Path)
	return file, nil
}

func (s *fileService) removeBytes(ctx context.Context, file *models.File) {
	if s.store == nil || file.PhysicalPath == nil || *file.PhysicalPath == "" {
		return
	}
	if err := s.store.Remove(ctx, *file.PhysicalPath); err != nil {
		s.logger.Warn("failed to remove stored bytes",
			"file_id", file.ID,
			"physical_path", *file.PhysicalPath,
			"error", err,
		)
	}
}

// SearchFiles performs a case-insensitive substring search on names
func (s *fileService) SearchFiles(ctx context.Context, term string) ([]models.File, error) {
	if err := validateSearchTerm(term); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return s.fileRepo.SearchByName(ctx, term)
}

// CreateBulkFiles creates files item by item. Items referencing a missing
// folder are dropped and reported; valid items are inserted in one batch.
func (s *fileService) CreateBulkFiles(ctx context.Context, items []catalogSvc.CreateFileRequest) (*models.BulkResult, error) {
	result := &models.BulkResult{Results: make([]models.BulkItemResult, 0, len(items))}

	var files []*models.File
	var fileIndexes []int
	for i := range items {
		req := &items[i]

		req.Name = strings.TrimSpace(req.Name)
		if err := validateCreateFileRequest(req); err != nil {
			result.Results = append(result.Results, models.BulkItemResult{
				Index:   i,
				Outcome: models.BulkOutcomeSkipped,
				Detail:  err.Error(),
			})
			continue
		}

		folder, err := s.folderRepo.GetByID(ctx, req.FolderID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				result.Results = append(result.Results, models.BulkItemResult{
					Index:   i,
					Outcome: models.BulkOutcomeFolderNotFound,
					Detail:  fmt.Sprintf("folder %s does not exist", req.FolderID),
				})
				continue
			}
			return nil, err
		}

		files = append(files, s.buildFile(req, folder))
		fileIndexes = append(fileIndexes, i)
	}

	count, err := s.fileRepo.CreateMany(ctx, files)
	if err != nil {
		return nil, err
	}

	for j, file := range files[:count] {
		result.Results = append(result.Results, models.BulkItemResult{
			Index:   fileIndexes[j],
			ID:      file.ID,
			Outcome: models.BulkOutcomeCreated,
		})
	}
	result.Count = count

	s.logger.Info("bulk files created", "requested", len(items), "created", count)
	return result, nil
}

// UpdateBulkFiles patches files as one atomic transaction: every valid patch
// commits or none does. Items referencing a non-existent id are skipped.
func (s *fileService) UpdateBulkFiles(ctx context.Context, items []catalogSvc.BulkUpdateFileItem) (*models.BulkResult, error) {
	result := &models.BulkResult{Results: make([]models.BulkItemResult, 0, len(items))}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		for i, item := range items {
			req := &catalogSvc.UpdateFileRequest{Size: item.Size}
			if item.Name != nil {
				name := strings.TrimSpace(*item.Name)
				req.Name = &name
			}
			if item.MimeType != nil {
				req.MimeType.Present = true
				req.MimeType.Value = item.MimeType
			}
			if err := validateUpdateFileRequest(req); err != nil {
				result.Results = append(result.Results, models.BulkItemResult{
					Index:   i,
					ID:      item.ID,
					Outcome: models.BulkOutcomeSkipped,
					Detail:  err.Error(),
				})
				continue
			}

			file, err := s.fileRepo.GetByID(txCtx, item.ID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					result.Results = append(result.Results, models.BulkItemResult{
						Index:   i,
						ID:      item.ID,
						Outcome: models.BulkOutcomeNotFound,
					})
					continue
				}
				return err
			}

			if err := s.applyFilePatch(txCtx, file, req); err != nil {
				return err
			}
			if err := s.fileRepo.Update(txCtx, file); err != nil {
				return err
			}

			result.Count++
			result.Results = append(result.Results, models.BulkItemResult{
				Index:   i,
				ID:      file.ID,
				Outcome: models.BulkOutcomeUpdated,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// DeleteBulkFiles deletes the given file rows, then best-effort removes
// their stored bytes.
func (s *fileService) DeleteBulkFiles(ctx context.Context, ids []string) (*models.BulkResult, error) {
	result := &models.BulkResult{Results: make([]models.BulkItemResult, 0, len(ids))}

	var existing []*models.File
	var existingIDs []string
	for i, id := range ids {
		file, err := s.fileRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				result.Results = append(result.Results, models.BulkItemResult{
					Index:   i,
					ID:      id,
					Outcome: models.BulkOutcomeNotFound,
				})
				continue
			}
			return nil, err
		}
		existing = append(existing, file)
		existingIDs = append(existingIDs, id)
		result.Results = append(result.Results, models.BulkItemResult{
			Index:   i,
			ID:      id,
			Outcome: models.BulkOutcomeDeleted,
		})
	}

	count, err := s.fileRepo.DeleteMany(ctx, existingIDs)
	if err != nil {
		return nil, err
	}
	result.Count = count

	for _, file := range existing {
		s.removeBytes(ctx, file)
	}

	s.logger.Info("bulk files deleted", "requested", len(ids), "deleted", count)
	return result, nil
}
