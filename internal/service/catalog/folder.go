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
)

type folderService struct {
	folderRepo catalogRepo.FolderRepository
	fileRepo   catalogRepo.FileRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo catalogRepo.FolderRepository,
	fileRepo catalogRepo.FileRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) catalogSvc.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// CreateFolder creates a new folder, deriving its path from the parent.
// A dangling parent reference does not fail the call: the folder is created
// at the root instead (legacy contract kept for bulk/seed compatibility).
func (s *folderService) CreateFolder(ctx context.Context, req *catalogSvc.CreateFolderRequest) (*models.Folder, error) {
	// Trim before validating so whitespace-only names fail Required
	req.Name = strings.TrimSpace(req.Name)
	if err := validateCreateFolderRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	parentID, parentPath, err := s.resolveParent(ctx, req.ParentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	folder := &models.Folder{
		ID:        uuid.NewString(),
		ParentID:  parentID,
		Name:      req.Name,
		Path:      JoinPath(parentPath, req.Name),
		IsSystem:  req.IsSystem,
		IsHidden:  req.IsHidden,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
		"path", folder.Path,
	)

	return folder, nil
}

// resolveParent maps an optional parent reference to the (parentID, parentPath)
// pair used for path derivation. A missing parent degrades to the root.
func (s *folderService) resolveParent(ctx context.Context, parentID *string) (*string, string, error) {
	if parentID == nil {
		return nil, "/", nil
	}

	parent, err := s.folderRepo.GetByID(ctx, *parentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("parent folder not found, creating at root", "parent_id", *parentID)
			return nil, "/", nil
		}
		return nil, "", err
	}

	return &parent.ID, parent.Path, nil
}

// GetFolder retrieves a folder with its direct subfolders and files
func (s *folderService) GetFolder(ctx context.Context, id string) (*catalogSvc.FolderDetail, error) {
	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	subfolders, err := s.folderRepo.ListChildren(ctx, &folder.ID)
	if err != nil {
		return nil, fmt.Errorf("list subfolders: %w", err)
	}

	files, err := s.fileRepo.ListByFolder(ctx, folder.ID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	return &catalogSvc.FolderDetail{
		Folder:     *folder,
		Subfolders: subfolders,
		Files:      files,
	}, nil
}

// ListFolders retrieves all folders (flat list)
func (s *folderService) ListFolders(ctx context.Context) ([]models.Folder, error) {
	return s.folderRepo.ListAll(ctx)
}

// UpdateFolder renames and/or moves a folder. The folder's own row and every
// descendant path are rewritten inside one transaction so a failure midway
// leaves the old tree intact.
func (s *folderService) UpdateFolder(ctx context.Context, id string, req *catalogSvc.UpdateFolderRequest) (*models.Folder, error) {
	if req.Name == nil && !req.ParentID.Present && req.IsSystem == nil && req.IsHidden == nil {
		return nil, fmt.Errorf("%w: at least one field must be provided", domain.ErrValidation)
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if err := validateUpdateFolderRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var updated *models.Folder
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		// Lock the renamed row so a concurrent rename of this folder or of
		// an ancestor serializes against this repair instead of overwriting
		// descendant paths with stale values.
		folder, err := s.folderRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		// Parent path the new path is derived from. Default: keep position,
		// derive from the stored path rather than an extra parent lookup.
		parentPath := ParentPath(folder.Path)

		// Tri-state: only move when the field was present in the request
		if req.ParentID.Present {
			if req.ParentID.Value != nil {
				parent, err := s.folderRepo.GetByIDForUpdate(txCtx, *req.ParentID.Value)
				if err != nil {
					return fmt.Errorf("parent folder: %w", err)
				}
				if err := s.checkNoCycle(txCtx, folder.ID, parent); err != nil {
					return err
				}
				folder.ParentID = &parent.ID
				parentPath = parent.Path
			} else {
				// null = move to root
				folder.ParentID = nil
				parentPath = ""
			}
		}

		if req.Name != nil {
			folder.Name = *req.Name
		}
		if req.IsSystem != nil {
			folder.IsSystem = *req.IsSystem
		}
		if req.IsHidden != nil {
			folder.IsHidden = *req.IsHidden
		}

		newPath := JoinPath(parentPath, folder.Name)
		pathChanged := newPath != folder.Path
		folder.Path = newPath
		folder.UpdatedAt = time.Now()

		if err := s.folderRepo.Update(txCtx, folder); err != nil {
			return err
		}

		if pathChanged {
			if err := s.repairDescendantPaths(txCtx, folder); err != nil {
				return err
			}
		}

		updated = folder
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", updated.ID,
		"name", updated.Name,
		"path", updated.Path,
	)

	return updated, nil
}

// repairDescendantPaths rewrites the stored path of every node below the
// given folder so the path invariant holds again after a rename or move.
// Must run inside the caller's transaction; every descendant row is read
// with a row lock so the whole affected subtree stays locked until commit.
func (s *folderService) repairDescendantPaths(ctx context.Context, folder *models.Folder) error {
	files, err := s.fileRepo.ListByFolderForUpdate(ctx, folder.ID)
	if err != nil {
		return fmt.Errorf("list files for path repair: %w", err)
	}
	for i := range files {
		file := &files[i]
		file.Path = JoinPath(folder.Path, file.Basename())
		file.UpdatedAt = time.Now()
		if err := s.fileRepo.Update(ctx, file); err != nil {
			return fmt.Errorf("repair file path %q: %w", file.ID, err)
		}
	}

	children, err := s.folderRepo.ListChildrenForUpdate(ctx, &folder.ID)
	if err != nil {
		return fmt.Errorf("list subfolders for path repair: %w", err)
	}
	for i := range children {
		child := &children[i]
		child.Path = JoinPath(folder.Path, child.Name)
		child.UpdatedAt = time.Now()
		if err := s.folderRepo.Update(ctx, child); err != nil {
			return fmt.Errorf("repair folder path %q: %w", child.ID, err)
		}
		if err := s.repairDescendantPaths(ctx, child); err != nil {
			return err
		}
	}

	return nil
}

// checkNoCycle ensures moving a folder under newParent cannot create a cycle:
// the new parent must not be the folder itself or any of its descendants.
func (s *folderService) checkNoCycle(ctx context.Context, folderID string, newParent *models.Folder) error {
	if newParent.ID == folderID {
		return fmt.Errorf("%w: cannot move folder into itself", domain.ErrValidation)
	}

	current := newParent
	for current.ParentID != nil {
		if *current.ParentID == folderID {
			return fmt.Errorf("%w: cannot move folder into its own descendant", domain.ErrValidation)
		}
		parent, err := s.folderRepo.GetByID(ctx, *current.ParentID)
		if err != nil {
			return err
		}
		current = parent
	}

	return nil
}

// DeleteFolder deletes a folder and its entire subtree (descendant folders
// and all their files), returning the deleted folder.
func (s *folderService) DeleteFolder(ctx context.Context, id string) (*models.Folder, error) {
	var deleted *models.Folder
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		folder, err := s.folderRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if err := s.deleteDescendants(txCtx, folder.ID); err != nil {
			return err
		}

		if err := s.folderRepo.Delete(txCtx, folder.ID); err != nil {
			return err
		}

		deleted = folder
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder deleted",
		"id", deleted.ID,
		"name", deleted.Name,
		"path", deleted.Path,
	)

	return deleted, nil
}

// deleteDescendants removes every node below a folder, files before their
// folder, bottom-up, so no orphan can survive a partial failure.
func (s *folderService) deleteDescendants(ctx context.Context, folderID string) error {
	children, err := s.folderRepo.ListChildren(ctx, &folderID)
	if err != nil {
		return fmt.Errorf("list subfolders: %w", err)
	}

	for _, child := range children {
		if err := s.deleteDescendants(ctx, child.ID); err != nil {
			return err
		}
		if err := s.folderRepo.Delete(ctx, child.ID); err != nil {
			return fmt.Errorf("delete subfolder %q: %w", child.Name, err)
		}
	}

	if _, err := s.fileRepo.DeleteByFolders(ctx, []string{folderID}); err != nil {
		return err
	}

	return nil
}

// GetDirectSubfolders lists folders whose parent is id, each with its direct
// files (one level, non-recursive).
func (s *folderService) GetDirectSubfolders(ctx context.Context, id string) ([]models.FolderWithFiles, error) {
	children, err := s.folderRepo.ListChildren(ctx, &id)
	if err != nil {
		return nil, err
	}

	result := make([]models.FolderWithFiles, 0, len(children))
	for _, child := range children {
		files, err := s.fileRepo.ListByFolder(ctx, child.ID)
		if err != nil {
			return nil, fmt.Errorf("list files of %q: %w", child.ID, err)
		}
		result = append(result, models.FolderWithFiles{Folder: child, Files: files})
	}

	return result, nil
}

// GetFolderContents lists one level of a folder as type-tagged items. Item
// paths are recomputed from the loaded parent rather than trusted from the
// stored rows.
func (s *folderService) GetFolderContents(ctx context.Context, id string) (*models.FolderContents, error) {
	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	children, err := s.folderRepo.ListChildren(ctx, &folder.ID)
	if err != nil {
		return nil, fmt.Errorf("list subfolders: %w", err)
	}

	files, err := s.fileRepo.ListByFolder(ctx, folder.ID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	contents := &models.FolderContents{
		Folders: make([]models.Item, 0, len(children)),
		Files:   make([]models.Item, 0, len(files)),
	}

	for _, child := range children {
		item := models.FolderItem(child)
		item.Path = JoinPath(folder.Path, child.Name)
		contents.Folders = append(contents.Folders, item)
	}
	for _, file := range files {
		item := models.FileItem(file)
		item.Path = JoinPath(folder.Path, file.Basename())
		contents.Files = append(contents.Files, item)
	}

	return contents, nil
}

// GetFolderByPath resolves a "/"-separated path segment by segment from the
// root. Returns nil, nil when no folder matches.
func (s *folderService) GetFolderByPath(ctx context.Context, path string) (*models.Folder, error) {
	segments := SplitSegments(strings.TrimSpace(path))
	if len(segments) == 0 {
		return nil, nil
	}

	var current *models.Folder
	var parentID *string
	for _, segment := range segments {
		folder, err := s.folderRepo.GetByName(ctx, parentID, segment)
		if err != nil {
			return nil, err
		}
		if folder == nil {
			return nil, nil
		}
		current = folder
		parentID = &folder.ID
	}

	return current, nil
}

// SearchFolders performs a case-insensitive substring search on names
func (s *folderService) SearchFolders(ctx context.Context, term string) ([]models.Folder, error) {
	if err := validateSearchTerm(term); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return s.folderRepo.SearchByName(ctx, term)
}

// CreateBulkFolders creates folders item by item. Items with a dangling
// parent reference are created at the root; invalid names are skipped. Valid
// items commit even when others are skipped - intentional partial success.
func (s *folderService) CreateBulkFolders(ctx context.Context, items []catalogSvc.CreateFolderRequest) (*models.BulkResult, error) {
	result := &models.BulkResult{Results: make([]models.BulkItemResult, 0, len(items))}

	for i := range items {
		req := &items[i]

		req.Name = strings.TrimSpace(req.Name)
		if err := validateCreateFolderRequest(req); err != nil {
			result.Results = append(result.Results, models.BulkItemResult{
				Index:   i,
				Outcome: models.BulkOutcomeSkipped,
				Detail:  err.Error(),
			})
			continue
		}

		if req.ParentID != nil && *req.ParentID == "" {
			req.ParentID = nil
		}

		requestedParent := req.ParentID
		parentID, parentPath, err := s.resolveParent(ctx, req.ParentID)
		if err != nil {
			return nil, err
		}

		now := time.Now()
		folder := &models.Folder{
			ID:        uuid.NewString(),
			ParentID:  parentID,
			Name:      req.Name,
			Path:      JoinPath(parentPath, req.Name),
			IsSystem:  req.IsSystem,
			IsHidden:  req.IsHidden,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := s.folderRepo.Create(ctx, folder); err != nil {
			result.Results = append(result.Results, models.BulkItemResult{
				Index:   i,
				Outcome: models.BulkOutcomeSkipped,
				Detail:  err.Error(),
			})
			continue
		}

		outcome := models.BulkOutcomeCreated
		if requestedParent != nil && parentID == nil {
			outcome = models.BulkOutcomeCreatedAtRoot
		}
		result.Count++
		result.Results = append(result.Results, models.BulkItemResult{
			Index:   i,
			ID:      folder.ID,
			Outcome: outcome,
		})
	}

	s.logger.Info("bulk folders created", "requested", len(items), "created", result.Count)
	return result, nil
}

// UpdateBulkFolders renames folders as one atomic transaction: either every
// valid rename (with its descendant repair) commits or none does. Items
// referencing a non-existent id are reported and skipped.
func (s *folderService) UpdateBulkFolders(ctx context.Context, items []catalogSvc.BulkUpdateFolderItem) (*models.BulkResult, error) {
	result := &models.BulkResult{Results: make([]models.BulkItemResult, 0, len(items))}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		for i, item := range items {
			name := strings.TrimSpace(item.Name)
			req := &catalogSvc.UpdateFolderRequest{Name: &name}
			if err := validateUpdateFolderRequest(req); err != nil {
				result.Results = append(result.Results, models.BulkItemResult{
					Index:   i,
					ID:      item.ID,
					Outcome: models.BulkOutcomeSkipped,
					Detail:  err.Error(),
				})
				continue
			}

			folder, err := s.folderRepo.GetByIDForUpdate(txCtx, item.ID)
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

			folder.Name = name
			newPath := JoinPath(ParentPath(folder.Path), name)
			pathChanged := newPath != folder.Path
			folder.Path = newPath
			folder.UpdatedAt = time.Now()

			if err := s.folderRepo.Update(txCtx, folder); err != nil {
				return err
			}
			if pathChanged {
				if err := s.repairDescendantPaths(txCtx, folder); err != nil {
					return err
				}
			}

			result.Count++
			result.Results = append(result.Results, models.BulkItemResult{
				Index:   i,
				ID:      folder.ID,
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

// DeleteBulkFolders deletes the given folders and their files in one
// transaction. Files of the listed folders go first, then the folder rows;
// deeper descendants fall to the schema cascade.
func (s *folderService) DeleteBulkFolders(ctx context.Context, ids []string) (*models.BulkResult, error) {
	result := &models.BulkResult{Results: make([]models.BulkItemResult, 0, len(ids))}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.fileRepo.DeleteByFolders(txCtx, ids); err != nil {
			return err
		}

		for i, id := range ids {
			err := s.folderRepo.Delete(txCtx, id)
			switch {
			case err == nil:
				result.Count++
				result.Results = append(result.Results, models.BulkItemResult{
					Index:   i,
					ID:      id,
					Outcome: models.BulkOutcomeDeleted,
				})
			case errors.Is(err, domain.ErrNotFound):
				result.Results = append(result.Results, models.BulkItemResult{
					Index:   i,
					ID:      id,
					Outcome: models.BulkOutcomeNotFound,
				})
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bulk folders deleted", "requested", len(ids), "deleted", result.Count)
	return result, nil
}
