package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"filedex/internal/domain"
	models "filedex/internal/domain/models/catalog"
	catalogRepo "filedex/internal/domain/repositories/catalog"
	catalogSvc "filedex/internal/domain/services/catalog"
)

type searchService struct {
	folderRepo catalogRepo.FolderRepository
	fileRepo   catalogRepo.FileRepository
	logger     *slog.Logger
}

// NewSearchService creates a search service spanning both node kinds
func NewSearchService(
	folderRepo catalogRepo.FolderRepository,
	fileRepo catalogRepo.FileRepository,
	logger *slog.Logger,
) catalogSvc.SearchService {
	return &searchService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		logger:     logger,
	}
}

// SearchItems merges folder and file name matches into one type-tagged
// sequence (unordered union).
func (s *searchService) SearchItems(ctx context.Context, term string) ([]models.Item, error) {
	if err := validateSearchTerm(term); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folders, err := s.folderRepo.SearchByName(ctx, term)
	if err != nil {
		return nil, err
	}

	files, err := s.fileRepo.SearchByName(ctx, term)
	if err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(folders)+len(files))
	for _, folder := range folders {
		items = append(items, models.FolderItem(folder))
	}
	for _, file := range files {
		items = append(items, models.FileItem(file))
	}

	return items, nil
}
