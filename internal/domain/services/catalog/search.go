package catalog

import (
	"context"

	"filedex/internal/domain/models/catalog"
)

// SearchService answers name lookups across both node kinds
type SearchService interface {
	// SearchItems merges folder and file matches into one type-tagged
	// sequence (unordered union)
	SearchItems(ctx context.Context, term string) ([]catalog.Item, error)
}

// SearchRequest carries a substring search term
type SearchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// BulkDeleteRequest carries the ids of a bulk delete
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}
