package handler

import (
	"log/slog"
	"net/http"

	catalogSvc "filedex/internal/domain/services/catalog"
	"filedex/internal/httputil"
)

// SearchHandler handles cross-kind search requests
type SearchHandler struct {
	searchService catalogSvc.SearchService
	logger        *slog.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService catalogSvc.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// SearchItems searches folders and files in one pass
// POST /api/items/search
func (h *SearchHandler) SearchItems(w http.ResponseWriter, r *http.Request) {
	var req catalogSvc.SearchRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items, err := h.searchService.SearchItems(r.Context(), req.SearchTerm)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}
