package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	catalogSvc "filedex/internal/domain/services/catalog"
	"filedex/internal/httputil"
	"filedex/internal/storage"
)

// UploadPolicy bounds what the multipart upload endpoint accepts.
type UploadPolicy struct {
	MaxSizeBytes int64
	AllowedMIME  []string
}

// Allows reports whether mimeType passes the policy. An empty allow-list
// accepts everything.
func (p UploadPolicy) Allows(mimeType string) bool {
	if len(p.AllowedMIME) == 0 {
		return true
	}
	for _, allowed := range p.AllowedMIME {
		if allowed == mimeType {
			return true
		}
	}
	return false
}

// FileHandler handles file HTTP requests
type FileHandler struct {
	fileService catalogSvc.FileService
	store       storage.Storage
	policy      UploadPolicy
	logger      *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService catalogSvc.FileService, store storage.Storage, policy UploadPolicy, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		store:       store,
		policy:      policy,
		logger:      logger,
	}
}

// ListFiles lists all files
// GET /api/files
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.fileService.ListFiles(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, files)
}

// CreateFile registers a file record (metadata only, no bytes)
// POST /api/files
func (h *FileHandler) CreateFile(w http.ResponseWriter, r *http.Request) {
	var req catalogSvc.CreateFileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	file, err := h.fileService.CreateFile(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, file)
}

// Upload receives multipart bytes, stores them, then registers the file
// record pointing at the stored object.
// POST /api/files/upload  (fields: file, folder_id)
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.policy.MaxSizeBytes)
	if err := r.ParseMultipartForm(h.policy.MaxSizeBytes); err != nil {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("upload exceeds %d bytes or is not valid multipart", h.policy.MaxSizeBytes))
		return
	}

	folderID := r.FormValue("folder_id")
	if folderID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder_id form field is required")
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "file form field is required")
		return
	}
	defer part.Close()

	mimeType := header.Header.Get("Content-Type")
	if !h.policy.Allows(mimeType) {
		httputil.RespondError(w, http.StatusUnsupportedMediaType,
			fmt.Sprintf("mime type %q is not allowed", mimeType))
		return
	}

	obj, err := h.store.Save(r.Context(), header.Filename, mimeType, part, header.Size)
	if err != nil {
		h.logger.Error("failed to store upload", "filename", header.Filename, "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	req := &catalogSvc.CreateFileRequest{
		Name:         header.Filename,
		FolderID:     folderID,
		MimeType:     &obj.MimeType,
		Size:         &obj.Size,
		PhysicalPath: &obj.PhysicalPath,
	}

	file, err := h.fileService.CreateFile(r.Context(), req)
	if err != nil {
		// orphaned bytes would accumulate otherwise
		if rmErr := h.store.Remove(r.Context(), obj.PhysicalPath); rmErr != nil {
			h.logger.Warn("failed to clean up stored bytes after create failure",
				"physical_path", obj.PhysicalPath, "error", rmErr)
		}
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, file)
}

// GetFile retrieves a file by ID
// GET /api/files/{id}
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	file, err := h.fileService.GetFile(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// UpdateFile patches a file's name, mime type or size
// PUT /api/files/{id}
func (h *FileHandler) UpdateFile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	var req catalogSvc.UpdateFileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	file, err := h.fileService.UpdateFile(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// DeleteFile deletes a file record and its stored bytes
// DELETE /api/files/{id}
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	file, err := h.fileService.DeleteFile(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// ListByFolder lists the direct files of a folder
// GET /api/files/folder/{folderId}
func (h *FileHandler) ListByFolder(w http.ResponseWriter, r *http.Request) {
	folderID := r.PathValue("folderId")
	if folderID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder ID is required")
		return
	}

	files, err := h.fileService.ListFilesByFolder(r.Context(), folderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, files)
}

// SearchFiles searches files by name substring
// POST /api/files/search
func (h *FileHandler) SearchFiles(w http.ResponseWriter, r *http.Request) {
	var req catalogSvc.SearchRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	files, err := h.fileService.SearchFiles(r.Context(), req.SearchTerm)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, files)
}

// CreateBulk creates file records in bulk with per-item outcomes
// POST /api/files/bulk
func (h *FileHandler) CreateBulk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Files []catalogSvc.CreateFileRequest `json:"files"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.fileService.CreateBulkFiles(r.Context(), req.Files)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, result)
}

// UpdateBulk patches files atomically
// PUT /api/files/bulk
func (h *FileHandler) UpdateBulk(w http.ResponseWriter, r *http.Request) {
	var items []catalogSvc.BulkUpdateFileItem
	if err := httputil.ParseJSON(w, r, &items); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.fileService.UpdateBulkFiles(r.Context(), items)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// DeleteBulk deletes files in bulk
// DELETE /api/files/bulk
func (h *FileHandler) DeleteBulk(w http.ResponseWriter, r *http.Request) {
	var req catalogSvc.BulkDeleteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.fileService.DeleteBulkFiles(r.Context(), req.IDs)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
