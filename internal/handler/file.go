package handler

import (
	"log/slog"
	"net/http"

	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

// FileHandler handles file metadata HTTP requests
type FileHandler struct {
	fileService services.FileService
	logger      *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService services.FileService, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		logger:      logger,
	}
}

// CreateFile registers file metadata in a folder
// POST /api/folders/{id}/files
func (h *FileHandler) CreateFile(w http.ResponseWriter, r *http.Request) {
	actorID, err := getActorID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}
	tenantID, err := getTenantID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req services.CreateFileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.TenantID = tenantID
	req.FolderID = r.PathValue("id")
	req.ActorID = actorID

	file, err := h.fileService.CreateFile(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, file)
}

// ListFiles lists files in a folder
// GET /api/folders/{id}/files
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	tenantID, err := getTenantID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	files, err := h.fileService.ListFiles(r.Context(), tenantID, r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, files)
}
