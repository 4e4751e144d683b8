package handler

import (
	"log/slog"
	"net/http"

	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	treeService services.TreeService
	logger      *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(treeService services.TreeService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		treeService: treeService,
		logger:      logger,
	}
}

// CreateSubfolder creates a folder under an existing parent
// POST /api/folders/{id}/children
func (h *FolderHandler) CreateSubfolder(w http.ResponseWriter, r *http.Request) {
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

	var req services.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.TenantID = tenantID
	req.ParentID = r.PathValue("id")
	req.ActorID = actorID

	folder, err := h.treeService.CreateSubfolder(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// RenameFolder renames a folder in place
// PATCH /api/folders/{id}
func (h *FolderHandler) RenameFolder(w http.ResponseWriter, r *http.Request) {
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

	var req services.RenameFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.TenantID = tenantID
	req.FolderID = r.PathValue("id")
	req.ActorID = actorID

	folder, err := h.treeService.RenameFolder(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteSubtree deletes a folder, its descendants and their files
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteSubtree(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.treeService.DeleteSubtree(r.Context(), &services.DeleteSubtreeRequest{
		TenantID: tenantID,
		FolderID: r.PathValue("id"),
		ActorID:  actorID,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// ListChildren lists immediate children of a folder
// GET /api/folders/{id}/children
func (h *FolderHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	tenantID, err := getTenantID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	folders, err := h.treeService.ListChildren(r.Context(), tenantID, r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folders)
}

// ListDescendants lists the subtree below a folder
// GET /api/folders/{id}/descendants
func (h *FolderHandler) ListDescendants(w http.ResponseWriter, r *http.Request) {
	tenantID, err := getTenantID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	nodes, err := h.treeService.ListDescendants(r.Context(), tenantID, r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, nodes)
}

// ListAncestors lists a folder's breadcrumb chain, root first
// GET /api/folders/{id}/ancestors
func (h *FolderHandler) ListAncestors(w http.ResponseWriter, r *http.Request) {
	tenantID, err := getTenantID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	nodes, err := h.treeService.ListAncestors(r.Context(), tenantID, r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, nodes)
}
