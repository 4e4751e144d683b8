package handler

import (
	"log/slog"
	"net/http"

	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

// TenantHandler handles tenant HTTP requests
type TenantHandler struct {
	tenantService services.TenantService
	logger        *slog.Logger
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService services.TenantService, logger *slog.Logger) *TenantHandler {
	return &TenantHandler{
		tenantService: tenantService,
		logger:        logger,
	}
}

// CreateTenant provisions a tenant with its root folder
// POST /api/tenants
func (h *TenantHandler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	actorID, err := getActorID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req services.CreateTenantRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ActorID = actorID

	tenant, err := h.tenantService.CreateTenant(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, tenant)
}

// GetTenant retrieves a tenant by ID
// GET /api/tenants/{id}
func (h *TenantHandler) GetTenant(w http.ResponseWriter, r *http.Request) {
	tenant, err := h.tenantService.GetTenant(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tenant)
}

// RenameTenant renames a tenant
// PATCH /api/tenants/{id}
func (h *TenantHandler) RenameTenant(w http.ResponseWriter, r *http.Request) {
	actorID, err := getActorID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req services.RenameTenantRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.TenantID = r.PathValue("id")
	req.ActorID = actorID

	tenant, err := h.tenantService.RenameTenant(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tenant)
}

// DeleteTenant removes a tenant and everything it owns
// DELETE /api/tenants/{id}
func (h *TenantHandler) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	actorID, err := getActorID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	err = h.tenantService.DeleteTenant(r.Context(), &services.DeleteTenantRequest{
		TenantID: r.PathValue("id"),
		ActorID:  actorID,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
