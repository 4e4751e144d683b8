package handler

import (
	"fmt"
	"net/http"

	"docvault/internal/httputil"
)

// getActorID extracts the authenticated actor id set by the auth middleware
func getActorID(r *http.Request) (string, error) {
	actorID := httputil.GetActorID(r)
	if actorID == "" {
		return "", fmt.Errorf("no authenticated user in request context")
	}
	return actorID, nil
}

// getTenantID extracts the tenant scope set by the tenant middleware
func getTenantID(r *http.Request) (string, error) {
	tenantID := httputil.GetTenantID(r)
	if tenantID == "" {
		return "", fmt.Errorf("missing %s header", "X-Tenant-ID")
	}
	return tenantID, nil
}
