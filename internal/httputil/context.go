package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	actorIDKey  contextKey = "actorID"
	tenantIDKey contextKey = "tenantID"
)

// WithActorID adds the authenticated actor id to the request context
func WithActorID(r *http.Request, actorID string) *http.Request {
	ctx := context.WithValue(r.Context(), actorIDKey, actorID)
	return r.WithContext(ctx)
}

// GetActorID retrieves the actor id from context, returns empty string if not found
func GetActorID(r *http.Request) string {
	actorID, _ := r.Context().Value(actorIDKey).(string)
	return actorID
}

// WithTenantID adds the resolved tenant id to the request context
func WithTenantID(r *http.Request, tenantID string) *http.Request {
	ctx := context.WithValue(r.Context(), tenantIDKey, tenantID)
	return r.WithContext(ctx)
}

// GetTenantID retrieves the tenant id from context, returns empty string if not found
func GetTenantID(r *http.Request) string {
	tenantID, _ := r.Context().Value(tenantIDKey).(string)
	return tenantID
}
