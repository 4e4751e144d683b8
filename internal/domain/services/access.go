package services

import (
	"context"

	"docvault/internal/domain/models"
)

// AccessGuard answers membership/role checks before structural mutations.
// A denial must not reveal whether the tenant exists: implementations return
// ErrForbidden for both "no membership" and "insufficient role".
type AccessGuard interface {
	// CheckTenantAccess returns nil when the actor holds at least min in
	// the tenant, ErrForbidden otherwise
	CheckTenantAccess(ctx context.Context, actorID, tenantID string, min models.Role) error
}
