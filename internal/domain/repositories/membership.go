package repositories

import (
	"context"

	"docvault/internal/domain/models"
)

// MembershipRepository defines data access operations for tenant memberships
type MembershipRepository interface {
	// Insert creates a membership; one row per (tenant, user)
	Insert(ctx context.Context, membership *models.Membership) error

	// GetRole returns the actor's role in a tenant, or ErrNotFound when
	// the actor has no membership there
	GetRole(ctx context.Context, userID, tenantID string) (models.Role, error)

	// DeleteByTenant removes every membership of a tenant
	DeleteByTenant(ctx context.Context, tenantID string) (int64, error)
}
