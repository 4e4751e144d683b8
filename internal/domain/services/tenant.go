package services

import (
	"context"

	"docvault/internal/domain/models"
)

// TenantService provisions tenants together with their root folder. A tenant
// without a bound root folder is never observable from outside the
// provisioning transaction.
type TenantService interface {
	// CreateTenant creates the tenant, its root folder and the creator's
	// admin membership in one transaction
	CreateTenant(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error)

	// GetTenant retrieves a tenant by ID
	GetTenant(ctx context.Context, id string) (*models.Tenant, error)

	// RenameTenant renames a tenant
	RenameTenant(ctx context.Context, req *RenameTenantRequest) (*models.Tenant, error)

	// DeleteTenant removes the tenant and everything it owns in one
	// transaction: file versions, files, folders, memberships, the tenant
	DeleteTenant(ctx context.Context, req *DeleteTenantRequest) error
}

// CreateTenantRequest represents a tenant creation request
type CreateTenantRequest struct {
	Name    string `json:"name"`
	ActorID string `json:"-"`
}

// RenameTenantRequest represents a tenant rename request
type RenameTenantRequest struct {
	TenantID string `json:"tenant_id"`
	Name     string `json:"name"`
	ActorID  string `json:"-"`
}

// DeleteTenantRequest represents a tenant deletion request
type DeleteTenantRequest struct {
	TenantID string `json:"tenant_id"`
	ActorID  string `json:"-"`
}
