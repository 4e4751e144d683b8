package repositories

import (
	"context"

	"docvault/internal/domain/models"
)

// TenantRepository defines data access operations for tenants
type TenantRepository interface {
	// Insert creates a tenant row; duplicate names surface as ErrConflict
	Insert(ctx context.Context, tenant *models.Tenant) error

	// GetByID retrieves a tenant by ID
	GetByID(ctx context.Context, id string) (*models.Tenant, error)

	// SetRootFolder binds the provisioned root folder to the tenant
	SetRootFolder(ctx context.Context, id, rootFolderID string) error

	// UpdateName renames a tenant
	UpdateName(ctx context.Context, id, name string) (*models.Tenant, error)

	// Delete removes the tenant row. Folder, file and membership rows are
	// removed by the caller in the same transaction first.
	Delete(ctx context.Context, id string) error
}
