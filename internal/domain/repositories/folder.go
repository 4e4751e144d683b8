package repositories

import (
	"context"

	"docvault/internal/domain/models"
)

// FolderRepository defines data access operations for folders. Every query
// is tenant-scoped; a row belonging to another tenant behaves exactly like a
// missing row.
type FolderRepository interface {
	// GetByID retrieves a folder by ID within a tenant
	GetByID(ctx context.Context, id, tenantID string) (*models.Folder, error)

	// GetPath returns a folder's materialized path, the pivot for
	// ancestor/descendant queries
	GetPath(ctx context.Context, id, tenantID string) (string, error)

	// ListChildren lists immediate child folders, name ascending
	ListChildren(ctx context.Context, parentID, tenantID string) ([]models.Folder, error)

	// ListDescendants returns every folder whose path is contained by
	// pivotPath, with depth relative to the pivot, path ascending.
	// excludeID, when non-empty, is dropped from the result (used to
	// exclude the pivot itself).
	ListDescendants(ctx context.Context, pivotPath, tenantID, excludeID string) ([]models.TreeNode, error)

	// ListAncestors returns every folder whose path contains pivotPath,
	// depth ascending: root first, the pivot last (breadcrumb order)
	ListAncestors(ctx context.Context, pivotPath, tenantID string) ([]models.TreeNode, error)

	// Insert creates a folder row. A sibling-name collision surfaces as
	// ErrConflict regardless of whether the pre-check or the unique
	// constraint caught it.
	Insert(ctx context.Context, folder *models.Folder) error

	// UpdateName renames a folder in place; the path is never touched
	UpdateName(ctx context.Context, id, tenantID, name string) (*models.Folder, error)

	// DeleteByPathPrefix removes the folder at pivotPath and every folder
	// contained by it, returning the number of rows removed. Callers pair
	// it with file deletion inside one transaction.
	DeleteByPathPrefix(ctx context.Context, pivotPath, tenantID string) (int64, error)

	// ExistsSibling reports whether parentID already has a child named
	// name, ignoring excludeID when non-empty
	ExistsSibling(ctx context.Context, parentID, tenantID, name, excludeID string) (bool, error)
}
