package repositories

import (
	"context"

	"docvault/internal/domain/models"
)

// FileRepository defines data access operations for file metadata. Blob
// content lives in the external object store and is not handled here.
type FileRepository interface {
	// Create inserts a file row and its first version
	Create(ctx context.Context, file *models.File) error

	// GetByID retrieves a file by ID within a tenant
	GetByID(ctx context.Context, id, tenantID string) (*models.File, error)

	// ListByFolder lists files in one folder, name ascending
	ListByFolder(ctx context.Context, folderID, tenantID string) ([]models.File, error)

	// ListVersions lists a file's versions, newest first
	ListVersions(ctx context.Context, fileID, tenantID string) ([]models.FileVersion, error)

	// DeleteByFolderPathPrefix removes versions and files for every folder
	// whose path is contained by pivotPath. Runs inside the subtree-delete
	// transaction, before the folder rows go.
	DeleteByFolderPathPrefix(ctx context.Context, pivotPath, tenantID string) (int64, error)
}
