package services

import (
	"context"

	"docvault/internal/domain/models"
)

// TreeService owns every structural mutation of a tenant's folder tree.
// Nothing else writes folder rows.
type TreeService interface {
	// CreateSubfolder creates a folder under an existing parent
	CreateSubfolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// RenameFolder renames a folder in place; paths are unaffected
	RenameFolder(ctx context.Context, req *RenameFolderRequest) (*models.Folder, error)

	// DeleteSubtree removes a folder, all its descendants and every file
	// they contain in one atomic unit. The tenant root is refused.
	DeleteSubtree(ctx context.Context, req *DeleteSubtreeRequest) (*DeleteSubtreeResult, error)

	// ListChildren lists immediate children of a folder, name ascending
	ListChildren(ctx context.Context, tenantID, folderID string) ([]models.Folder, error)

	// ListDescendants lists the folder's subtree below the pivot, path
	// ascending (pre-order), depth relative to the pivot
	ListDescendants(ctx context.Context, tenantID, folderID string) ([]models.TreeNode, error)

	// ListAncestors lists the breadcrumb chain root-first, pivot last
	ListAncestors(ctx context.Context, tenantID, folderID string) ([]models.TreeNode, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	TenantID string `json:"tenant_id"`
	ParentID string `json:"parent_id"`
	Name     string `json:"name"`
	ActorID  string `json:"-"`
}

// RenameFolderRequest represents a folder rename request
type RenameFolderRequest struct {
	TenantID string `json:"tenant_id"`
	FolderID string `json:"folder_id"`
	Name     string `json:"name"`
	ActorID  string `json:"-"`
}

// DeleteSubtreeRequest represents a subtree deletion request
type DeleteSubtreeRequest struct {
	TenantID string `json:"tenant_id"`
	FolderID string `json:"folder_id"`
	ActorID  string `json:"-"`
}

// DeleteSubtreeResult reports how many folders a subtree delete removed
type DeleteSubtreeResult struct {
	DeletedCount int64 `json:"deleted_count"`
}
