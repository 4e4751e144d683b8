package services

import (
	"context"

	"docvault/internal/domain/models"
)

// FileService handles file metadata inside folders. Upload/download of blob
// content goes through the object store directly and is out of scope here.
type FileService interface {
	// CreateFile registers file metadata in a folder
	CreateFile(ctx context.Context, req *CreateFileRequest) (*models.File, error)

	// ListFiles lists files in a folder, name ascending
	ListFiles(ctx context.Context, tenantID, folderID string) ([]models.File, error)
}

// CreateFileRequest represents a file metadata creation request
type CreateFileRequest struct {
	TenantID    string `json:"tenant_id"`
	FolderID    string `json:"folder_id"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	StorageKey  string `json:"storage_key"`
	ActorID     string `json:"-"`
}
