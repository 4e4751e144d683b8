package models

import (
	"time"
)

// File is a versioned object stored in a folder. The blob itself lives in an
// external object store addressed by StorageKey; this backend only tracks
// metadata. Files are the payload a subtree delete has to cascade over.
type File struct {
	ID          string    `json:"id" db:"id"`
	TenantID    string    `json:"tenant_id" db:"tenant_id"`
	FolderID    string    `json:"folder_id" db:"folder_id"`
	Name        string    `json:"name" db:"name"`
	Size        int64     `json:"size" db:"size"`
	ContentType string    `json:"content_type" db:"content_type"`
	StorageKey  string    `json:"storage_key" db:"storage_key"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// FileVersion is one immutable revision of a file.
type FileVersion struct {
	ID         string    `json:"id" db:"id"`
	FileID     string    `json:"file_id" db:"file_id"`
	VersionNo  int       `json:"version_no" db:"version_no"`
	Size       int64     `json:"size" db:"size"`
	StorageKey string    `json:"storage_key" db:"storage_key"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
