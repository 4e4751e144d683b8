package models

import (
	"time"
)

// Tenant is the isolation boundary. Every folder, file and membership is
// scoped to exactly one tenant. RootFolderID is nil only during the
// provisioning transaction; it is never observable as nil from outside.
type Tenant struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	RootFolderID *string   `json:"root_folder_id" db:"root_folder_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
