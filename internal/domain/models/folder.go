package models

import (
	"time"
)

// Folder is one node of a tenant's tree. Path is a materialized ltree label
// path: one encoded identifier per ancestor level, ending in this folder's
// own encoded id. Renames never touch Path because segments encode ids, not
// names. ParentID is nil only for the tenant root.
type Folder struct {
	ID        string    `json:"id" db:"id"`
	TenantID  string    `json:"tenant_id" db:"tenant_id"`
	ParentID  *string   `json:"parent_id" db:"parent_id"`
	Name      string    `json:"name" db:"name"`
	Path      string    `json:"path" db:"path"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsRoot reports whether the folder is its tenant's root.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}

// TreeNode is the projection returned by descendant and ancestor listings.
// Depth is relative for descendants (levels below the pivot) and absolute
// for ancestors (levels from the tenant root, root = 1).
type TreeNode struct {
	ID    string `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Path  string `json:"path" db:"path"`
	Depth int    `json:"depth" db:"depth"`
}
