package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

// PostgresFolderRepository implements the FolderRepository interface on top
// of an ltree path column. Containment predicates (<@, @>) do the
// ancestor/descendant work; the GiST index keeps them sub-linear.
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// GetByID retrieves a folder by ID within a tenant
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, tenantID string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, tenant_id, parent_id, name, path::text, created_at, updated_at
		FROM %s
		WHERE id = $1 AND tenant_id = $2
	`, r.tables.Folders)

	var folder models.Folder
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, tenantID).Scan(
		&folder.ID,
		&folder.TenantID,
		&folder.ParentID,
		&folder.Name,
		&folder.Path,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// GetPath returns a folder's materialized path
func (r *PostgresFolderRepository) GetPath(ctx context.Context, id, tenantID string) (string, error) {
	query := fmt.Sprintf(`
		SELECT path::text
		FROM %s
		WHERE id = $1 AND tenant_id = $2
	`, r.tables.Folders)

	var path string
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, tenantID).Scan(&path)
	if err != nil {
		if isPgNoRowsError(err) {
			return "", fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return "", fmt.Errorf("get folder path: %w", err)
	}

	return path, nil
}

// ListChildren lists immediate child folders, name ascending
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, parentID, tenantID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, tenant_id, parent_id, name, path::text, created_at, updated_at
		FROM %s
		WHERE tenant_id = $1 AND parent_id = $2
		ORDER BY name ASC
	`, r.tables.Folders)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, tenantID, parentID)
	if err != nil {
		return nil, fmt.Errorf("list folder children: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		err := rows.Scan(
			&folder.ID,
			&folder.TenantID,
			&folder.ParentID,
			&folder.Name,
			&folder.Path,
			&folder.CreatedAt,
			&folder.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// ListDescendants returns every folder contained by pivotPath with depth
// relative to the pivot. Ordering by path yields a pre-order traversal
// because labels encode ancestry level by level.
func (r *PostgresFolderRepository) ListDescendants(ctx context.Context, pivotPath, tenantID, excludeID string) ([]models.TreeNode, error) {
	var query string
	var args []interface{}

	if excludeID == "" {
		query = fmt.Sprintf(`
			SELECT id, name, path::text, (nlevel(path) - nlevel($2::ltree))::int AS depth
			FROM %s
			WHERE tenant_id = $1 AND path <@ $2::ltree
			ORDER BY path ASC
		`, r.tables.Folders)
		args = append(args, tenantID, pivotPath)
	} else {
		query = fmt.Sprintf(`
			SELECT id, name, path::text, (nlevel(path) - nlevel($2::ltree))::int AS depth
			FROM %s
			WHERE tenant_id = $1 AND path <@ $2::ltree AND id <> $3
			ORDER BY path ASC
		`, r.tables.Folders)
		args = append(args, tenantID, pivotPath, excludeID)
	}

	return r.queryTreeNodes(ctx, query, args...)
}

// ListAncestors returns every folder whose path contains pivotPath, depth
// ascending: tenant root first, the pivot itself last.
func (r *PostgresFolderRepository) ListAncestors(ctx context.Context, pivotPath, tenantID string) ([]models.TreeNode, error) {
	query := fmt.Sprintf(`
		SELECT id, name, path::text, nlevel(path)::int AS depth
		FROM %s
		WHERE tenant_id = $1 AND path @> $2::ltree
		ORDER BY depth ASC
	`, r.tables.Folders)

	return r.queryTreeNodes(ctx, query, tenantID, pivotPath)
}

// Insert creates a folder row
func (r *PostgresFolderRepository) Insert(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, tenant_id, parent_id, name, path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::ltree, $6, $7)
	`, r.tables.Folders)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		folder.ID,
		folder.TenantID,
		folder.ParentID,
		folder.Name,
		folder.Path,
		folder.CreatedAt,
		folder.UpdatedAt,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("folder '%s': %w", folder.Name, domain.ErrConflict)
		}
		return fmt.Errorf("insert folder: %w", err)
	}

	return nil
}

// UpdateName renames a folder in place. The path column is deliberately not
// touched: path segments encode ids, so renames never cascade.
func (r *PostgresFolderRepository) UpdateName(ctx context.Context, id, tenantID, name string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $3, updated_at = $4
		WHERE id = $1 AND tenant_id = $2
		RETURNING id, tenant_id, parent_id, name, path::text, created_at, updated_at
	`, r.tables.Folders)

	var folder models.Folder
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, tenantID, name, time.Now()).Scan(
		&folder.ID,
		&folder.TenantID,
		&folder.ParentID,
		&folder.Name,
		&folder.Path,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		if isPgDuplicateError(err) {
			return nil, fmt.Errorf("folder '%s': %w", name, domain.ErrConflict)
		}
		return nil, fmt.Errorf("update folder name: %w", err)
	}

	return &folder, nil
}

// DeleteByPathPrefix removes the folder at pivotPath and everything below it
func (r *PostgresFolderRepository) DeleteByPathPrefix(ctx context.Context, pivotPath, tenantID string) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE tenant_id = $1 AND path <@ $2::ltree
	`, r.tables.Folders)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, tenantID, pivotPath)
	if err != nil {
		return 0, fmt.Errorf("delete folder subtree: %w", err)
	}

	return result.RowsAffected(), nil
}

// ExistsSibling reports whether parentID already has a child named name
func (r *PostgresFolderRepository) ExistsSibling(ctx context.Context, parentID, tenantID, name, excludeID string) (bool, error) {
	var query string
	var args []interface{}

	if excludeID == "" {
		query = fmt.Sprintf(`
			SELECT EXISTS (
				SELECT 1 FROM %s
				WHERE tenant_id = $1 AND parent_id = $2 AND name = $3
			)
		`, r.tables.Folders)
		args = append(args, tenantID, parentID, name)
	} else {
		query = fmt.Sprintf(`
			SELECT EXISTS (
				SELECT 1 FROM %s
				WHERE tenant_id = $1 AND parent_id = $2 AND name = $3 AND id <> $4
			)
		`, r.tables.Folders)
		args = append(args, tenantID, parentID, name, excludeID)
	}

	var exists bool
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check sibling name: %w", err)
	}

	return exists, nil
}

// queryTreeNodes runs a query returning (id, name, path, depth) rows
func (r *PostgresFolderRepository) queryTreeNodes(ctx context.Context, query string, args ...interface{}) ([]models.TreeNode, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tree nodes: %w", err)
	}
	defer rows.Close()

	var nodes []models.TreeNode
	for rows.Next() {
		var node models.TreeNode
		if err := rows.Scan(&node.ID, &node.Name, &node.Path, &node.Depth); err != nil {
			return nil, fmt.Errorf("scan tree node: %w", err)
		}
		nodes = append(nodes, node)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tree nodes: %w", err)
	}

	return nodes, nil
}
