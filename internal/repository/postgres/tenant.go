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

// PostgresTenantRepository implements the TenantRepository interface
type PostgresTenantRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(config *RepositoryConfig) repositories.TenantRepository {
	return &PostgresTenantRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Insert creates a tenant row
func (r *PostgresTenantRepository) Insert(ctx context.Context, tenant *models.Tenant) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, root_folder_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.Tenants)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		tenant.ID,
		tenant.Name,
		tenant.RootFolderID,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("tenant '%s': %w", tenant.Name, domain.ErrConflict)
		}
		return fmt.Errorf("insert tenant: %w", err)
	}

	return nil
}

// GetByID retrieves a tenant by ID
func (r *PostgresTenantRepository) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	query := fmt.Sprintf(`
		SELECT id, name, root_folder_id, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Tenants)

	var tenant models.Tenant
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.RootFolderID,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("tenant %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}

	return &tenant, nil
}

// SetRootFolder binds the provisioned root folder to the tenant
func (r *PostgresTenantRepository) SetRootFolder(ctx context.Context, id, rootFolderID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET root_folder_id = $2, updated_at = $3
		WHERE id = $1
	`, r.tables.Tenants)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id, rootFolderID, time.Now())
	if err != nil {
		return fmt.Errorf("set tenant root folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tenant %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// UpdateName renames a tenant
func (r *PostgresTenantRepository) UpdateName(ctx context.Context, id, name string) (*models.Tenant, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $2, updated_at = $3
		WHERE id = $1
		RETURNING id, name, root_folder_id, created_at, updated_at
	`, r.tables.Tenants)

	var tenant models.Tenant
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, name, time.Now()).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.RootFolderID,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("tenant %s: %w", id, domain.ErrNotFound)
		}
		if isPgDuplicateError(err) {
			return nil, fmt.Errorf("tenant '%s': %w", name, domain.ErrConflict)
		}
		return nil, fmt.Errorf("update tenant name: %w", err)
	}

	return &tenant, nil
}

// Delete removes the tenant row
func (r *PostgresTenantRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Tenants)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("tenant %s still owns rows: %w", id, domain.ErrConflict)
		}
		return fmt.Errorf("delete tenant: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tenant %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
