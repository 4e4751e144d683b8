package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *RepositoryConfig) repositories.FileRepository {
	return &PostgresFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a file row and its first version
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, tenant_id, folder_id, name, size, content_type, storage_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.Files)

	exec := GetExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, query,
		file.ID,
		file.TenantID,
		file.FolderID,
		file.Name,
		file.Size,
		file.ContentType,
		file.StorageKey,
		file.CreatedAt,
		file.UpdatedAt,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("file '%s': %w", file.Name, domain.ErrConflict)
		}
		if isPgForeignKeyError(err) {
			return fmt.Errorf("folder %s: %w", file.FolderID, domain.ErrNotFound)
		}
		return fmt.Errorf("create file: %w", err)
	}

	versionQuery := fmt.Sprintf(`
		INSERT INTO %s (id, file_id, version_no, size, storage_key, created_at)
		VALUES (gen_random_uuid(), $1, 1, $2, $3, $4)
	`, r.tables.FileVersions)

	if _, err := exec.Exec(ctx, versionQuery, file.ID, file.Size, file.StorageKey, file.CreatedAt); err != nil {
		return fmt.Errorf("create file version: %w", err)
	}

	return nil
}

// GetByID retrieves a file by ID within a tenant
func (r *PostgresFileRepository) GetByID(ctx context.Context, id, tenantID string) (*models.File, error) {
	query := fmt.Sprintf(`
		SELECT id, tenant_id, folder_id, name, size, content_type, storage_key, created_at, updated_at
		FROM %s
		WHERE id = $1 AND tenant_id = $2
	`, r.tables.Files)

	var file models.File
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, tenantID).Scan(
		&file.ID,
		&file.TenantID,
		&file.FolderID,
		&file.Name,
		&file.Size,
		&file.ContentType,
		&file.StorageKey,
		&file.CreatedAt,
		&file.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	return &file, nil
}

// ListByFolder lists files in one folder, name ascending
func (r *PostgresFileRepository) ListByFolder(ctx context.Context, folderID, tenantID string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT id, tenant_id, folder_id, name, size, content_type, storage_key, created_at, updated_at
		FROM %s
		WHERE tenant_id = $1 AND folder_id = $2
		ORDER BY name ASC
	`, r.tables.Files)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, tenantID, folderID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		var file models.File
		err := rows.Scan(
			&file.ID,
			&file.TenantID,
			&file.FolderID,
			&file.Name,
			&file.Size,
			&file.ContentType,
			&file.StorageKey,
			&file.CreatedAt,
			&file.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return files, nil
}

// ListVersions lists a file's versions, newest first
func (r *PostgresFileRepository) ListVersions(ctx context.Context, fileID, tenantID string) ([]models.FileVersion, error) {
	query := fmt.Sprintf(`
		SELECT v.id, v.file_id, v.version_no, v.size, v.storage_key, v.created_at
		FROM %s v
		JOIN %s f ON f.id = v.file_id
		WHERE v.file_id = $1 AND f.tenant_id = $2
		ORDER BY v.version_no DESC
	`, r.tables.FileVersions, r.tables.Files)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, fileID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list file versions: %w", err)
	}
	defer rows.Close()

	var versions []models.FileVersion
	for rows.Next() {
		var v models.FileVersion
		if err := rows.Scan(&v.ID, &v.FileID, &v.VersionNo, &v.Size, &v.StorageKey, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan file version: %w", err)
		}
		versions = append(versions, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate file versions: %w", err)
	}

	return versions, nil
}

// DeleteByFolderPathPrefix removes versions and files for every folder whose
// path is contained by pivotPath. Versions go first so the file FK never
// dangles mid-transaction.
func (r *PostgresFileRepository) DeleteByFolderPathPrefix(ctx context.Context, pivotPath, tenantID string) (int64, error) {
	exec := GetExecutor(ctx, r.pool)

	versionQuery := fmt.Sprintf(`
		DELETE FROM %s v
		USING %s f, %s fo
		WHERE v.file_id = f.id
		  AND f.folder_id = fo.id
		  AND f.tenant_id = $1
		  AND fo.path <@ $2::ltree
	`, r.tables.FileVersions, r.tables.Files, r.tables.Folders)

	if _, err := exec.Exec(ctx, versionQuery, tenantID, pivotPath); err != nil {
		return 0, fmt.Errorf("delete file versions in subtree: %w", err)
	}

	fileQuery := fmt.Sprintf(`
		DELETE FROM %s f
		USING %s fo
		WHERE f.folder_id = fo.id
		  AND f.tenant_id = $1
		  AND fo.path <@ $2::ltree
	`, r.tables.Files, r.tables.Folders)

	result, err := exec.Exec(ctx, fileQuery, tenantID, pivotPath)
	if err != nil {
		return 0, fmt.Errorf("delete files in subtree: %w", err)
	}

	return result.RowsAffected(), nil
}
