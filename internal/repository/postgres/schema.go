package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateSchema creates the tables and indexes this backend needs. Idempotent,
// used by cmd/seed and integration environments.
//
// The unique indexes are the race-safety backstop behind the application
// level sibling pre-checks: two concurrent creates of the same name can race
// past the pre-check, but only one insert survives the constraint.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS ltree`,

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id uuid PRIMARY KEY,
				name text NOT NULL UNIQUE,
				root_folder_id uuid UNIQUE,
				created_at timestamptz NOT NULL DEFAULT now(),
				updated_at timestamptz NOT NULL DEFAULT now()
			)
		`, tables.Tenants),

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id uuid PRIMARY KEY,
				tenant_id uuid NOT NULL REFERENCES %s (id),
				parent_id uuid REFERENCES %s (id),
				name text NOT NULL,
				path ltree NOT NULL,
				created_at timestamptz NOT NULL DEFAULT now(),
				updated_at timestamptz NOT NULL DEFAULT now()
			)
		`, tables.Folders, tables.Tenants, tables.Folders),

		// Sibling names are unique per tenant; a tenant has exactly one
		// root (parent_id IS NULL) row.
		fmt.Sprintf(`
			CREATE UNIQUE INDEX IF NOT EXISTS %s_sibling_name_key
			ON %s (tenant_id, parent_id, name) WHERE parent_id IS NOT NULL
		`, tables.Folders, tables.Folders),
		fmt.Sprintf(`
			CREATE UNIQUE INDEX IF NOT EXISTS %s_root_key
			ON %s (tenant_id) WHERE parent_id IS NULL
		`, tables.Folders, tables.Folders),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS %s_path_gist ON %s USING GIST (path)
		`, tables.Folders, tables.Folders),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS %s_tenant_parent_idx ON %s (tenant_id, parent_id)
		`, tables.Folders, tables.Folders),

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id uuid PRIMARY KEY,
				tenant_id uuid NOT NULL REFERENCES %s (id),
				folder_id uuid NOT NULL REFERENCES %s (id),
				name text NOT NULL,
				size bigint NOT NULL DEFAULT 0,
				content_type text NOT NULL DEFAULT '',
				storage_key text NOT NULL,
				created_at timestamptz NOT NULL DEFAULT now(),
				updated_at timestamptz NOT NULL DEFAULT now(),
				UNIQUE (tenant_id, folder_id, name)
			)
		`, tables.Files, tables.Tenants, tables.Folders),

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id uuid PRIMARY KEY,
				file_id uuid NOT NULL REFERENCES %s (id),
				version_no int NOT NULL,
				size bigint NOT NULL DEFAULT 0,
				storage_key text NOT NULL,
				created_at timestamptz NOT NULL DEFAULT now(),
				UNIQUE (file_id, version_no)
			)
		`, tables.FileVersions, tables.Files),

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id uuid PRIMARY KEY,
				tenant_id uuid NOT NULL REFERENCES %s (id),
				user_id uuid NOT NULL,
				role text NOT NULL,
				created_at timestamptz NOT NULL DEFAULT now(),
				UNIQUE (tenant_id, user_id)
			)
		`, tables.Memberships, tables.Tenants),

		// The root folder reference is cleared when folders go away during
		// tenant deletion, so the circular tenant<->folder reference never
		// blocks the delete.
		fmt.Sprintf(`
			DO $$ BEGIN
				ALTER TABLE %s
					ADD CONSTRAINT %s_root_folder_fkey
					FOREIGN KEY (root_folder_id) REFERENCES %s (id) ON DELETE SET NULL;
			EXCEPTION WHEN duplicate_object THEN NULL;
			END $$
		`, tables.Tenants, tables.Tenants, tables.Folders),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	return nil
}
