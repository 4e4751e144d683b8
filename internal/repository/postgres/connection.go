package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Tenants      string
	Folders      string
	Files        string
	FileVersions string
	Memberships  string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Tenants:      fmt.Sprintf("%stenants", prefix),
		Folders:      fmt.Sprintf("%sfolders", prefix),
		Files:        fmt.Sprintf("%sfiles", prefix),
		FileVersions: fmt.Sprintf("%sfile_versions", prefix),
		Memberships:  fmt.Sprintf("%smemberships", prefix),
	}
}

// CreateConnectionPool creates a new pgx connection pool.
//
// By default pgx uses prepared statements (QueryExecModeCacheStatement).
// PgBouncer in transaction pooling mode (port 6543 on managed providers)
// does not support prepared statements, so when that port is detected the
// pool falls back to QueryExecModeCacheDescribe, which still uses the
// extended protocol but caches statement descriptions instead of prepared
// statements. An explicit default_query_exec_mode in the connection string
// takes precedence over the auto-detection.
//
// Dynamic table prefixes (dev_, test_, prod_) are interpolated into the SQL
// before it reaches the database, so each environment gets its own
// statements and the interpolation never mixes with user input.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the appropriate query executor for the context.
// If a transaction is present in the context, it returns the transaction.
// Otherwise, it returns the provided pool.
// This enables repositories to automatically participate in transactions when they exist.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
