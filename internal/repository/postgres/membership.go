package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

// PostgresMembershipRepository implements the MembershipRepository interface
type PostgresMembershipRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(config *RepositoryConfig) repositories.MembershipRepository {
	return &PostgresMembershipRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Insert creates a membership
func (r *PostgresMembershipRepository) Insert(ctx context.Context, membership *models.Membership) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, tenant_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.Memberships)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		membership.ID,
		membership.TenantID,
		membership.UserID,
		membership.Role,
		membership.CreatedAt,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("membership for user %s: %w", membership.UserID, domain.ErrConflict)
		}
		return fmt.Errorf("insert membership: %w", err)
	}

	return nil
}

// GetRole returns the actor's role in a tenant
func (r *PostgresMembershipRepository) GetRole(ctx context.Context, userID, tenantID string) (models.Role, error) {
	query := fmt.Sprintf(`
		SELECT role
		FROM %s
		WHERE user_id = $1 AND tenant_id = $2
	`, r.tables.Memberships)

	var role models.Role
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, userID, tenantID).Scan(&role)
	if err != nil {
		if isPgNoRowsError(err) {
			return "", fmt.Errorf("membership of user %s: %w", userID, domain.ErrNotFound)
		}
		return "", fmt.Errorf("get membership role: %w", err)
	}

	return role, nil
}

// DeleteByTenant removes every membership of a tenant
func (r *PostgresMembershipRepository) DeleteByTenant(ctx context.Context, tenantID string) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE tenant_id = $1
	`, r.tables.Memberships)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, tenantID)
	if err != nil {
		return 0, fmt.Errorf("delete tenant memberships: %w", err)
	}

	return result.RowsAffected(), nil
}
