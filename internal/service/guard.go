package service

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

//go:embed roles.yaml
var rolesFile []byte

type roleTable struct {
	Roles []struct {
		Name models.Role `yaml:"name"`
		Rank int         `yaml:"rank"`
	} `yaml:"roles"`
}

type membershipGuard struct {
	membershipRepo repositories.MembershipRepository
	ranks          map[models.Role]int
	logger         *slog.Logger
}

// NewAccessGuard creates a membership-backed AccessGuard. Role ordering
// comes from the embedded role table.
//
// Denials never say why: a missing membership and an insufficient role both
// come back as ErrForbidden, so callers cannot probe whether a tenant exists.
func NewAccessGuard(membershipRepo repositories.MembershipRepository, logger *slog.Logger) (services.AccessGuard, error) {
	var table roleTable
	if err := yaml.Unmarshal(rolesFile, &table); err != nil {
		return nil, fmt.Errorf("parse role table: %w", err)
	}

	ranks := make(map[models.Role]int, len(table.Roles))
	for _, r := range table.Roles {
		ranks[r.Name] = r.Rank
	}
	if len(ranks) == 0 {
		return nil, errors.New("role table is empty")
	}

	return &membershipGuard{
		membershipRepo: membershipRepo,
		ranks:          ranks,
		logger:         logger,
	}, nil
}

// CheckTenantAccess returns nil when the actor holds at least min in the tenant
func (g *membershipGuard) CheckTenantAccess(ctx context.Context, actorID, tenantID string, min models.Role) error {
	if actorID == "" || tenantID == "" {
		return fmt.Errorf("%w: access denied", domain.ErrForbidden)
	}

	role, err := g.membershipRepo.GetRole(ctx, actorID, tenantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			g.logger.Debug("access denied: no membership", "actor_id", actorID, "tenant_id", tenantID)
			return fmt.Errorf("%w: access denied", domain.ErrForbidden)
		}
		return err
	}

	minRank, ok := g.ranks[min]
	if !ok {
		return fmt.Errorf("unknown minimum role %q", min)
	}
	if g.ranks[role] < minRank {
		g.logger.Debug("access denied: insufficient role",
			"actor_id", actorID,
			"tenant_id", tenantID,
			"role", role,
			"required", min,
		)
		return fmt.Errorf("%w: access denied", domain.ErrForbidden)
	}

	return nil
}
