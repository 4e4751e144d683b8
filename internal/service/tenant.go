package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"docvault/internal/config"
	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
	"docvault/internal/pathtree"
)

type tenantService struct {
	tenantRepo     repositories.TenantRepository
	folderRepo     repositories.FolderRepository
	fileRepo       repositories.FileRepository
	membershipRepo repositories.MembershipRepository
	guard          services.AccessGuard
	txManager      repositories.TransactionManager
	logger         *slog.Logger
}

// NewTenantService creates the tenant service
func NewTenantService(
	tenantRepo repositories.TenantRepository,
	folderRepo repositories.FolderRepository,
	fileRepo repositories.FileRepository,
	membershipRepo repositories.MembershipRepository,
	guard services.AccessGuard,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.TenantService {
	return &tenantService{
		tenantRepo:     tenantRepo,
		folderRepo:     folderRepo,
		fileRepo:       fileRepo,
		membershipRepo: membershipRepo,
		guard:          guard,
		txManager:      txManager,
		logger:         logger,
	}
}

// CreateTenant provisions a tenant, its root folder and the creator's admin
// membership in one transaction. A tenant without a bound root folder, or a
// root folder whose tenant does not point back at it, is never observable.
//
// The root folder's path is seeded from the tenant's own id: no folder id
// exists yet when the path has to be decided, and the tenant id is just as
// unique and just as encodable.
func (s *tenantService) CreateTenant(ctx context.Context, req *services.CreateTenantRequest) (*models.Tenant, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	tenantID := uuid.NewString()
	rootSegment, err := pathtree.EncodeSegment(tenantID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tenant := &models.Tenant{
		ID:        tenantID,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	root := &models.Folder{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		ParentID:  nil,
		Name:      req.Name,
		Path:      pathtree.ComposePath("", rootSegment),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.tenantRepo.Insert(txCtx, tenant); err != nil {
			return err
		}
		if err := s.folderRepo.Insert(txCtx, root); err != nil {
			return err
		}
		if err := s.tenantRepo.SetRootFolder(txCtx, tenant.ID, root.ID); err != nil {
			return err
		}
		return s.membershipRepo.Insert(txCtx, &models.Membership{
			ID:        uuid.NewString(),
			TenantID:  tenant.ID,
			UserID:    req.ActorID,
			Role:      models.RoleAdmin,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	tenant.RootFolderID = &root.ID

	s.logger.Info("tenant created",
		"id", tenant.ID,
		"name", tenant.Name,
		"root_folder_id", root.ID,
		"actor_id", req.ActorID,
	)

	return tenant, nil
}

// GetTenant retrieves a tenant by ID
func (s *tenantService) GetTenant(ctx context.Context, id string) (*models.Tenant, error) {
	return s.tenantRepo.GetByID(ctx, id)
}

// RenameTenant renames a tenant
func (s *tenantService) RenameTenant(ctx context.Context, req *services.RenameTenantRequest) (*models.Tenant, error) {
	if err := s.guard.CheckTenantAccess(ctx, req.ActorID, req.TenantID, models.RoleAdmin); err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Validate(req.Name,
		validation.Required,
		validation.Length(1, config.MaxTenantNameLength),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	tenant, err := s.tenantRepo.UpdateName(ctx, req.TenantID, req.Name)
	if err != nil {
		return nil, err
	}

	s.logger.Info("tenant renamed", "id", tenant.ID, "name", tenant.Name)

	return tenant, nil
}

// DeleteTenant removes the tenant and everything it owns in one transaction:
// file versions, files, folders (root included), memberships, the tenant row.
func (s *tenantService) DeleteTenant(ctx context.Context, req *services.DeleteTenantRequest) error {
	if err := s.guard.CheckTenantAccess(ctx, req.ActorID, req.TenantID, models.RoleAdmin); err != nil {
		return err
	}

	tenant, err := s.tenantRepo.GetByID(ctx, req.TenantID)
	if err != nil {
		return err
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if tenant.RootFolderID != nil {
			rootPath, err := s.folderRepo.GetPath(txCtx, *tenant.RootFolderID, tenant.ID)
			if err != nil {
				return err
			}
			if _, err := s.fileRepo.DeleteByFolderPathPrefix(txCtx, rootPath, tenant.ID); err != nil {
				return err
			}
			if _, err := s.folderRepo.DeleteByPathPrefix(txCtx, rootPath, tenant.ID); err != nil {
				return err
			}
		}
		if _, err := s.membershipRepo.DeleteByTenant(txCtx, tenant.ID); err != nil {
			return err
		}
		return s.tenantRepo.Delete(txCtx, tenant.ID)
	})
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}

	s.logger.Info("tenant deleted", "id", tenant.ID, "name", tenant.Name, "actor_id", req.ActorID)

	return nil
}

// validateCreateRequest validates a tenant creation request
func (s *tenantService) validateCreateRequest(req *services.CreateTenantRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxTenantNameLength),
		),
		validation.Field(&req.ActorID, validation.Required),
	)
}
