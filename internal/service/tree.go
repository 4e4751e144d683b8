package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
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

var folderNamePattern = regexp.MustCompile(`^[^/]+$`)

type treeService struct {
	folderRepo repositories.FolderRepository
	fileRepo   repositories.FileRepository
	guard      services.AccessGuard
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewTreeService creates the tree service. All structural writes to the
// folder table go through here.
func NewTreeService(
	folderRepo repositories.FolderRepository,
	fileRepo repositories.FileRepository,
	guard services.AccessGuard,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.TreeService {
	return &treeService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		guard:      guard,
		txManager:  txManager,
		logger:     logger,
	}
}

// CreateSubfolder creates a folder under an existing parent.
// The sibling-name pre-check and the insert run in one transaction; the
// partial unique index closes the race the pre-check cannot, and both paths
// surface as the same conflict error.
func (s *treeService) CreateSubfolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	if err := s.guard.CheckTenantAccess(ctx, req.ActorID, req.TenantID, models.RoleMember); err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	parent, err := s.folderRepo.GetByID(ctx, req.ParentID, req.TenantID)
	if err != nil {
		return nil, fmt.Errorf("parent folder: %w", err)
	}

	id := uuid.NewString()
	segment, err := pathtree.EncodeSegment(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	folder := &models.Folder{
		ID:        id,
		TenantID:  req.TenantID,
		ParentID:  &parent.ID,
		Name:      req.Name,
		Path:      pathtree.ComposePath(parent.Path, segment),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		exists, err := s.folderRepo.ExistsSibling(txCtx, parent.ID, req.TenantID, req.Name, "")
		if err != nil {
			return err
		}
		if exists {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", req.Name),
				ResourceType: "folder",
			}
		}
		return s.folderRepo.Insert(txCtx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"tenant_id", folder.TenantID,
		"parent_id", parent.ID,
		"path", folder.Path,
	)

	return folder, nil
}

// RenameFolder renames a folder in place. The path is untouched because path
// segments encode ids, not names, which is the entire reason ids are used as
// segments: renames never rewrite descendants.
func (s *treeService) RenameFolder(ctx context.Context, req *services.RenameFolderRequest) (*models.Folder, error) {
	if err := s.guard.CheckTenantAccess(ctx, req.ActorID, req.TenantID, models.RoleMember); err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := s.validateRenameRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folderRepo.GetByID(ctx, req.FolderID, req.TenantID)
	if err != nil {
		return nil, err
	}

	// The root has no siblings; everything else checks against its parent,
	// excluding itself so renaming to the current name stays idempotent.
	if folder.ParentID != nil {
		exists, err := s.folderRepo.ExistsSibling(ctx, *folder.ParentID, req.TenantID, req.Name, folder.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", req.Name),
				ResourceType: "folder",
			}
		}
	}

	updated, err := s.folderRepo.UpdateName(ctx, req.FolderID, req.TenantID, req.Name)
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder renamed",
		"id", updated.ID,
		"name", updated.Name,
		"tenant_id", updated.TenantID,
	)

	return updated, nil
}

// DeleteSubtree removes a folder, every descendant and all their files in one
// transaction. Files go before folders so no file ever references a deleted
// folder, not even inside the transaction. Any failure rolls back the whole
// unit.
func (s *treeService) DeleteSubtree(ctx context.Context, req *services.DeleteSubtreeRequest) (*services.DeleteSubtreeResult, error) {
	// Destructive, tenant-wide: admin only.
	if err := s.guard.CheckTenantAccess(ctx, req.ActorID, req.TenantID, models.RoleAdmin); err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.GetByID(ctx, req.FolderID, req.TenantID)
	if err != nil {
		return nil, err
	}

	if folder.IsRoot() {
		return nil, &domain.RootProtectedError{FolderID: folder.ID}
	}

	var deleted int64
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.fileRepo.DeleteByFolderPathPrefix(txCtx, folder.Path, req.TenantID); err != nil {
			return err
		}
		deleted, err = s.folderRepo.DeleteByPathPrefix(txCtx, folder.Path, req.TenantID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("delete subtree: %w", err)
	}

	s.logger.Info("subtree deleted",
		"id", folder.ID,
		"name", folder.Name,
		"tenant_id", req.TenantID,
		"folders_deleted", deleted,
	)

	return &services.DeleteSubtreeResult{DeletedCount: deleted}, nil
}

// ListChildren lists immediate children of a folder, name ascending
func (s *treeService) ListChildren(ctx context.Context, tenantID, folderID string) ([]models.Folder, error) {
	// Resolve the pivot first so a missing folder is NOT_FOUND rather than
	// an empty listing.
	if _, err := s.folderRepo.GetPath(ctx, folderID, tenantID); err != nil {
		return nil, err
	}

	return s.folderRepo.ListChildren(ctx, folderID, tenantID)
}

// ListDescendants lists the subtree below the pivot, path ascending
func (s *treeService) ListDescendants(ctx context.Context, tenantID, folderID string) ([]models.TreeNode, error) {
	path, err := s.folderRepo.GetPath(ctx, folderID, tenantID)
	if err != nil {
		return nil, err
	}

	return s.folderRepo.ListDescendants(ctx, path, tenantID, folderID)
}

// ListAncestors lists the breadcrumb chain root-first, pivot last
func (s *treeService) ListAncestors(ctx context.Context, tenantID, folderID string) ([]models.TreeNode, error) {
	path, err := s.folderRepo.GetPath(ctx, folderID, tenantID)
	if err != nil {
		return nil, err
	}

	return s.folderRepo.ListAncestors(ctx, path, tenantID)
}

// validateCreateRequest validates a folder creation request
func (s *treeService) validateCreateRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.TenantID, validation.Required),
		validation.Field(&req.ParentID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
			validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
		),
	)
}

// validateRenameRequest validates a folder rename request
func (s *treeService) validateRenameRequest(req *services.RenameFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.TenantID, validation.Required),
		validation.Field(&req.FolderID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
			validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
		),
	)
}
