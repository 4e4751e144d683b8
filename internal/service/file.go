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
)

type fileService struct {
	fileRepo   repositories.FileRepository
	folderRepo repositories.FolderRepository
	guard      services.AccessGuard
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewFileService creates the file metadata service
func NewFileService(
	fileRepo repositories.FileRepository,
	folderRepo repositories.FolderRepository,
	guard services.AccessGuard,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.FileService {
	return &fileService{
		fileRepo:   fileRepo,
		folderRepo: folderRepo,
		guard:      guard,
		txManager:  txManager,
		logger:     logger,
	}
}

// CreateFile registers file metadata in a folder. The file row and its first
// version row land in one transaction; neither is observable without the other.
func (s *fileService) CreateFile(ctx context.Context, req *services.CreateFileRequest) (*models.File, error) {
	if err := s.guard.CheckTenantAccess(ctx, req.ActorID, req.TenantID, models.RoleMember); err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folderRepo.GetByID(ctx, req.FolderID, req.TenantID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	file := &models.File{
		ID:          uuid.NewString(),
		TenantID:    req.TenantID,
		FolderID:    folder.ID,
		Name:        req.Name,
		Size:        req.Size,
		ContentType: req.ContentType,
		StorageKey:  req.StorageKey,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.fileRepo.Create(txCtx, file)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("file created",
		"id", file.ID,
		"name", file.Name,
		"tenant_id", file.TenantID,
		"folder_id", file.FolderID,
	)

	return file, nil
}

// ListFiles lists files in a folder, name ascending
func (s *fileService) ListFiles(ctx context.Context, tenantID, folderID string) ([]models.File, error) {
	if _, err := s.folderRepo.GetPath(ctx, folderID, tenantID); err != nil {
		return nil, err
	}

	return s.fileRepo.ListByFolder(ctx, folderID, tenantID)
}

// validateCreateRequest validates a file metadata creation request
func (s *fileService) validateCreateRequest(req *services.CreateFileRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.TenantID, validation.Required),
		validation.Field(&req.FolderID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFileNameLength),
		),
		validation.Field(&req.StorageKey, validation.Required),
		validation.Field(&req.Size, validation.Min(int64(0))),
	)
}
