package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"docvault/internal/config"
	"docvault/internal/domain/services"
	"docvault/internal/repository/postgres"
	"docvault/internal/service"
)

// Creates the schema and, with -demo, a small example tenant: a root with a
// Reports/2026 branch and one file, enough to poke at the tree endpoints.
func main() {
	demo := flag.Bool("demo", false, "seed demo data after creating the schema")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if err := postgres.CreateSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	logger.Info("schema created", "table_prefix", cfg.TablePrefix)

	if !*demo {
		return
	}

	repoConfig := &postgres.RepositoryConfig{Pool: pool, Tables: tables, Logger: logger}
	tenantRepo := postgres.NewTenantRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	fileRepo := postgres.NewFileRepository(repoConfig)
	membershipRepo := postgres.NewMembershipRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	guard, err := service.NewAccessGuard(membershipRepo, logger)
	if err != nil {
		log.Fatalf("Failed to create access guard: %v", err)
	}
	tenantService := service.NewTenantService(tenantRepo, folderRepo, fileRepo, membershipRepo, guard, txManager, logger)
	treeService := service.NewTreeService(folderRepo, fileRepo, guard, txManager, logger)
	fileService := service.NewFileService(fileRepo, folderRepo, guard, txManager, logger)

	actorID := uuid.NewString()
	tenant, err := tenantService.CreateTenant(ctx, &services.CreateTenantRequest{
		Name:    "Acme",
		ActorID: actorID,
	})
	if err != nil {
		log.Fatalf("Failed to create demo tenant: %v", err)
	}

	reports, err := treeService.CreateSubfolder(ctx, &services.CreateFolderRequest{
		TenantID: tenant.ID,
		ParentID: *tenant.RootFolderID,
		Name:     "Reports",
		ActorID:  actorID,
	})
	if err != nil {
		log.Fatalf("Failed to create demo folder: %v", err)
	}

	year, err := treeService.CreateSubfolder(ctx, &services.CreateFolderRequest{
		TenantID: tenant.ID,
		ParentID: reports.ID,
		Name:     "2026",
		ActorID:  actorID,
	})
	if err != nil {
		log.Fatalf("Failed to create demo folder: %v", err)
	}

	_, err = fileService.CreateFile(ctx, &services.CreateFileRequest{
		TenantID:    tenant.ID,
		FolderID:    year.ID,
		Name:        "q1.pdf",
		Size:        4096,
		ContentType: "application/pdf",
		StorageKey:  "demo/" + tenant.ID + "/q1.pdf",
		ActorID:     actorID,
	})
	if err != nil {
		log.Fatalf("Failed to create demo file: %v", err)
	}

	logger.Info("demo data seeded",
		"tenant_id", tenant.ID,
		"actor_id", actorID,
		"root_folder_id", *tenant.RootFolderID,
	)
}
