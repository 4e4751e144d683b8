package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"docvault/internal/auth"
	"docvault/internal/config"
	"docvault/internal/handler"
	"docvault/internal/middleware"
	"docvault/internal/repository/postgres"
	"docvault/internal/service"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		f, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer f.Close()
		logOut = io.MultiWriter(os.Stdout, f)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier
	verifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer verifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	tenantRepo := postgres.NewTenantRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	fileRepo := postgres.NewFileRepository(repoConfig)
	membershipRepo := postgres.NewMembershipRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Create services
	guard, err := service.NewAccessGuard(membershipRepo, logger)
	if err != nil {
		log.Fatalf("Failed to create access guard: %v", err)
	}
	treeService := service.NewTreeService(folderRepo, fileRepo, guard, txManager, logger)
	tenantService := service.NewTenantService(tenantRepo, folderRepo, fileRepo, membershipRepo, guard, txManager, logger)
	fileService := service.NewFileService(fileRepo, folderRepo, guard, txManager, logger)

	// Create handlers
	tenantHandler := handler.NewTenantHandler(tenantService, logger)
	folderHandler := handler.NewFolderHandler(treeService, logger)
	fileHandler := handler.NewFileHandler(fileService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.Health)

	// Tenant routes
	mux.HandleFunc("POST /api/tenants", tenantHandler.CreateTenant)
	mux.HandleFunc("GET /api/tenants/{id}", tenantHandler.GetTenant)
	mux.HandleFunc("PATCH /api/tenants/{id}", tenantHandler.RenameTenant)
	mux.HandleFunc("DELETE /api/tenants/{id}", tenantHandler.DeleteTenant)

	// Folder routes (tenant scope comes from the X-Tenant-ID header)
	mux.HandleFunc("POST /api/folders/{id}/children", folderHandler.CreateSubfolder)
	mux.HandleFunc("GET /api/folders/{id}/children", folderHandler.ListChildren)
	mux.HandleFunc("GET /api/folders/{id}/descendants", folderHandler.ListDescendants)
	mux.HandleFunc("GET /api/folders/{id}/ancestors", folderHandler.ListAncestors)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.RenameFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteSubtree)

	// File metadata routes
	mux.HandleFunc("POST /api/folders/{id}/files", fileHandler.CreateFile)
	mux.HandleFunc("GET /api/folders/{id}/files", fileHandler.ListFiles)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Tenant → Routes
	h = middleware.Tenant("/health", "/api/tenants")(h)
	h = middleware.Auth(verifier)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.TenantHeader},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
