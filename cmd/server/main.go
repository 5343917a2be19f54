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

	"filedex/internal/config"
	"filedex/internal/handler"
	"filedex/internal/middleware"
	"filedex/internal/repository/postgres"
	postgresCatalog "filedex/internal/repository/postgres/catalog"
	serviceCatalog "filedex/internal/service/catalog"
	"filedex/internal/storage"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.MaxLogFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
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

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgresCatalog.NewFolderRepository(repoConfig)
	fileRepo := postgresCatalog.NewFileRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Select the byte-store backend
	store, err := setupStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to set up storage backend: %v", err)
	}
	logger.Info("storage backend ready", "backend", cfg.StorageBackend)

	// Create services
	folderService := serviceCatalog.NewFolderService(folderRepo, fileRepo, txManager, logger)
	fileService := serviceCatalog.NewFileService(fileRepo, folderRepo, txManager, store, logger)
	searchService := serviceCatalog.NewSearchService(folderRepo, fileRepo, logger)

	// Create handlers
	policy := handler.UploadPolicy{
		MaxSizeBytes: cfg.MaxUploadBytes,
		AllowedMIME:  cfg.AllowedMIME,
	}
	folderHandler := handler.NewFolderHandler(folderService, logger)
	fileHandler := handler.NewFileHandler(fileService, store, policy, logger)
	searchHandler := handler.NewSearchHandler(searchService, logger)
	healthHandler := handler.NewHealthHandler(pool)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", healthHandler.Check)

	// Folder routes. Literal segments (resolve, search, bulk) take precedence
	// over the {id} wildcard in ServeMux pattern matching.
	mux.HandleFunc("GET /api/folders", folderHandler.ListFolders)
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/resolve", folderHandler.ResolvePath)
	mux.HandleFunc("POST /api/folders/search", folderHandler.SearchFolders)
	mux.HandleFunc("POST /api/folders/bulk", folderHandler.CreateBulk)
	mux.HandleFunc("PUT /api/folders/bulk", folderHandler.UpdateBulk)
	mux.HandleFunc("DELETE /api/folders/bulk", folderHandler.DeleteBulk)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PUT /api/folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)
	mux.HandleFunc("GET /api/folders/{id}/subfolders", folderHandler.GetSubfolders)
	mux.HandleFunc("GET /api/folders/{id}/contents", folderHandler.GetContents)

	// File routes
	mux.HandleFunc("GET /api/files", fileHandler.ListFiles)
	mux.HandleFunc("POST /api/files", fileHandler.CreateFile)
	mux.HandleFunc("POST /api/files/upload", fileHandler.Upload)
	mux.HandleFunc("POST /api/files/search", fileHandler.SearchFiles)
	mux.HandleFunc("POST /api/files/bulk", fileHandler.CreateBulk)
	mux.HandleFunc("PUT /api/files/bulk", fileHandler.UpdateBulk)
	mux.HandleFunc("DELETE /api/files/bulk", fileHandler.DeleteBulk)
	mux.HandleFunc("GET /api/files/folder/{folderId}", fileHandler.ListByFolder)
	mux.HandleFunc("GET /api/files/{id}", fileHandler.GetFile)
	mux.HandleFunc("PUT /api/files/{id}", fileHandler.UpdateFile)
	mux.HandleFunc("DELETE /api/files/{id}", fileHandler.DeleteFile)

	// Cross-kind search
	mux.HandleFunc("POST /api/items/search", searchHandler.SearchItems)

	// Build middleware chain (applied in reverse order, they wrap each other)
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLogger(logger)(h)

	// CORS - outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
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

// setupStorage picks the byte-store backend from configuration
func setupStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if cfg.StorageBackend == "minio" {
		return storage.NewMinIOStorage(ctx, &cfg.MinIO)
	}
	return storage.NewLocalStorage(cfg.UploadDir)
}
