package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	loremgen "github.com/bozaro/golorem"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"filedex/internal/config"
	catalogSvc "filedex/internal/domain/services/catalog"
	"filedex/internal/repository/postgres"
	postgresCatalog "filedex/internal/repository/postgres/catalog"
	serviceCatalog "filedex/internal/service/catalog"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed data")
	clearData := flag.Bool("clear-data", false, "Clear all folders and files (keep schema)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *clearData {
		log.Printf("🧹 Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	if *clearData {
		log.Println("🧹 Clearing existing folders and files...")
		if err := clearCatalogData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("✅ Data cleared successfully")
		return
	}

	// Create repositories and services; seeding goes through the service layer
	// so paths are derived the same way the API derives them.
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgresCatalog.NewFolderRepository(repoConfig)
	fileRepo := postgresCatalog.NewFileRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	folderService := serviceCatalog.NewFolderService(folderRepo, fileRepo, txManager, logger)
	fileService := serviceCatalog.NewFileService(fileRepo, folderRepo, txManager, nil, logger)

	log.Println("⚠️  Clearing existing folders and files...")
	if err := clearCatalogData(ctx, pool, tables); err != nil {
		log.Printf("Warning: Could not clear data: %v", err)
	}

	log.Println("📁 Seeding folder tree...")
	if err := seedCatalog(ctx, folderService, fileService); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	log.Println("🎉 Seeding complete!")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Enable UUID extension
	_, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"")
	if err != nil {
		return err
	}

	// Create folders table
	createFolders := `
		CREATE TABLE IF NOT EXISTS ` + tables.Folders + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			parent_id UUID REFERENCES ` + tables.Folders + `(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			is_system BOOLEAN NOT NULL DEFAULT FALSE,
			is_hidden BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createFolders); err != nil {
		return err
	}

	// Create files table
	createFiles := `
		CREATE TABLE IF NOT EXISTS ` + tables.Files + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			folder_id UUID NOT NULL REFERENCES ` + tables.Folders + `(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			mime_type TEXT,
			size BIGINT NOT NULL DEFAULT 0,
			physical_path TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createFiles); err != nil {
		return err
	}

	// Create indexes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_parent_id ON ` + tables.Folders + `(parent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_name ON ` + tables.Folders + `(name)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `files_folder_id ON ` + tables.Files + `(folder_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `files_name ON ` + tables.Files + `(name)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Files,
		tables.Folders,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}

// clearCatalogData clears all files and folders
func clearCatalogData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	if _, err := pool.Exec(ctx, "DELETE FROM "+tables.Files); err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, "DELETE FROM "+tables.Folders); err != nil {
		return err
	}
	return nil
}

// seedCatalog builds a small realistic tree: fixed top-level folders, lorem
// subfolders and files underneath. Files go in via the bulk endpoint's code
// path.
func seedCatalog(ctx context.Context, folders catalogSvc.FolderService, files catalogSvc.FileService) error {
	gen := loremgen.New()

	topLevel := []string{"Documents", "Pictures", "Music", "Archive"}
	mimeTypes := []string{"text/plain", "application/pdf", "image/png", "audio/mpeg"}

	for _, name := range topLevel {
		root, err := folders.CreateFolder(ctx, &catalogSvc.CreateFolderRequest{Name: name})
		if err != nil {
			return fmt.Errorf("create top-level folder %s: %w", name, err)
		}
		log.Printf("✅ Created folder: %s", root.Path)

		// Two lorem-named subfolders per top-level folder
		subReqs := []catalogSvc.CreateFolderRequest{
			{Name: gen.Word(3, 8), ParentID: &root.ID},
			{Name: gen.Word(3, 8), ParentID: &root.ID},
		}
		subResult, err := folders.CreateBulkFolders(ctx, subReqs)
		if err != nil {
			return fmt.Errorf("create subfolders of %s: %w", name, err)
		}

		// Three lorem files per subfolder
		var fileReqs []catalogSvc.CreateFileRequest
		for _, sub := range subResult.Results {
			if sub.ID == "" {
				continue
			}
			for j := 0; j < 3; j++ {
				mime := mimeTypes[j%len(mimeTypes)]
				size := int64(1024 * (j + 1))
				fileReqs = append(fileReqs, catalogSvc.CreateFileRequest{
					Name:     fmt.Sprintf("%s.%s", gen.Word(3, 10), extFor(mime)),
					FolderID: sub.ID,
					MimeType: &mime,
					Size:     &size,
				})
			}
		}

		fileResult, err := files.CreateBulkFiles(ctx, fileReqs)
		if err != nil {
			return fmt.Errorf("create files under %s: %w", name, err)
		}
		log.Printf("✅ Created %d subfolders and %d files under %s",
			subResult.Count, fileResult.Count, root.Path)
	}

	return nil
}

func extFor(mime string) string {
	switch mime {
	case "application/pdf":
		return "pdf"
	case "image/png":
		return "png"
	case "audio/mpeg":
		return "mp3"
	default:
		return "txt"
	}
}
