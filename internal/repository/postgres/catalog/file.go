package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"filedex/internal/domain"
	models "filedex/internal/domain/models/catalog"
	catalogRepo "filedex/internal/domain/repositories/catalog"
	"filedex/internal/repository/postgres"
)

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *postgres.RepositoryConfig) catalogRepo.FileRepository {
	return &PostgresFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const fileColumns = "id, folder_id, name, path, mime_type, size, physical_path, created_at, updated_at"

func scanFile(row pgx.Row, file *models.File) error {
	return row.Scan(
		&file.ID,
		&file.FolderID,
		&file.Name,
		&file.Path,
		&file.MimeType,
		&file.Size,
		&file.PhysicalPath,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
}

// Create inserts a new file
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, folder_id, name, path, mime_type, size, physical_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`, r.tables.Files)

	exec := postgres.GetExecutor(ctx, r.pool)
	err := exec.QueryRow(ctx, query,
		file.ID,
		file.FolderID,
		file.Name,
		file.Path,
		file.MimeType,
		file.Size,
		file.PhysicalPath,
		file.CreatedAt,
		file.UpdatedAt,
	).Scan(&file.CreatedAt, &file.UpdatedAt)

	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("folder %s: %w", file.FolderID, domain.ErrNotFound)
		}
		return fmt.Errorf("create file: %w", err)
	}

	return nil
}

// CreateMany inserts files in one batch using pgx's batched pipeline.
func (r *PostgresFileRepository) CreateMany(ctx context.Context, files []*models.File) (int, error) {
	if len(files) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, folder_id, name, path, mime_type, size, physical_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.Files)

	batch := &pgx.Batch{}
	for _, file := range files {
		batch.Queue(query,
			file.ID,
			file.FolderID,
			file.Name,
			file.Path,
			file.MimeType,
			file.Size,
			file.PhysicalPath,
			file.CreatedAt,
			file.UpdatedAt,
		)
	}

	exec := postgres.GetExecutor(ctx, r.pool)
	br := exec.SendBatch(ctx, batch)
	defer br.Close()

	count := 0
	for range files {
		if _, err := br.Exec(); err != nil {
			return count, fmt.Errorf("create files batch: %w", err)
		}
		count++
	}

	return count, nil
}

// GetByID retrieves a file by ID
func (r *PostgresFileRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, fileColumns, r.tables.Files)

	exec := postgres.GetExecutor(ctx, r.pool)
	var file models.File
	if err := scanFile(exec.QueryRow(ctx, query, id), &file); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	return &file, nil
}

// Update persists mutable file fields
func (r *PostgresFileRepository) Update(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, path = $2, mime_type = $3, size = $4, updated_at = $5
		WHERE id = $6
	`, r.tables.Files)

	exec := postgres.GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query,
		file.Name,
		file.Path,
		file.MimeType,
		file.Size,
		file.UpdatedAt,
		file.ID,
	)
	if err != nil {
		return fmt.Errorf("update file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", file.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a file row
func (r *PostgresFileRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Files)

	exec := postgres.GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteMany removes file rows by id
func (r *PostgresFileRepository) DeleteMany(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = ANY($1)
	`, r.tables.Files)

	exec := postgres.GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, ids)
	if err != nil {
		return 0, fmt.Errorf("delete files: %w", err)
	}

	return int(result.RowsAffected()), nil
}

// DeleteByFolders removes every file belonging to the given folders
func (r *PostgresFileRepository) DeleteByFolders(ctx context.Context, folderIDs []string) (int, error) {
	if len(folderIDs) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE folder_id = ANY($1)
	`, r.tables.Files)

	exec := postgres.GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, folderIDs)
	if err != nil {
		return 0, fmt.Errorf("delete files by folder: %w", err)
	}

	return int(result.RowsAffected()), nil
}

// ListByFolder lists the direct files of a folder
func (r *PostgresFileRepository) ListByFolder(ctx context.Context, folderID string) ([]models.File, error) {
	return r.listByFolder(ctx, folderID, "")
}

// ListByFolderForUpdate lists the direct files of a folder with their rows
// locked until the surrounding transaction ends.
func (r *PostgresFileRepository) ListByFolderForUpdate(ctx context.Context, folderID string) ([]models.File, error) {
	return r.listByFolder(ctx, folderID, "FOR UPDATE")
}

func (r *PostgresFileRepository) listByFolder(ctx context.Context, folderID, locking string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE folder_id = $1
		ORDER BY name ASC
		%s
	`, fileColumns, r.tables.Files, locking)

	return r.queryFiles(ctx, query, folderID)
}

// ListAll retrieves every file (flat list)
func (r *PostgresFileRepository) ListAll(ctx context.Context) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY path ASC
	`, fileColumns, r.tables.Files)

	return r.queryFiles(ctx, query)
}

// SearchByName performs a case-insensitive substring match on file names.
// The term is matched literally: LIKE metacharacters are escaped.
func (r *PostgresFileRepository) SearchByName(ctx context.Context, term string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE name ILIKE '%%' || $1 || '%%'
		ORDER BY name ASC
	`, fileColumns, r.tables.Files)

	return r.queryFiles(ctx, query, postgres.EscapeLike(term))
}

func (r *PostgresFileRepository) queryFiles(ctx context.Context, query string, args ...interface{}) ([]models.File, error) {
	exec := postgres.GetExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		var file models.File
		if err := scanFile(rows, &file); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return files, nil
}
