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

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *postgres.RepositoryConfig) catalogRepo.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const folderColumns = "id, parent_id, name, path, is_system, is_hidden, created_at, updated_at"

func scanFolder(row pgx.Row, folder *models.Folder) error {
	return row.Scan(
		&folder.ID,
		&folder.ParentID,
		&folder.Name,
		&folder.Path,
		&folder.IsSystem,
		&folder.IsHidden,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
}

// Create inserts a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, parent_id, name, path, is_system, is_hidden, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, r.tables.Folders)

	exec := postgres.GetExecutor(ctx, r.pool)
	err := exec.QueryRow(ctx, query,
		folder.ID,
		folder.ParentID,
		folder.Name,
		folder.Path,
		folder.IsSystem,
		folder.IsHidden,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("parent folder: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	return r.getByID(ctx, id, "")
}

// GetByIDForUpdate retrieves a folder by ID and takes a row lock held until
// the surrounding transaction ends.
func (r *PostgresFolderRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Folder, error) {
	return r.getByID(ctx, id, "FOR UPDATE")
}

func (r *PostgresFolderRepository) getByID(ctx context.Context, id, locking string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
		%s
	`, folderColumns, r.tables.Folders, locking)

	exec := postgres.GetExecutor(ctx, r.pool)
	var folder models.Folder
	if err := scanFolder(exec.QueryRow(ctx, query, id), &folder); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// GetByName retrieves a folder by exact name under the given parent.
// Returns nil, nil when no folder matches.
func (r *PostgresFolderRepository) GetByName(ctx context.Context, parentID *string, name string) (*models.Folder, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE name = $1 AND parent_id IS NULL
			LIMIT 1
		`, folderColumns, r.tables.Folders)
		args = append(args, name)
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE name = $1 AND parent_id = $2
			LIMIT 1
		`, folderColumns, r.tables.Folders)
		args = append(args, name, *parentID)
	}

	exec := postgres.GetExecutor(ctx, r.pool)
	var folder models.Folder
	if err := scanFolder(exec.QueryRow(ctx, query, args...), &folder); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, nil // Not found, not an error
		}
		return nil, fmt.Errorf("get folder by name: %w", err)
	}

	return &folder, nil
}

// Update persists name, path and parent of a folder
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_id = $1, name = $2, path = $3, is_system = $4, is_hidden = $5, updated_at = $6
		WHERE id = $7
	`, r.tables.Folders)

	exec := postgres.GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query,
		folder.ParentID,
		folder.Name,
		folder.Path,
		folder.IsSystem,
		folder.IsHidden,
		folder.UpdatedAt,
		folder.ID,
	)
	if err != nil {
		return fmt.Errorf("update folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a folder row. Descendant folders and files are removed by
// the schema-level ON DELETE CASCADE.
func (r *PostgresFolderRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Folders)

	exec := postgres.GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteMany removes folder rows by id
func (r *PostgresFolderRepository) DeleteMany(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = ANY($1)
	`, r.tables.Folders)

	exec := postgres.GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, ids)
	if err != nil {
		return 0, fmt.Errorf("delete folders: %w", err)
	}

	return int(result.RowsAffected()), nil
}

// ListChildren lists immediate child folders (nil = root folders)
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, parentID *string) ([]models.Folder, error) {
	return r.listChildren(ctx, parentID, "")
}

// ListChildrenForUpdate lists immediate child folders with their rows locked
// until the surrounding transaction ends.
func (r *PostgresFolderRepository) ListChildrenForUpdate(ctx context.Context, parentID *string) ([]models.Folder, error) {
	return r.listChildren(ctx, parentID, "FOR UPDATE")
}

func (r *PostgresFolderRepository) listChildren(ctx context.Context, parentID *string, locking string) ([]models.Folder, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE parent_id IS NULL
			ORDER BY name ASC
			%s
		`, folderColumns, r.tables.Folders, locking)
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE parent_id = $1
			ORDER BY name ASC
			%s
		`, folderColumns, r.tables.Folders, locking)
		args = append(args, *parentID)
	}

	return r.queryFolders(ctx, query, args...)
}

// ListAll retrieves every folder (flat list)
func (r *PostgresFolderRepository) ListAll(ctx context.Context) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY path ASC
	`, folderColumns, r.tables.Folders)

	return r.queryFolders(ctx, query)
}

// SearchByName performs a case-insensitive substring match on folder names.
// The term is matched literally: LIKE metacharacters are escaped.
func (r *PostgresFolderRepository) SearchByName(ctx context.Context, term string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE name ILIKE '%%' || $1 || '%%'
		ORDER BY name ASC
	`, folderColumns, r.tables.Folders)

	return r.queryFolders(ctx, query, postgres.EscapeLike(term))
}

func (r *PostgresFolderRepository) queryFolders(ctx context.Context, query string, args ...interface{}) ([]models.Folder, error) {
	exec := postgres.GetExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		if err := scanFolder(rows, &folder); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}
