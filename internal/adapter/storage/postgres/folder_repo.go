package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alias-wallet-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// FolderRepo implements ports.FolderRepository.
type FolderRepo struct {
	pool Pool
}

// NewFolderRepo creates a new FolderRepo.
func NewFolderRepo(pool Pool) *FolderRepo {
	return &FolderRepo{pool: pool}
}

const folderColumns = `id, name, type, description, parent_id, file_count, is_blockchain, token_id, last_verified, created_at`

// GetByID fetches a folder by its UUID.
func (r *FolderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders WHERE id = $1`

	f := &domain.Folder{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.Name, &f.Type, &f.Description, &f.ParentID,
		&f.FileCount, &f.IsBlockchain, &f.TokenID, &f.LastVerified, &f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get folder by id: %w", err)
	}
	return f, nil
}

// ListBlockchain returns all folders flagged for ledger anchoring, parents
// before subfolders.
func (r *FolderRepo) ListBlockchain(ctx context.Context) ([]domain.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders WHERE is_blockchain = true
		ORDER BY (parent_id IS NOT NULL), created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list blockchain folders: %w", err)
	}
	defer rows.Close()

	var folders []domain.Folder
	for rows.Next() {
		var f domain.Folder
		if err := rows.Scan(
			&f.ID, &f.Name, &f.Type, &f.Description, &f.ParentID,
			&f.FileCount, &f.IsBlockchain, &f.TokenID, &f.LastVerified, &f.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}
	return folders, nil
}

// SetTokenID records the ledger token assigned to the folder.
func (r *FolderRepo) SetTokenID(ctx context.Context, id uuid.UUID, tokenID string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE folders SET token_id = $1 WHERE id = $2`, tokenID, id)
	if err != nil {
		return fmt.Errorf("set folder token id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("folder not found: %s", id)
	}
	return nil
}

// SetLastVerified records the most recent successful ledger verification.
func (r *FolderRepo) SetLastVerified(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE folders SET last_verified = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("set folder last verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("folder not found: %s", id)
	}
	return nil
}
