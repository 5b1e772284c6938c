package postgres

import (
	"context"
	"errors"
	"fmt"

	"alias-wallet-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// FileRepo implements ports.FileRepository.
type FileRepo struct {
	pool Pool
}

// NewFileRepo creates a new FileRepo.
func NewFileRepo(pool Pool) *FileRepo {
	return &FileRepo{pool: pool}
}

const fileColumns = `id, folder_id, name, original_name, size, mime_type, checksum, is_blockchain, ledger_file_id, token_id, serial_number, uploaded_at`

// GetByID fetches a file by its UUID.
func (r *FileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE id = $1`

	f := &domain.File{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.FolderID, &f.Name, &f.OriginalName, &f.Size, &f.MimeType,
		&f.Checksum, &f.IsBlockchain, &f.LedgerFileID, &f.TokenID, &f.SerialNumber, &f.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get file by id: %w", err)
	}
	return f, nil
}

// ListBlockchain returns all files flagged for ledger anchoring.
func (r *FileRepo) ListBlockchain(ctx context.Context) ([]domain.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE is_blockchain = true ORDER BY uploaded_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list blockchain files: %w", err)
	}
	defer rows.Close()

	var files []domain.File
	for rows.Next() {
		var f domain.File
		if err := rows.Scan(
			&f.ID, &f.FolderID, &f.Name, &f.OriginalName, &f.Size, &f.MimeType,
			&f.Checksum, &f.IsBlockchain, &f.LedgerFileID, &f.TokenID, &f.SerialNumber, &f.UploadedAt,
		); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}
	return files, nil
}

// SetLedgerFileID records a completed content upload.
func (r *FileRepo) SetLedgerFileID(ctx context.Context, id uuid.UUID, ledgerFileID string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE files SET ledger_file_id = $1 WHERE id = $2`, ledgerFileID, id)
	if err != nil {
		return fmt.Errorf("set ledger file id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("file not found: %s", id)
	}
	return nil
}

// SetMinted records the NFT mint result for the file.
func (r *FileRepo) SetMinted(ctx context.Context, id uuid.UUID, tokenID string, serialNumber int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE files SET token_id = $1, serial_number = $2 WHERE id = $3`,
		tokenID, serialNumber, id,
	)
	if err != nil {
		return fmt.Errorf("set file minted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("file not found: %s", id)
	}
	return nil
}
