package ports

import (
	"context"
	"time"

	"alias-wallet-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx run inside transaction blocks so that activating a
// wallet and deactivating the prior active one commit atomically.
type WalletRepository interface {
	// CreateActivating inserts the wallet with is_active=true and deactivates
	// any prior active wallet for the same user, all within tx.
	CreateActivating(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetActiveByUserID(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balanceTinybars int64, syncedAt time.Time) error
	Deactivate(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

// FolderRepository defines persistence operations for folders.
type FolderRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Folder, error)
	ListBlockchain(ctx context.Context) ([]domain.Folder, error)
	SetTokenID(ctx context.Context, id uuid.UUID, tokenID string) error
	SetLastVerified(ctx context.Context, id uuid.UUID, at time.Time) error
}

// FileRepository defines persistence operations for files.
type FileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.File, error)
	ListBlockchain(ctx context.Context) ([]domain.File, error)
	// SetLedgerFileID records a completed content upload so a later retry can
	// resume without re-uploading.
	SetLedgerFileID(ctx context.Context, id uuid.UUID, ledgerFileID string) error
	SetMinted(ctx context.Context, id uuid.UUID, tokenID string, serialNumber int64) error
}

// SyncStatusRepository defines persistence for per-entity sync state rows.
type SyncStatusRepository interface {
	Get(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) (*domain.SyncStatus, error)
	Upsert(ctx context.Context, status *domain.SyncStatus) error
	// ListUnsynced returns all rows not in the synced state, oldest attempt first.
	ListUnsynced(ctx context.Context) ([]domain.SyncStatus, error)
}

// LedgerTxRepository is the append-only audit log of ledger operations.
type LedgerTxRepository interface {
	Append(ctx context.Context, tx *domain.LedgerTransaction) error
	ListByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]domain.LedgerTransaction, error)
}

// FundingRepository defines persistence for funding requests.
type FundingRepository interface {
	Create(ctx context.Context, fr *domain.FundingRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FundingRequest, error)
	UpdateState(ctx context.Context, id uuid.UUID, state domain.FundingState, settledTinybars *int64) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
