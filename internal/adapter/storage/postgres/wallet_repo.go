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

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

const walletColumns = `id, user_id, account_id, public_key, alias, balance_tinybars, is_active, network, created_at, last_synced_at`

// CreateActivating inserts the wallet as the user's active one, deactivating
// any prior active wallet inside the same transaction.
func (r *WalletRepo) CreateActivating(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	_, err := tx.Exec(ctx,
		`UPDATE wallets SET is_active = false WHERE user_id = $1 AND is_active = true`,
		w.UserID,
	)
	if err != nil {
		return fmt.Errorf("deactivate prior wallets: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO wallets (id, user_id, account_id, public_key, alias, balance_tinybars, is_active, network, created_at, last_synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		w.ID, w.UserID, w.AccountID, w.PublicKey, w.Alias,
		w.BalanceTinybars, w.IsActive, w.Network, w.CreatedAt, w.LastSyncedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByID fetches a wallet by its UUID.
func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`

	w := &domain.Wallet{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.UserID, &w.AccountID, &w.PublicKey, &w.Alias,
		&w.BalanceTinybars, &w.IsActive, &w.Network, &w.CreatedAt, &w.LastSyncedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet by id: %w", err)
	}
	return w, nil
}

// GetActiveByUserID fetches the user's single active wallet, if any.
func (r *WalletRepo) GetActiveByUserID(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 AND is_active = true`

	w := &domain.Wallet{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&w.ID, &w.UserID, &w.AccountID, &w.PublicKey, &w.Alias,
		&w.BalanceTinybars, &w.IsActive, &w.Network, &w.CreatedAt, &w.LastSyncedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active wallet by user id: %w", err)
	}
	return w, nil
}

// UpdateBalance refreshes the cached balance and sync timestamp.
func (r *WalletRepo) UpdateBalance(ctx context.Context, id uuid.UUID, balanceTinybars int64, syncedAt time.Time) error {
	query := `UPDATE wallets SET balance_tinybars = $1, last_synced_at = $2 WHERE id = $3`

	tag, err := r.pool.Exec(ctx, query, balanceTinybars, syncedAt, id)
	if err != nil {
		return fmt.Errorf("update wallet balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", id)
	}
	return nil
}

// Deactivate marks the wallet inactive within a transaction.
func (r *WalletRepo) Deactivate(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `UPDATE wallets SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", id)
	}
	return nil
}
