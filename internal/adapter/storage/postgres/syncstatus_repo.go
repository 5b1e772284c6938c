package postgres

import (
	"context"
	"errors"
	"fmt"

	"alias-wallet-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SyncStatusRepo implements ports.SyncStatusRepository.
type SyncStatusRepo struct {
	pool Pool
}

// NewSyncStatusRepo creates a new SyncStatusRepo.
func NewSyncStatusRepo(pool Pool) *SyncStatusRepo {
	return &SyncStatusRepo{pool: pool}
}

const syncStatusColumns = `id, entity_type, entity_id, state, token_id, last_attempt_at, retry_count, error_message`

// Get fetches the sync row for one entity.
func (r *SyncStatusRepo) Get(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) (*domain.SyncStatus, error) {
	query := `SELECT ` + syncStatusColumns + ` FROM sync_statuses WHERE entity_type = $1 AND entity_id = $2`

	s := &domain.SyncStatus{}
	err := r.pool.QueryRow(ctx, query, entityType, entityID).Scan(
		&s.ID, &s.EntityType, &s.EntityID, &s.State, &s.TokenID,
		&s.LastAttemptAt, &s.RetryCount, &s.ErrorMessage,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sync status: %w", err)
	}
	return s, nil
}

// Upsert writes the sync row, keyed on (entity_type, entity_id).
func (r *SyncStatusRepo) Upsert(ctx context.Context, status *domain.SyncStatus) error {
	query := `INSERT INTO sync_statuses (id, entity_type, entity_id, state, token_id, last_attempt_at, retry_count, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (entity_type, entity_id) DO UPDATE SET
			state = EXCLUDED.state,
			token_id = EXCLUDED.token_id,
			last_attempt_at = EXCLUDED.last_attempt_at,
			retry_count = EXCLUDED.retry_count,
			error_message = EXCLUDED.error_message`

	_, err := r.pool.Exec(ctx, query,
		status.ID, status.EntityType, status.EntityID, status.State,
		status.TokenID, status.LastAttemptAt, status.RetryCount, status.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("upsert sync status: %w", err)
	}
	return nil
}

// ListUnsynced returns all rows not yet synced, oldest attempt first.
func (r *SyncStatusRepo) ListUnsynced(ctx context.Context) ([]domain.SyncStatus, error) {
	query := `SELECT ` + syncStatusColumns + ` FROM sync_statuses WHERE state != $1 ORDER BY last_attempt_at`

	rows, err := r.pool.Query(ctx, query, domain.SyncStateSynced)
	if err != nil {
		return nil, fmt.Errorf("list unsynced: %w", err)
	}
	defer rows.Close()

	var statuses []domain.SyncStatus
	for rows.Next() {
		var s domain.SyncStatus
		if err := rows.Scan(
			&s.ID, &s.EntityType, &s.EntityID, &s.State, &s.TokenID,
			&s.LastAttemptAt, &s.RetryCount, &s.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("scan sync status: %w", err)
		}
		statuses = append(statuses, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sync statuses: %w", err)
	}
	return statuses, nil
}
