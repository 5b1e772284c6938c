package postgres

import (
	"context"
	"fmt"

	"alias-wallet-orchestrator/internal/core/domain"

	"github.com/google/uuid"
)

// LedgerTxRepo implements ports.LedgerTxRepository. The table is append-only;
// there is deliberately no update method.
type LedgerTxRepo struct {
	pool Pool
}

// NewLedgerTxRepo creates a new LedgerTxRepo.
func NewLedgerTxRepo(pool Pool) *LedgerTxRepo {
	return &LedgerTxRepo{pool: pool}
}

// Append inserts one audit row.
func (r *LedgerTxRepo) Append(ctx context.Context, tx *domain.LedgerTransaction) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO ledger_transactions (id, entity_type, entity_id, operation, transaction_id, status, cost_tinybars, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		tx.ID, tx.EntityType, tx.EntityID, tx.Operation,
		tx.TransactionID, tx.Status, tx.CostTinybars, tx.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append ledger transaction: %w", err)
	}
	return nil
}

// ListByEntity returns the audit trail for one entity, oldest first.
func (r *LedgerTxRepo) ListByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]domain.LedgerTransaction, error) {
	query := `SELECT id, entity_type, entity_id, operation, transaction_id, status, cost_tinybars, timestamp
		FROM ledger_transactions WHERE entity_type = $1 AND entity_id = $2 ORDER BY timestamp`

	rows, err := r.pool.Query(ctx, query, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("list ledger transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.LedgerTransaction
	for rows.Next() {
		var t domain.LedgerTransaction
		if err := rows.Scan(
			&t.ID, &t.EntityType, &t.EntityID, &t.Operation,
			&t.TransactionID, &t.Status, &t.CostTinybars, &t.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan ledger transaction: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger transactions: %w", err)
	}
	return txs, nil
}
