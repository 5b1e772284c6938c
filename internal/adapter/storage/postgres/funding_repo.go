package postgres

import (
	"context"
	"errors"
	"fmt"

	"alias-wallet-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// FundingRepo implements ports.FundingRepository.
type FundingRepo struct {
	pool Pool
}

// NewFundingRepo creates a new FundingRepo.
func NewFundingRepo(pool Pool) *FundingRepo {
	return &FundingRepo{pool: pool}
}

const fundingColumns = `id, wallet_id, provider, fiat_amount_cents, fee_percentage, fee_fixed_cents, estimated_tinybars, checkout_url, provider_tx_id, state, settled_tinybars, created_at`

// Create inserts a new funding request.
func (r *FundingRepo) Create(ctx context.Context, fr *domain.FundingRequest) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO funding_requests (id, wallet_id, provider, fiat_amount_cents, fee_percentage, fee_fixed_cents, estimated_tinybars, checkout_url, provider_tx_id, state, settled_tinybars, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		fr.ID, fr.WalletID, fr.Provider, fr.FiatAmountCents,
		fr.Fees.Percentage, fr.Fees.FixedCents, fr.EstimatedTinybars,
		fr.CheckoutURL, fr.ProviderTxID, fr.State, fr.SettledTinybars, fr.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert funding request: %w", err)
	}
	return nil
}

// GetByID fetches a funding request by its UUID.
func (r *FundingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FundingRequest, error) {
	query := `SELECT ` + fundingColumns + ` FROM funding_requests WHERE id = $1`

	fr := &domain.FundingRequest{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&fr.ID, &fr.WalletID, &fr.Provider, &fr.FiatAmountCents,
		&fr.Fees.Percentage, &fr.Fees.FixedCents, &fr.EstimatedTinybars,
		&fr.CheckoutURL, &fr.ProviderTxID, &fr.State, &fr.SettledTinybars, &fr.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get funding request by id: %w", err)
	}
	return fr, nil
}

// UpdateState moves the request to a new state. The guard against rewriting
// terminal rows is enforced here as well as in the service.
func (r *FundingRepo) UpdateState(ctx context.Context, id uuid.UUID, state domain.FundingState, settledTinybars *int64) error {
	query := `UPDATE funding_requests SET state = $1, settled_tinybars = COALESCE($2, settled_tinybars)
		WHERE id = $3 AND state NOT IN ('settled', 'failed', 'cancelled')`

	tag, err := r.pool.Exec(ctx, query, state, settledTinybars, id)
	if err != nil {
		return fmt.Errorf("update funding state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("funding request not found or terminal: %s", id)
	}
	return nil
}
