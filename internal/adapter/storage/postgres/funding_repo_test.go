package postgres

import (
	"context"
	"testing"
	"time"

	"alias-wallet-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFundingRequest() *domain.FundingRequest {
	return &domain.FundingRequest{
		ID:              uuid.New(),
		WalletID:        uuid.New(),
		Provider:        domain.ProviderAlchemy,
		FiatAmountCents: 10000,
		Fees: domain.FeeBreakdown{
			Percentage: 0.03,
			FixedCents: 299,
		},
		EstimatedTinybars: 1880200000,
		CheckoutURL:       "https://checkout.example.com/session/abc",
		ProviderTxID:      "alc_tx_123",
		State:             domain.FundingStateCreated,
		CreatedAt:         time.Now().UTC().Truncate(time.Microsecond),
	}
}

func fundingColumnNames() []string {
	return []string{"id", "wallet_id", "provider", "fiat_amount_cents", "fee_percentage", "fee_fixed_cents", "estimated_tinybars", "checkout_url", "provider_tx_id", "state", "settled_tinybars", "created_at"}
}

func fundingRow(fr *domain.FundingRequest) *pgxmock.Rows {
	return pgxmock.NewRows(fundingColumnNames()).AddRow(
		fr.ID, fr.WalletID, fr.Provider, fr.FiatAmountCents,
		fr.Fees.Percentage, fr.Fees.FixedCents, fr.EstimatedTinybars,
		fr.CheckoutURL, fr.ProviderTxID, fr.State, fr.SettledTinybars, fr.CreatedAt,
	)
}

func TestFundingRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFundingRepo(mock)
	fr := newTestFundingRequest()

	mock.ExpectExec("INSERT INTO funding_requests").
		WithArgs(fr.ID, fr.WalletID, fr.Provider, fr.FiatAmountCents,
			fr.Fees.Percentage, fr.Fees.FixedCents, fr.EstimatedTinybars,
			fr.CheckoutURL, fr.ProviderTxID, fr.State, fr.SettledTinybars, fr.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), fr)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFundingRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFundingRepo(mock)
	fr := newTestFundingRequest()

	mock.ExpectQuery("SELECT .+ FROM funding_requests WHERE id").
		WithArgs(fr.ID).
		WillReturnRows(fundingRow(fr))

	result, err := repo.GetByID(context.Background(), fr.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, fr.Provider, result.Provider)
	assert.Equal(t, fr.Fees.Percentage, result.Fees.Percentage)
	assert.Equal(t, fr.State, result.State)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFundingRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFundingRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM funding_requests WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(fundingColumnNames()))

	result, err := repo.GetByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFundingRepo_UpdateState(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFundingRepo(mock)
	id := uuid.New()
	settled := int64(1880000000)

	mock.ExpectExec("UPDATE funding_requests SET state").
		WithArgs(domain.FundingStateSettled, &settled, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.UpdateState(context.Background(), id, domain.FundingStateSettled, &settled)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFundingRepo_UpdateState_TerminalRowUnchanged(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFundingRepo(mock)
	id := uuid.New()

	mock.ExpectExec("UPDATE funding_requests SET state").
		WithArgs(domain.FundingStateFailed, (*int64)(nil), id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.UpdateState(context.Background(), id, domain.FundingStateFailed, nil)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
