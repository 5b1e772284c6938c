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

func syncStatusColumnNames() []string {
	return []string{"id", "entity_type", "entity_id", "state", "token_id", "last_attempt_at", "retry_count", "error_message"}
}

func TestSyncStatusRepo_Get(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSyncStatusRepo(mock)
	entityID := uuid.New()
	tokenID := "0.0.555"
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("SELECT .+ FROM sync_statuses WHERE entity_type").
		WithArgs(domain.EntityTypeFolder, entityID).
		WillReturnRows(pgxmock.NewRows(syncStatusColumnNames()).AddRow(
			uuid.New(), domain.EntityTypeFolder, entityID, domain.SyncStateSynced,
			&tokenID, now, 0, (*string)(nil),
		))

	status, err := repo.Get(context.Background(), domain.EntityTypeFolder, entityID)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, domain.SyncStateSynced, status.State)
	assert.Equal(t, tokenID, *status.TokenID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncStatusRepo_Get_NoRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSyncStatusRepo(mock)
	entityID := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM sync_statuses WHERE entity_type").
		WithArgs(domain.EntityTypeFile, entityID).
		WillReturnRows(pgxmock.NewRows(syncStatusColumnNames()))

	status, err := repo.Get(context.Background(), domain.EntityTypeFile, entityID)
	assert.NoError(t, err)
	assert.Nil(t, status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncStatusRepo_Upsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSyncStatusRepo(mock)
	status := &domain.SyncStatus{
		ID:            uuid.New(),
		EntityType:    domain.EntityTypeFolder,
		EntityID:      uuid.New(),
		State:         domain.SyncStateSyncing,
		LastAttemptAt: time.Now().UTC().Truncate(time.Microsecond),
		RetryCount:    1,
	}

	mock.ExpectExec("INSERT INTO sync_statuses").
		WithArgs(status.ID, status.EntityType, status.EntityID, status.State,
			status.TokenID, status.LastAttemptAt, status.RetryCount, status.ErrorMessage).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Upsert(context.Background(), status)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncStatusRepo_ListUnsynced(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSyncStatusRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("SELECT .+ FROM sync_statuses WHERE state").
		WithArgs(domain.SyncStateSynced).
		WillReturnRows(pgxmock.NewRows(syncStatusColumnNames()).
			AddRow(uuid.New(), domain.EntityTypeFolder, uuid.New(), domain.SyncStatePending, (*string)(nil), now, 0, (*string)(nil)).
			AddRow(uuid.New(), domain.EntityTypeFile, uuid.New(), domain.SyncStateFailed, (*string)(nil), now, 2, strPointer("ledger timeout")))

	statuses, err := repo.ListUnsynced(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, domain.SyncStatePending, statuses[0].State)
	assert.Equal(t, 2, statuses[1].RetryCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func strPointer(s string) *string { return &s }
