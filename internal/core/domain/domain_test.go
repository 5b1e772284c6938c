package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDeriveAlias_Deterministic(t *testing.T) {
	userID := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	at := time.UnixMilli(1756339200000)

	a1 := DeriveAlias(userID, "user@example.com", at)
	a2 := DeriveAlias(userID, "user@example.com", at)
	assert.Equal(t, a1, a2)
	assert.Contains(t, a1, "wallet_")
	assert.Contains(t, a1, "1756339200000")
}

func TestDeriveAlias_UniquePerInput(t *testing.T) {
	at := time.Now()
	a1 := DeriveAlias(uuid.New(), "a@example.com", at)
	a2 := DeriveAlias(uuid.New(), "a@example.com", at)
	a3 := DeriveAlias(uuid.New(), "b@example.com", at)
	assert.NotEqual(t, a1, a2)
	assert.NotEqual(t, a1, a3)
}

func TestDeriveAlias_DoesNotLeakEmail(t *testing.T) {
	alias := DeriveAlias(uuid.New(), "secret.person@example.com", time.Now())
	assert.NotContains(t, alias, "secret.person")
	assert.NotContains(t, alias, "example.com")
}

func TestFundingState_Transitions(t *testing.T) {
	cases := []struct {
		from, to FundingState
		ok       bool
	}{
		{FundingStateCreated, FundingStateAwaitingPayment, true},
		{FundingStateCreated, FundingStateSettled, true},
		{FundingStateCreated, FundingStateCancelled, true},
		{FundingStateAwaitingPayment, FundingStateSettled, true},
		{FundingStateAwaitingPayment, FundingStateFailed, true},
		{FundingStateSettled, FundingStateFailed, false},
		{FundingStateSettled, FundingStateAwaitingPayment, false},
		{FundingStateCancelled, FundingStateSettled, false},
		{FundingStateFailed, FundingStateAwaitingPayment, false},
	}
	for _, c := range cases {
		assert.Equalf(t, c.ok, c.from.CanTransition(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestSyncState_Transitions(t *testing.T) {
	assert.True(t, SyncStatePending.CanTransition(SyncStateSyncing))
	assert.True(t, SyncStateSyncing.CanTransition(SyncStateSynced))
	assert.True(t, SyncStateSyncing.CanTransition(SyncStateFailed))
	// failed -> syncing is the only retry edge
	assert.True(t, SyncStateFailed.CanTransition(SyncStateSyncing))
	assert.False(t, SyncStateFailed.CanTransition(SyncStateSynced))
	assert.False(t, SyncStateSynced.CanTransition(SyncStateSyncing))
	assert.False(t, SyncStatePending.CanTransition(SyncStateSynced))
}

func TestFolder_IsSyncedToLedger(t *testing.T) {
	f := &Folder{}
	assert.False(t, f.IsSyncedToLedger())

	empty := ""
	f.TokenID = &empty
	assert.False(t, f.IsSyncedToLedger())

	token := "0.0.7001"
	f.TokenID = &token
	assert.True(t, f.IsSyncedToLedger())
}

func TestNetwork_Valid(t *testing.T) {
	assert.True(t, NetworkTestnet.Valid())
	assert.True(t, NetworkMainnet.Valid())
	assert.False(t, Network("devnet").Valid())
}
