package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntityType names the kinds of local entities that can be ledger-anchored.
type EntityType string

const (
	EntityTypeFolder EntityType = "folder"
	EntityTypeFile   EntityType = "file"
	// EntityTypeWallet appears only on LedgerTransaction audit rows, never in
	// the sync state machine.
	EntityTypeWallet EntityType = "wallet"
)

// SyncState is the per-entity anchoring state.
type SyncState string

const (
	SyncStatePending SyncState = "pending"
	SyncStateSyncing SyncState = "syncing"
	SyncStateSynced  SyncState = "synced"
	SyncStateFailed  SyncState = "failed"
)

// CanTransition reports whether s -> next is legal. Transitions are
// monotonic except failed -> syncing, the only retry edge.
func (s SyncState) CanTransition(next SyncState) bool {
	switch s {
	case SyncStatePending:
		return next == SyncStateSyncing
	case SyncStateSyncing:
		return next == SyncStateSynced || next == SyncStateFailed
	case SyncStateFailed:
		return next == SyncStateSyncing
	case SyncStateSynced:
		return false
	}
	return false
}

// SyncStatus tracks the anchoring state machine for one entity. At most one
// row exists per (EntityType, EntityID); entities not flagged for ledger
// anchoring never get a row.
type SyncStatus struct {
	ID            uuid.UUID  `json:"id"`
	EntityType    EntityType `json:"entity_type"`
	EntityID      uuid.UUID  `json:"entity_id"`
	State         SyncState  `json:"state"`
	TokenID       *string    `json:"token_id,omitempty"`
	LastAttemptAt time.Time  `json:"last_attempt_at"`
	RetryCount    int        `json:"retry_count"`
	ErrorMessage  *string    `json:"error_message,omitempty"`
}
