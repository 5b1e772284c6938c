package domain

import (
	"time"

	"github.com/google/uuid"
)

// Network identifies the ledger network a wallet belongs to.
type Network string

const (
	NetworkTestnet Network = "testnet"
	NetworkMainnet Network = "mainnet"
)

// Valid reports whether the network value is a known one.
func (n Network) Valid() bool {
	return n == NetworkTestnet || n == NetworkMainnet
}

// Wallet represents a user's self-custodied ledger account.
// BalanceTinybars is a cache of ledger truth, refreshed on status reads and
// funding settlement; it is never authoritative. The encrypted private key
// lives only in the credential vault, never on this record.
type Wallet struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	AccountID       string    `json:"account_id"` // Ledger-assigned, immutable once set
	PublicKey       string    `json:"public_key"`
	Alias           string    `json:"alias"`
	BalanceTinybars int64     `json:"balance_tinybars"`
	IsActive        bool      `json:"is_active"`
	Network         Network   `json:"network"`
	CreatedAt       time.Time `json:"created_at"`
	LastSyncedAt    time.Time `json:"last_synced_at"`
}
