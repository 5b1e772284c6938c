package domain

import (
	"time"

	"github.com/google/uuid"
)

// LedgerOperation names the kind of ledger-affecting operation recorded.
type LedgerOperation string

const (
	OperationCreateAccount LedgerOperation = "create_account"
	OperationCreateToken   LedgerOperation = "create_token"
	OperationUploadFile    LedgerOperation = "upload_file"
	OperationMintNFT       LedgerOperation = "mint_nft"
	OperationTransfer      LedgerOperation = "transfer"
	OperationFunding       LedgerOperation = "funding"
)

// TransferStatus is the ledger-reported status of a submitted transaction.
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusConfirmed TransferStatus = "confirmed"
	TransferStatusFailed    TransferStatus = "failed"
)

// LedgerTransaction is the append-only audit record of every ledger-affecting
// operation. Rows are never updated after insert and are used for
// reconciliation and cost accounting, never for control flow.
type LedgerTransaction struct {
	ID            uuid.UUID       `json:"id"`
	EntityType    EntityType      `json:"entity_type"`
	EntityID      uuid.UUID       `json:"entity_id"`
	Operation     LedgerOperation `json:"operation"`
	TransactionID string          `json:"transaction_id"`
	Status        TransferStatus  `json:"status"`
	CostTinybars  int64           `json:"cost_tinybars"`
	Timestamp     time.Time       `json:"timestamp"`
}
