package ports

import (
	"context"
	"time"

	"alias-wallet-orchestrator/internal/core/domain"

	"github.com/google/uuid"
)

// KeyCustodian encrypts private keys and brokers them to and from the vault.
// It is the sole holder of the wrapping key material.
type KeyCustodian interface {
	EncryptAndStore(ctx context.Context, walletID uuid.UUID, privateKey []byte) error
	// Retrieve fails closed: any vault miss or decryption failure yields
	// KEY_001, never a fallback source.
	Retrieve(ctx context.Context, walletID uuid.UUID) ([]byte, error)
	Delete(ctx context.Context, walletID uuid.UUID) error
}

// WalletCreation is the result of the account-manager creation flow.
type WalletCreation struct {
	Wallet        *domain.Wallet
	Alias         string
	AccountID     string
	TransactionID string
}

// AccountService generates key material and drives ledger account creation.
// Callers must not invoke CreateAliasWallet concurrently for the same user;
// the facade enforces that with a single-flight guard.
type AccountService interface {
	CreateAliasWallet(ctx context.Context, userID uuid.UUID, userEmail string, network domain.Network) (*WalletCreation, error)
	VerifyAccount(ctx context.Context, accountID string) (bool, error)
}

// FundingService drives the multi-provider fiat-to-crypto funding flow.
type FundingService interface {
	QuoteAll(ctx context.Context, fiatAmountCents int64) ([]domain.ProviderQuote, error)
	CreateFundingRequest(ctx context.Context, walletID uuid.UUID, provider domain.Provider, fiatAmountCents int64, userEmail string) (*domain.FundingRequest, error)
	// PollStatus is the only path that moves a funding request out of
	// created/awaiting_payment. Polling is caller-driven.
	PollStatus(ctx context.Context, fundingRequestID uuid.UUID) (*domain.FundingRequest, error)
}

// SyncResult is the outcome of one entity sync.
type SyncResult struct {
	TokenID       string
	LedgerFileID  string
	TransactionID string
}

// SyncSummary aggregates a full queue pass.
type SyncSummary struct {
	Synced int      `json:"synced"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors"`
}

// SyncService anchors folders and files to the ledger.
type SyncService interface {
	SyncFolder(ctx context.Context, folderID uuid.UUID) (*SyncResult, error)
	SyncFile(ctx context.Context, fileID uuid.UUID) (*SyncResult, error)
	SyncAllPending(ctx context.Context) (*SyncSummary, error)
}

// VerificationResult is the outcome of re-checking one folder against the
// ledger. Local synced state is a cache; only a live token read verifies.
type VerificationResult struct {
	FolderID     uuid.UUID  `json:"folder_id"`
	IsVerified   bool       `json:"is_verified"`
	TokenID      string     `json:"token_id,omitempty"`
	LastVerified *time.Time `json:"last_verified,omitempty"`
	Error        string     `json:"error,omitempty"`
}

// BlockchainStatus aggregates verification counts across all entities.
type BlockchainStatus struct {
	TotalFolders          int `json:"total_folders"`
	VerifiedParentFolders int `json:"verified_parent_folders"`
	VerifiedSubfolders    int `json:"verified_subfolders"`
	VerifiedFiles         int `json:"verified_files"`
	Pending               int `json:"pending"`
	Failed                int `json:"failed"`
	TotalVerifiedItems    int `json:"total_verified_items"`
}

// VerificationService re-checks local anchoring claims against ledger truth.
type VerificationService interface {
	VerifyFolder(ctx context.Context, folderID uuid.UUID) (*VerificationResult, error)
	VerifyAllFolders(ctx context.Context) ([]VerificationResult, error)
	GetBlockchainStatus(ctx context.Context) (*BlockchainStatus, error)
}

// CompleteWalletRequest is the facade input for the create-funded-wallet flow.
type CompleteWalletRequest struct {
	UserID        uuid.UUID
	UserEmail     string
	Plan          string
	FundingCents  int64
	Provider      domain.Provider
	Network       domain.Network
}

// CompleteWalletResult is the facade output. CheckoutURL is empty when the
// wallet was created but funding-request creation failed; the caller can then
// retry funding alone without recreating the account.
type CompleteWalletResult struct {
	Wallet            *domain.Wallet `json:"wallet"`
	Alias             string         `json:"alias"`
	AccountID         string         `json:"account_id"`
	CheckoutURL       string         `json:"checkout_url,omitempty"`
	FundingRequestID  *uuid.UUID     `json:"funding_request_id,omitempty"`
	EstimatedTinybars int64          `json:"estimated_tinybars,omitempty"`
	FundingError      string         `json:"funding_error,omitempty"`
}

// WalletStatus is the read-mostly join of local wallet state and live ledger
// account data.
type WalletStatus struct {
	Wallet          *domain.Wallet `json:"wallet"`
	AccountID       string         `json:"account_id"`
	Alias           string         `json:"alias"`
	BalanceTinybars int64          `json:"balance_tinybars"`
	IsDeleted       bool           `json:"is_deleted"`
	Network         domain.Network `json:"network"`
	LastSyncedAt    time.Time      `json:"last_synced_at"`
}

// LifecycleService composes account creation, custody, funding and sync into
// the user-facing facade operations.
type LifecycleService interface {
	CreateCompleteWallet(ctx context.Context, req CompleteWalletRequest) (*CompleteWalletResult, error)
	GetWalletStatus(ctx context.Context, walletID uuid.UUID) (*WalletStatus, error)
	FundExistingWallet(ctx context.Context, walletID uuid.UUID, provider domain.Provider, fiatAmountCents int64, userEmail string) (*domain.FundingRequest, error)
	SyncWalletBalance(ctx context.Context, walletID uuid.UUID) (int64, error)
}

// TokenClaims holds the parsed JWT claims for API callers.
type TokenClaims struct {
	UserID    uuid.UUID
	UserEmail string
}

// TokenService handles JWT token operations for the facade API.
type TokenService interface {
	Generate(userID uuid.UUID, userEmail string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}
