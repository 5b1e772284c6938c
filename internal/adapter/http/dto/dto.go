package dto

// CreateWalletRequest is the request body for complete wallet creation.
// The user identity comes from the authenticated token, not the body.
type CreateWalletRequest struct {
	Plan         string `json:"plan" binding:"omitempty,max=50"`
	FundingCents int64  `json:"funding_cents" binding:"required,gt=0"`
	Provider     string `json:"provider" binding:"required,oneof=alchemy banxa"`
	Network      string `json:"network" binding:"omitempty,oneof=testnet mainnet"`
}

// CreateWalletResponse is the response body for complete wallet creation.
// FundingError is set when the wallet was created but checkout could not be
// opened; the wallet is kept either way.
type CreateWalletResponse struct {
	WalletID          string  `json:"wallet_id"`
	AccountID         string  `json:"account_id"`
	Alias             string  `json:"alias"`
	Network           string  `json:"network"`
	CheckoutURL       string  `json:"checkout_url,omitempty"`
	FundingRequestID  *string `json:"funding_request_id,omitempty"`
	EstimatedTinybars int64   `json:"estimated_tinybars,omitempty"`
	FundingError      string  `json:"funding_error,omitempty"`
}

// WalletStatusResponse is the response for a wallet status query.
type WalletStatusResponse struct {
	WalletID        string `json:"wallet_id"`
	AccountID       string `json:"account_id"`
	Alias           string `json:"alias"`
	BalanceTinybars int64  `json:"balance_tinybars"`
	IsDeleted       bool   `json:"is_deleted"`
	Network         string `json:"network"`
	LastSyncedAt    string `json:"last_synced_at"`
}

// FundWalletRequest is the request body for funding an existing wallet.
type FundWalletRequest struct {
	AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
	Provider    string `json:"provider" binding:"required,oneof=alchemy banxa"`
}

// FundingResponse is the response body for funding request state.
type FundingResponse struct {
	ID                string  `json:"id"`
	WalletID          string  `json:"wallet_id"`
	Provider          string  `json:"provider"`
	State             string  `json:"state"`
	FiatAmountCents   int64   `json:"fiat_amount_cents"`
	FeePercentage     float64 `json:"fee_percentage"`
	FeeFixedCents     int64   `json:"fee_fixed_cents"`
	EstimatedTinybars int64   `json:"estimated_tinybars"`
	SettledTinybars   *int64  `json:"settled_tinybars,omitempty"`
	CheckoutURL       string  `json:"checkout_url,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

// QuoteResponse is the per-provider cost preview for a fiat amount.
type QuoteResponse struct {
	Provider          string  `json:"provider"`
	Name              string  `json:"name"`
	FiatAmountCents   int64   `json:"fiat_amount_cents"`
	FeePercentage     float64 `json:"fee_percentage"`
	FeeFixedCents     int64   `json:"fee_fixed_cents"`
	TotalFeesCents    int64   `json:"total_fees_cents"`
	NetAmountCents    int64   `json:"net_amount_cents"`
	EstimatedTinybars int64   `json:"estimated_tinybars"`
	MinAmountCents    int64   `json:"min_amount_cents"`
	MaxAmountCents    int64   `json:"max_amount_cents"`
}

// QuoteListResponse wraps the provider quotes for one amount.
type QuoteListResponse struct {
	AmountCents int64           `json:"amount_cents"`
	Quotes      []QuoteResponse `json:"quotes"`
}

// SyncResultResponse is the response for a single entity sync.
type SyncResultResponse struct {
	TokenID       string `json:"token_id,omitempty"`
	LedgerFileID  string `json:"ledger_file_id,omitempty"`
	TransactionID string `json:"transaction_id"`
}

// SyncRunResponse is the response for a batch sync run.
type SyncRunResponse struct {
	Synced int      `json:"synced"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors,omitempty"`
}

// VerificationItemResponse is one folder's verification outcome.
type VerificationItemResponse struct {
	FolderID     string `json:"folder_id"`
	IsVerified   bool   `json:"is_verified"`
	TokenID      string `json:"token_id,omitempty"`
	LastVerified string `json:"last_verified,omitempty"`
	Error        string `json:"error,omitempty"`
}

// VerificationListResponse wraps the per-folder verification results.
type VerificationListResponse struct {
	Results []VerificationItemResponse `json:"results"`
}

// BlockchainStatusResponse is the aggregate anchoring report.
type BlockchainStatusResponse struct {
	TotalFolders          int `json:"total_folders"`
	VerifiedParentFolders int `json:"verified_parent_folders"`
	VerifiedSubfolders    int `json:"verified_subfolders"`
	VerifiedFiles         int `json:"verified_files"`
	Pending               int `json:"pending"`
	Failed                int `json:"failed"`
	TotalVerifiedItems    int `json:"total_verified_items"`
}
