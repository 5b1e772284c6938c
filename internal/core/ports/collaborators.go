package ports

import (
	"context"
	"time"

	"alias-wallet-orchestrator/internal/core/domain"
)

// --- Ledger Client ---

// AccountCreation is the result of a ledger account-create submission.
type AccountCreation struct {
	AccountID     string
	TransactionID string
	CostTinybars  int64
}

// AccountInfo mirrors the ledger's account info query result.
type AccountInfo struct {
	AccountID       string
	Alias           string
	BalanceTinybars int64
	IsDeleted       bool
}

// TokenInfo mirrors the ledger's token info query result. A nil TokenInfo
// from GetTokenInfo means the token does not exist.
type TokenInfo struct {
	TokenID         string
	Name            string
	Symbol          string
	TotalSupply     int64
	TreasuryAccount string
}

// LedgerResult is the common shape of a mutating ledger call.
type LedgerResult struct {
	TransactionID string
	CostTinybars  int64
}

// LedgerClient is the capability surface of the ledger network. Submissions,
// once sent, cannot be cancelled; ctx deadlines only bound the local wait.
type LedgerClient interface {
	CreateAccount(ctx context.Context, publicKey, alias string, initialBalance int64) (*AccountCreation, error)
	GetBalance(ctx context.Context, accountID string) (int64, error)
	GetAccountInfo(ctx context.Context, accountID string) (*AccountInfo, error)
	Transfer(ctx context.Context, from, to string, amountTinybars int64) (*LedgerResult, error)
	CreateFile(ctx context.Context, contents []byte, memo string) (fileID string, res *LedgerResult, err error)
	CreateToken(ctx context.Context, name, symbol, treasuryAccount, memo string) (tokenID string, res *LedgerResult, err error)
	MintNFT(ctx context.Context, tokenID string, metadata []byte) (serialNumber int64, res *LedgerResult, err error)
	GetTokenInfo(ctx context.Context, tokenID string) (*TokenInfo, error)
	GetTransactionStatus(ctx context.Context, transactionID string) (domain.TransferStatus, error)
}

// --- Payment Provider Gateway ---

// CheckoutRequest is the input for a provider checkout session.
type CheckoutRequest struct {
	FiatAmountCents    int64
	DestinationAccount string
	Alias              string
	UserEmail          string
	ReturnURL          string
	CancelURL          string
}

// Checkout is the provider's checkout session handle.
type Checkout struct {
	CheckoutURL  string
	ProviderTxID string
}

// ProviderStatus is a provider's settlement report for one checkout.
type ProviderStatus struct {
	State           domain.FundingState // awaiting_payment | settled | failed | cancelled
	SettledTinybars int64               // provider-reported, only meaningful when settled
}

// PaymentGateway is one provider's checkout capability.
type PaymentGateway interface {
	Provider() domain.Provider
	// Quote returns the provider's current fee schedule for the amount.
	Quote(ctx context.Context, fiatAmountCents int64) (*domain.FeeBreakdown, error)
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error)
	GetStatus(ctx context.Context, providerTxID string) (*ProviderStatus, error)
	// Limits returns the provider's accepted fiat range in cents.
	Limits() (minCents, maxCents int64)
	Name() string
}

// --- Secure Credential Vault ---

// CredentialVault is the platform-protected secret store. Get returns
// (nil, nil) when the key is absent.
type CredentialVault interface {
	Put(ctx context.Context, namespacedKey string, secret []byte) error
	Get(ctx context.Context, namespacedKey string) ([]byte, error)
	Delete(ctx context.Context, namespacedKey string) error
}

// --- Unit price ---

// UnitPrice is a fiat price for one whole crypto unit, with its fetch time.
type UnitPrice struct {
	PriceCents float64
	FetchedAt  time.Time
}

// PriceSource produces the current crypto unit price.
type PriceSource interface {
	CurrentPrice(ctx context.Context) (*UnitPrice, error)
}

// PriceCache holds the last fetched unit price with a bounded TTL.
// Get returns (nil, nil) when no value is cached.
type PriceCache interface {
	Get(ctx context.Context) (*UnitPrice, error)
	Set(ctx context.Context, price *UnitPrice, ttl time.Duration) error
}
