package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"alias-wallet-orchestrator/internal/core/domain"
	"alias-wallet-orchestrator/internal/core/ports"
	"alias-wallet-orchestrator/pkg/apperror"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.LedgerClient against the ledger gateway's REST API.
// Submissions cannot be cancelled once sent; ctx only bounds the local wait.
type Client struct {
	baseURL    string
	network    string
	operatorID string
	apiKey     string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewClient creates a ledger REST client.
func NewClient(baseURL, network, operatorID, apiKey string, httpClient HTTPClient, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		network:    network,
		operatorID: operatorID,
		apiKey:     apiKey,
		httpClient: httpClient,
		log:        log,
	}
}

type createAccountRequest struct {
	PublicKey      string `json:"public_key"`
	Alias          string `json:"alias"`
	InitialBalance int64  `json:"initial_balance"`
	Network        string `json:"network"`
}

type createAccountResponse struct {
	AccountID     string `json:"account_id"`
	TransactionID string `json:"transaction_id"`
	CostTinybars  int64  `json:"cost_tinybars"`
}

// CreateAccount submits an alias-bound account creation. A ledger rejection
// is fatal: resubmitting the same key and alias will be rejected again.
func (c *Client) CreateAccount(ctx context.Context, publicKey, alias string, initialBalance int64) (*ports.AccountCreation, error) {
	var resp createAccountResponse
	err := c.do(ctx, http.MethodPost, "/v1/accounts", createAccountRequest{
		PublicKey:      publicKey,
		Alias:          alias,
		InitialBalance: initialBalance,
		Network:        c.network,
	}, &resp)
	if err != nil {
		var rej *rejection
		if errors.As(err, &rej) {
			return nil, apperror.ErrAccountCreationFailed(rej)
		}
		return nil, err
	}
	return &ports.AccountCreation{
		AccountID:     resp.AccountID,
		TransactionID: resp.TransactionID,
		CostTinybars:  resp.CostTinybars,
	}, nil
}

// GetBalance reads the live tinybar balance of an account.
func (c *Client) GetBalance(ctx context.Context, accountID string) (int64, error) {
	var resp struct {
		BalanceTinybars int64 `json:"balance_tinybars"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/accounts/"+accountID+"/balance", nil, &resp); err != nil {
		return 0, err
	}
	return resp.BalanceTinybars, nil
}

// GetAccountInfo reads live account info.
func (c *Client) GetAccountInfo(ctx context.Context, accountID string) (*ports.AccountInfo, error) {
	var resp struct {
		AccountID       string `json:"account_id"`
		Alias           string `json:"alias"`
		BalanceTinybars int64  `json:"balance_tinybars"`
		IsDeleted       bool   `json:"is_deleted"`
	}
	err := c.do(ctx, http.MethodGet, "/v1/accounts/"+accountID, nil, &resp)
	if err != nil {
		if apperror.IsCode(err, apperror.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ports.AccountInfo{
		AccountID:       resp.AccountID,
		Alias:           resp.Alias,
		BalanceTinybars: resp.BalanceTinybars,
		IsDeleted:       resp.IsDeleted,
	}, nil
}

type transferRequest struct {
	From           string `json:"from"`
	To             string `json:"to"`
	AmountTinybars int64  `json:"amount_tinybars"`
}

// Transfer submits a tinybar transfer between two accounts.
func (c *Client) Transfer(ctx context.Context, from, to string, amountTinybars int64) (*ports.LedgerResult, error) {
	var resp ledgerResultResponse
	err := c.do(ctx, http.MethodPost, "/v1/transfers", transferRequest{
		From: from, To: to, AmountTinybars: amountTinybars,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.toResult(), nil
}

type createFileRequest struct {
	Contents []byte `json:"contents"`
	Memo     string `json:"memo"`
}

type createFileResponse struct {
	FileID        string `json:"file_id"`
	TransactionID string `json:"transaction_id"`
	CostTinybars  int64  `json:"cost_tinybars"`
}

// CreateFile stores contents in the ledger file service.
func (c *Client) CreateFile(ctx context.Context, contents []byte, memo string) (string, *ports.LedgerResult, error) {
	var resp createFileResponse
	err := c.do(ctx, http.MethodPost, "/v1/files", createFileRequest{Contents: contents, Memo: memo}, &resp)
	if err != nil {
		return "", nil, err
	}
	return resp.FileID, &ports.LedgerResult{
		TransactionID: resp.TransactionID,
		CostTinybars:  resp.CostTinybars,
	}, nil
}

type createTokenRequest struct {
	Name            string `json:"name"`
	Symbol          string `json:"symbol"`
	TreasuryAccount string `json:"treasury_account"`
	Memo            string `json:"memo"`
}

type createTokenResponse struct {
	TokenID       string `json:"token_id"`
	TransactionID string `json:"transaction_id"`
	CostTinybars  int64  `json:"cost_tinybars"`
}

// CreateToken creates a non-fungible token class with the given treasury.
func (c *Client) CreateToken(ctx context.Context, name, symbol, treasuryAccount, memo string) (string, *ports.LedgerResult, error) {
	var resp createTokenResponse
	err := c.do(ctx, http.MethodPost, "/v1/tokens", createTokenRequest{
		Name: name, Symbol: symbol, TreasuryAccount: treasuryAccount, Memo: memo,
	}, &resp)
	if err != nil {
		return "", nil, err
	}
	return resp.TokenID, &ports.LedgerResult{
		TransactionID: resp.TransactionID,
		CostTinybars:  resp.CostTinybars,
	}, nil
}

type mintRequest struct {
	Metadata []byte `json:"metadata"`
}

type mintResponse struct {
	SerialNumber  int64  `json:"serial_number"`
	TransactionID string `json:"transaction_id"`
	CostTinybars  int64  `json:"cost_tinybars"`
}

// MintNFT mints one serial under the token with the given metadata.
func (c *Client) MintNFT(ctx context.Context, tokenID string, metadata []byte) (int64, *ports.LedgerResult, error) {
	var resp mintResponse
	err := c.do(ctx, http.MethodPost, "/v1/tokens/"+tokenID+"/mint", mintRequest{Metadata: metadata}, &resp)
	if err != nil {
		return 0, nil, err
	}
	return resp.SerialNumber, &ports.LedgerResult{
		TransactionID: resp.TransactionID,
		CostTinybars:  resp.CostTinybars,
	}, nil
}

// GetTokenInfo reads live token info. Returns nil, nil when the token does
// not exist on the ledger.
func (c *Client) GetTokenInfo(ctx context.Context, tokenID string) (*ports.TokenInfo, error) {
	var resp struct {
		TokenID         string `json:"token_id"`
		Name            string `json:"name"`
		Symbol          string `json:"symbol"`
		TotalSupply     int64  `json:"total_supply"`
		TreasuryAccount string `json:"treasury_account"`
	}
	err := c.do(ctx, http.MethodGet, "/v1/tokens/"+tokenID, nil, &resp)
	if err != nil {
		if apperror.IsCode(err, apperror.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ports.TokenInfo{
		TokenID:         resp.TokenID,
		Name:            resp.Name,
		Symbol:          resp.Symbol,
		TotalSupply:     resp.TotalSupply,
		TreasuryAccount: resp.TreasuryAccount,
	}, nil
}

// GetTransactionStatus reads the consensus status of a submitted transaction.
func (c *Client) GetTransactionStatus(ctx context.Context, transactionID string) (domain.TransferStatus, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/transactions/"+transactionID, nil, &resp); err != nil {
		return "", err
	}
	switch resp.Status {
	case "confirmed", "SUCCESS":
		return domain.TransferStatusConfirmed, nil
	case "failed", "FAILED":
		return domain.TransferStatusFailed, nil
	default:
		return domain.TransferStatusPending, nil
	}
}

type ledgerResultResponse struct {
	TransactionID string `json:"transaction_id"`
	CostTinybars  int64  `json:"cost_tinybars"`
}

func (r ledgerResultResponse) toResult() *ports.LedgerResult {
	return &ports.LedgerResult{TransactionID: r.TransactionID, CostTinybars: r.CostTinybars}
}

// rejection is a non-transient 4xx the ledger returned for a well-formed
// request. Resubmitting the same request will fail the same way.
type rejection struct {
	status int
	body   string
}

func (r *rejection) Error() string {
	return fmt.Sprintf("ledger rejected request (%d): %s", r.status, r.body)
}

// do performs one request and decodes the JSON response. Transport and 5xx
// failures come back as TRN_001 so callers can treat them uniformly; a
// non-transient 4xx wraps a *rejection so callers that must not retry can
// tell the two apart.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode ledger request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build ledger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if c.operatorID != "" {
		req.Header.Set("X-Operator-Id", c.operatorID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.ErrLedgerUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return apperror.ErrNotFound("ledger resource")
	}
	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("path", path).
			Str("body", string(data)).
			Msg("ledger request rejected")
		if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return apperror.ErrLedgerUnavailable(&rejection{status: resp.StatusCode, body: string(data)})
		}
		return apperror.ErrLedgerUnavailable(fmt.Errorf("ledger returned %d: %s", resp.StatusCode, data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperror.ErrLedgerUnavailable(fmt.Errorf("decode ledger response: %w", err))
		}
	}
	return nil
}
