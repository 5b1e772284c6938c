package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"alias-wallet-orchestrator/internal/core/domain"
	"alias-wallet-orchestrator/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDoer returns canned responses and records the last request.
type stubDoer struct {
	lastReq *http.Request
	status  int
	body    string
	err     error
}

func (d *stubDoer) Do(req *http.Request) (*http.Response, error) {
	d.lastReq = req
	if d.err != nil {
		return nil, d.err
	}
	return &http.Response{
		StatusCode: d.status,
		Body:       io.NopCloser(bytes.NewBufferString(d.body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func newTestClient(d *stubDoer) *Client {
	return NewClient("http://ledger.local", "testnet", "0.0.2", "test-key", d, zerolog.Nop())
}

func TestClient_CreateAccount(t *testing.T) {
	doer := &stubDoer{
		status: http.StatusOK,
		body:   `{"account_id":"0.0.123456","transaction_id":"0.0.2@1756.1","cost_tinybars":500000}`,
	}
	client := newTestClient(doer)

	result, err := client.CreateAccount(context.Background(), "302a300506", "wallet_ab_cd_1", 0)
	require.NoError(t, err)
	assert.Equal(t, "0.0.123456", result.AccountID)
	assert.Equal(t, int64(500000), result.CostTinybars)

	require.NotNil(t, doer.lastReq)
	assert.Equal(t, http.MethodPost, doer.lastReq.Method)
	assert.Equal(t, "/v1/accounts", doer.lastReq.URL.Path)
	assert.Equal(t, "Bearer test-key", doer.lastReq.Header.Get("Authorization"))

	var sent map[string]any
	require.NoError(t, json.NewDecoder(doer.lastReq.Body).Decode(&sent))
	assert.Equal(t, "wallet_ab_cd_1", sent["alias"])
	assert.Equal(t, "testnet", sent["network"])
}

func TestClient_CreateAccount_RejectionIsFatal(t *testing.T) {
	doer := &stubDoer{status: http.StatusBadRequest, body: `{"error":"INVALID_ALIAS"}`}
	client := newTestClient(doer)

	_, err := client.CreateAccount(context.Background(), "302a300506", "wallet_ab_cd_1", 0)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeAccountCreateFailed))
	assert.False(t, apperror.IsCode(err, apperror.CodeLedgerUnavailable))
	assert.Contains(t, err.Error(), "INVALID_ALIAS")
}

func TestClient_CreateAccount_RateLimitIsRetryable(t *testing.T) {
	doer := &stubDoer{status: http.StatusTooManyRequests, body: `{"error":"BUSY"}`}
	client := newTestClient(doer)

	_, err := client.CreateAccount(context.Background(), "302a300506", "wallet_ab_cd_1", 0)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeLedgerUnavailable))
}

func TestClient_TransportErrorIsLedgerUnavailable(t *testing.T) {
	doer := &stubDoer{err: errors.New("connection refused")}
	client := newTestClient(doer)

	_, err := client.GetBalance(context.Background(), "0.0.123")
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeLedgerUnavailable))
}

func TestClient_ServerErrorIsLedgerUnavailable(t *testing.T) {
	doer := &stubDoer{status: http.StatusBadGateway, body: `{"error":"upstream"}`}
	client := newTestClient(doer)

	_, err := client.GetAccountInfo(context.Background(), "0.0.123")
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeLedgerUnavailable))
}

func TestClient_GetTokenInfo_NotFoundIsNilNil(t *testing.T) {
	doer := &stubDoer{status: http.StatusNotFound, body: `{"error":"not found"}`}
	client := newTestClient(doer)

	info, err := client.GetTokenInfo(context.Background(), "0.0.999")
	assert.NoError(t, err)
	assert.Nil(t, info)
}

func TestClient_GetTokenInfo(t *testing.T) {
	doer := &stubDoer{
		status: http.StatusOK,
		body:   `{"token_id":"0.0.555","name":"Family Documents","symbol":"FAM0","total_supply":3,"treasury_account":"0.0.100"}`,
	}
	client := newTestClient(doer)

	info, err := client.GetTokenInfo(context.Background(), "0.0.555")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "0.0.555", info.TokenID)
	assert.Equal(t, "0.0.100", info.TreasuryAccount)
}

func TestClient_Transfer(t *testing.T) {
	doer := &stubDoer{
		status: http.StatusOK,
		body:   `{"transaction_id":"0.0.2@1756.4","cost_tinybars":100000}`,
	}
	client := newTestClient(doer)

	res, err := client.Transfer(context.Background(), "0.0.100", "0.0.123456", 750000000)
	require.NoError(t, err)
	assert.Equal(t, "0.0.2@1756.4", res.TransactionID)
	assert.Equal(t, "/v1/transfers", doer.lastReq.URL.Path)

	var sent map[string]any
	require.NoError(t, json.NewDecoder(doer.lastReq.Body).Decode(&sent))
	assert.Equal(t, "0.0.100", sent["from"])
	assert.Equal(t, float64(750000000), sent["amount_tinybars"])
}

func TestClient_GetTransactionStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want domain.TransferStatus
	}{
		{"confirmed", domain.TransferStatusConfirmed},
		{"SUCCESS", domain.TransferStatusConfirmed},
		{"FAILED", domain.TransferStatusFailed},
		{"submitted", domain.TransferStatusPending},
	}
	for _, tc := range cases {
		doer := &stubDoer{status: http.StatusOK, body: `{"status":"` + tc.raw + `"}`}
		client := newTestClient(doer)

		status, err := client.GetTransactionStatus(context.Background(), "0.0.2@1756.4")
		require.NoError(t, err)
		assert.Equal(t, tc.want, status, "raw status %q", tc.raw)
	}
}

func TestClient_MintNFT(t *testing.T) {
	doer := &stubDoer{
		status: http.StatusOK,
		body:   `{"serial_number":7,"transaction_id":"0.0.2@1756.9","cost_tinybars":20000}`,
	}
	client := newTestClient(doer)

	serial, res, err := client.MintNFT(context.Background(), "0.0.555", []byte(`{"checksum":"abc"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(7), serial)
	assert.Equal(t, "0.0.2@1756.9", res.TransactionID)
	assert.Equal(t, "/v1/tokens/0.0.555/mint", doer.lastReq.URL.Path)
}
