package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"alias-wallet-orchestrator/internal/core/domain"
	"alias-wallet-orchestrator/pkg/apperror"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// GatewayConfig carries one provider's credentials, endpoint and fee schedule.
type GatewayConfig struct {
	BaseURL       string
	APIKey        string
	Secret        string
	FeePercentage float64
	FeeFixedCents int64
	MinCents      int64
	MaxCents      int64
}

// gateway is the shared HTTP machinery for provider adapters. Requests are
// signed with HMAC-SHA256 over METHOD|PATH|TIMESTAMP|BODY.
type gateway struct {
	provider   domain.Provider
	name       string
	cfg        GatewayConfig
	httpClient HTTPClient
	log        zerolog.Logger
}

func newGateway(provider domain.Provider, name string, cfg GatewayConfig, httpClient HTTPClient, log zerolog.Logger) gateway {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return gateway{
		provider:   provider,
		name:       name,
		cfg:        cfg,
		httpClient: httpClient,
		log:        log,
	}
}

// Provider returns the provider identifier.
func (g *gateway) Provider() domain.Provider { return g.provider }

// Name returns the human-readable provider name.
func (g *gateway) Name() string { return g.name }

// Limits returns the provider's accepted fiat range in cents.
func (g *gateway) Limits() (int64, int64) { return g.cfg.MinCents, g.cfg.MaxCents }

// Quote returns the configured fee schedule. Providers with live quote APIs
// can override this; both current providers publish static schedules.
func (g *gateway) Quote(ctx context.Context, fiatAmountCents int64) (*domain.FeeBreakdown, error) {
	if fiatAmountCents <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	return &domain.FeeBreakdown{
		Percentage: g.cfg.FeePercentage,
		FixedCents: g.cfg.FeeFixedCents,
	}, nil
}

func (g *gateway) sign(method, path string, timestamp int64, body []byte) string {
	mac := hmac.New(sha256.New, []byte(g.cfg.Secret))
	fmt.Fprintf(mac, "%s|%s|%d|%s", method, path, timestamp, body)
	return hex.EncodeToString(mac.Sum(nil))
}

// do performs one signed request. Transport and server failures come back as
// TRN_002 carrying the provider name.
func (g *gateway) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	var err error
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", g.name, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, g.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", g.name, err)
	}

	now := time.Now().Unix()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", g.cfg.APIKey)
	req.Header.Set("X-Timestamp", strconv.FormatInt(now, 10))
	req.Header.Set("X-Signature", g.sign(method, path, now, payload))

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return apperror.ErrProviderUnavailable(g.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		g.log.Warn().
			Int("status", resp.StatusCode).
			Str("provider", g.name).
			Str("path", path).
			Msg("provider request rejected")
		return apperror.ErrProviderUnavailable(g.name, fmt.Errorf("%s returned %d: %s", g.name, resp.StatusCode, data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperror.ErrProviderUnavailable(g.name, fmt.Errorf("decode %s response: %w", g.name, err))
		}
	}
	return nil
}

// mapProviderState normalizes a provider status string onto the funding
// state machine.
func mapProviderState(s string) domain.FundingState {
	switch s {
	case "completed", "settled", "success":
		return domain.FundingStateSettled
	case "failed", "declined", "expired":
		return domain.FundingStateFailed
	case "cancelled", "canceled":
		return domain.FundingStateCancelled
	default:
		return domain.FundingStateAwaitingPayment
	}
}
