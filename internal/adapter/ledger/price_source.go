package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"alias-wallet-orchestrator/internal/core/ports"

	"github.com/rs/zerolog"
)

// PriceSource implements ports.PriceSource against an exchange-rate REST
// endpoint. Failures are TRN_003; the caching and stale-fallback policy lives
// in the funding service, not here.
type PriceSource struct {
	url        string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewPriceSource creates a price source reading from the given URL.
func NewPriceSource(url string, httpClient HTTPClient, log zerolog.Logger) *PriceSource {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &PriceSource{url: url, httpClient: httpClient, log: log}
}

// CurrentPrice fetches the fiat price of one whole crypto unit.
func (s *PriceSource) CurrentPrice(ctx context.Context) (*ports.UnitPrice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build price request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch unit price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price endpoint returned %d", resp.StatusCode)
	}

	var body struct {
		PriceCents float64 `json:"price_cents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode price response: %w", err)
	}
	if body.PriceCents <= 0 {
		return nil, fmt.Errorf("price endpoint returned non-positive price %f", body.PriceCents)
	}

	return &ports.UnitPrice{PriceCents: body.PriceCents, FetchedAt: time.Now().UTC()}, nil
}
