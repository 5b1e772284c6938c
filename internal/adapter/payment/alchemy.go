package payment

import (
	"context"
	"net/http"

	"alias-wallet-orchestrator/internal/core/domain"
	"alias-wallet-orchestrator/internal/core/ports"

	"github.com/rs/zerolog"
)

// AlchemyGateway implements ports.PaymentGateway for Alchemy Pay.
type AlchemyGateway struct {
	gateway
}

// NewAlchemyGateway creates the Alchemy Pay adapter.
func NewAlchemyGateway(cfg GatewayConfig, httpClient HTTPClient, log zerolog.Logger) *AlchemyGateway {
	return &AlchemyGateway{
		gateway: newGateway(domain.ProviderAlchemy, "Alchemy Pay", cfg, httpClient, log),
	}
}

type alchemyCheckoutRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	CryptoAsset string `json:"crypto_asset"`
	Destination string `json:"destination"`
	Memo        string `json:"memo"`
	Email       string `json:"email"`
	ReturnURL   string `json:"return_url"`
	CancelURL   string `json:"cancel_url"`
}

type alchemyCheckoutResponse struct {
	PayURL  string `json:"pay_url"`
	OrderNo string `json:"order_no"`
}

// CreateCheckout opens an Alchemy Pay checkout session.
func (g *AlchemyGateway) CreateCheckout(ctx context.Context, req ports.CheckoutRequest) (*ports.Checkout, error) {
	var resp alchemyCheckoutResponse
	err := g.do(ctx, http.MethodPost, "/open/api/v4/merchant/order/create", alchemyCheckoutRequest{
		AmountCents: req.FiatAmountCents,
		Currency:    "USD",
		CryptoAsset: "HBAR",
		Destination: req.DestinationAccount,
		Memo:        req.Alias,
		Email:       req.UserEmail,
		ReturnURL:   req.ReturnURL,
		CancelURL:   req.CancelURL,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &ports.Checkout{CheckoutURL: resp.PayURL, ProviderTxID: resp.OrderNo}, nil
}

type alchemyStatusResponse struct {
	Status          string `json:"status"`
	CryptoAmount    int64  `json:"crypto_amount"`
	CryptoAmountRaw string `json:"crypto_amount_raw"`
}

// GetStatus polls an order's settlement state.
func (g *AlchemyGateway) GetStatus(ctx context.Context, providerTxID string) (*ports.ProviderStatus, error) {
	var resp alchemyStatusResponse
	if err := g.do(ctx, http.MethodGet, "/open/api/v4/merchant/order/"+providerTxID, nil, &resp); err != nil {
		return nil, err
	}
	return &ports.ProviderStatus{
		State:           mapProviderState(resp.Status),
		SettledTinybars: resp.CryptoAmount,
	}, nil
}
