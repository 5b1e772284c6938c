package payment

import (
	"context"
	"net/http"

	"alias-wallet-orchestrator/internal/core/domain"
	"alias-wallet-orchestrator/internal/core/ports"

	"github.com/rs/zerolog"
)

// BanxaGateway implements ports.PaymentGateway for Banxa.
type BanxaGateway struct {
	gateway
}

// NewBanxaGateway creates the Banxa adapter.
func NewBanxaGateway(cfg GatewayConfig, httpClient HTTPClient, log zerolog.Logger) *BanxaGateway {
	return &BanxaGateway{
		gateway: newGateway(domain.ProviderBanxa, "Banxa", cfg, httpClient, log),
	}
}

type banxaOrderRequest struct {
	FiatAmount    int64  `json:"fiat_amount_cents"`
	FiatCode      string `json:"fiat_code"`
	CoinCode      string `json:"coin_code"`
	WalletAddress string `json:"wallet_address"`
	WalletTag     string `json:"wallet_tag"`
	AccountEmail  string `json:"account_email"`
	ReturnURLOK   string `json:"return_url_on_success"`
	ReturnURLFail string `json:"return_url_on_cancelled"`
}

type banxaOrderResponse struct {
	Order struct {
		ID          string `json:"id"`
		CheckoutURL string `json:"checkout_url"`
	} `json:"order"`
}

// CreateCheckout opens a Banxa hosted checkout.
func (g *BanxaGateway) CreateCheckout(ctx context.Context, req ports.CheckoutRequest) (*ports.Checkout, error) {
	var resp banxaOrderResponse
	err := g.do(ctx, http.MethodPost, "/api/orders", banxaOrderRequest{
		FiatAmount:    req.FiatAmountCents,
		FiatCode:      "USD",
		CoinCode:      "HBAR",
		WalletAddress: req.DestinationAccount,
		WalletTag:     req.Alias,
		AccountEmail:  req.UserEmail,
		ReturnURLOK:   req.ReturnURL,
		ReturnURLFail: req.CancelURL,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &ports.Checkout{CheckoutURL: resp.Order.CheckoutURL, ProviderTxID: resp.Order.ID}, nil
}

type banxaStatusResponse struct {
	Order struct {
		Status     string `json:"status"`
		CoinAmount int64  `json:"coin_amount_tinybars"`
	} `json:"order"`
}

// GetStatus polls an order's settlement state.
func (g *BanxaGateway) GetStatus(ctx context.Context, providerTxID string) (*ports.ProviderStatus, error) {
	var resp banxaStatusResponse
	if err := g.do(ctx, http.MethodGet, "/api/orders/"+providerTxID, nil, &resp); err != nil {
		return nil, err
	}
	return &ports.ProviderStatus{
		State:           mapProviderState(resp.Order.Status),
		SettledTinybars: resp.Order.CoinAmount,
	}, nil
}
