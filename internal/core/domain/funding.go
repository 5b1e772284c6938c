package domain

import (
	"time"

	"github.com/google/uuid"
)

// Provider identifies a fiat-to-crypto payment provider.
type Provider string

const (
	ProviderAlchemy Provider = "alchemy"
	ProviderBanxa   Provider = "banxa"
)

// FundingState is the lifecycle state of a funding request.
type FundingState string

const (
	FundingStateCreated         FundingState = "created"
	FundingStateAwaitingPayment FundingState = "awaiting_payment"
	FundingStateSettled         FundingState = "settled"
	FundingStateFailed          FundingState = "failed"
	FundingStateCancelled       FundingState = "cancelled"
)

// IsTerminal reports whether no further transitions are allowed.
func (s FundingState) IsTerminal() bool {
	return s == FundingStateSettled || s == FundingStateFailed || s == FundingStateCancelled
}

// CanTransition reports whether the move s -> next is a legal one.
// created -> awaiting_payment -> settled | failed | cancelled; created may
// also jump straight to a terminal state when the first poll already finds
// the provider settled or cancelled.
func (s FundingState) CanTransition(next FundingState) bool {
	if s.IsTerminal() {
		return false
	}
	switch s {
	case FundingStateCreated:
		return next == FundingStateAwaitingPayment || next.IsTerminal()
	case FundingStateAwaitingPayment:
		return next.IsTerminal()
	}
	return false
}

// FeeBreakdown is a provider's fee schedule applied to a fiat amount.
type FeeBreakdown struct {
	Percentage float64 `json:"percentage"` // e.g. 0.03 for 3%
	FixedCents int64   `json:"fixed_cents"`
}

// FundingRequest tracks one fiat-to-crypto conversion through a payment
// provider. EstimatedTinybars is advisory only; SettledTinybars records the
// provider-reported settlement amount and is the only figure ever credited.
// A settled request is immutable.
type FundingRequest struct {
	ID                uuid.UUID    `json:"id"`
	WalletID          uuid.UUID    `json:"wallet_id"`
	Provider          Provider     `json:"provider"`
	FiatAmountCents   int64        `json:"fiat_amount_cents"`
	Fees              FeeBreakdown `json:"fees"`
	EstimatedTinybars int64        `json:"estimated_tinybars"`
	CheckoutURL       string       `json:"checkout_url"`
	ProviderTxID      string       `json:"provider_tx_id"`
	State             FundingState `json:"state"`
	SettledTinybars   *int64       `json:"settled_tinybars,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
}

// ProviderQuote is the per-provider cost preview for a fiat amount.
type ProviderQuote struct {
	Provider          Provider     `json:"provider"`
	Name              string       `json:"name"`
	FiatAmountCents   int64        `json:"fiat_amount_cents"`
	Fees              FeeBreakdown `json:"fees"`
	TotalFeesCents    int64        `json:"total_fees_cents"`
	NetAmountCents    int64        `json:"net_amount_cents"`
	EstimatedTinybars int64        `json:"estimated_tinybars"`
	MinAmountCents    int64        `json:"min_amount_cents"`
	MaxAmountCents    int64        `json:"max_amount_cents"`
}
