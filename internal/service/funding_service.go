package service

import (
	"context"
	"regexp"
	"time"

	"alias-wallet-orchestrator/internal/core/domain"
	"alias-wallet-orchestrator/internal/core/ports"
	"alias-wallet-orchestrator/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// priceTTL bounds how long a cached unit price may be served without at
// least one refresh attempt. priceRetention keeps the entry around well past
// that so a failed refresh can still fall back to the stale value.
const (
	priceTTL       = 5 * time.Minute
	priceRetention = 24 * time.Hour
)

const tinybarsPerUnit = 100_000_000

var accountIDPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// FundingServiceImpl implements ports.FundingService. It owns no scheduling:
// PollStatus is caller-driven and the service is stateless between calls
// apart from the TTL-bounded price cache.
type FundingServiceImpl struct {
	gateways    []ports.PaymentGateway
	walletRepo  ports.WalletRepository
	fundingRepo ports.FundingRepository
	ledgerTxs   ports.LedgerTxRepository
	ledger      ports.LedgerClient
	priceSource ports.PriceSource
	priceCache  ports.PriceCache
	returnURL   string
	cancelURL   string
	log         zerolog.Logger
}

// NewFundingService creates a new FundingServiceImpl. Gateway order fixes
// the order quotes are reported in.
func NewFundingService(
	gateways []ports.PaymentGateway,
	walletRepo ports.WalletRepository,
	fundingRepo ports.FundingRepository,
	ledgerTxs ports.LedgerTxRepository,
	ledger ports.LedgerClient,
	priceSource ports.PriceSource,
	priceCache ports.PriceCache,
	returnURL, cancelURL string,
	log zerolog.Logger,
) *FundingServiceImpl {
	return &FundingServiceImpl{
		gateways:    gateways,
		walletRepo:  walletRepo,
		fundingRepo: fundingRepo,
		ledgerTxs:   ledgerTxs,
		ledger:      ledger,
		priceSource: priceSource,
		priceCache:  priceCache,
		returnURL:   returnURL,
		cancelURL:   cancelURL,
		log:         log,
	}
}

// QuoteAll computes the cost preview for every registered provider.
func (s *FundingServiceImpl) QuoteAll(ctx context.Context, fiatAmountCents int64) ([]domain.ProviderQuote, error) {
	if fiatAmountCents <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	price, err := s.unitPrice(ctx)
	if err != nil {
		return nil, err
	}

	quotes := make([]domain.ProviderQuote, 0, len(s.gateways))
	for _, gw := range s.gateways {
		fees, err := gw.Quote(ctx, fiatAmountCents)
		if err != nil {
			s.log.Warn().Err(err).Str("provider", string(gw.Provider())).Msg("provider quote failed, skipping")
			continue
		}

		totalFees, net, estimated := computeQuote(fiatAmountCents, *fees, price.PriceCents)
		minCents, maxCents := gw.Limits()
		quotes = append(quotes, domain.ProviderQuote{
			Provider:          gw.Provider(),
			Name:              gw.Name(),
			FiatAmountCents:   fiatAmountCents,
			Fees:              *fees,
			TotalFeesCents:    totalFees,
			NetAmountCents:    net,
			EstimatedTinybars: estimated,
			MinAmountCents:    minCents,
			MaxAmountCents:    maxCents,
		})
	}
	return quotes, nil
}

// CreateFundingRequest validates the amount against provider bounds, confirms
// the destination is the caller's active wallet, opens a provider checkout and
// persists the request in created state. The checkout URL is handed upward;
// this service does not drive any navigation.
func (s *FundingServiceImpl) CreateFundingRequest(
	ctx context.Context,
	walletID uuid.UUID,
	provider domain.Provider,
	fiatAmountCents int64,
	userEmail string,
) (*domain.FundingRequest, error) {
	gw := s.gateway(provider)
	if gw == nil {
		return nil, apperror.ErrUnknownProvider(string(provider))
	}

	minCents, maxCents := gw.Limits()
	if fiatAmountCents < minCents || fiatAmountCents > maxCents {
		return nil, apperror.ErrAmountOutOfBounds(string(provider), minCents, maxCents)
	}

	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	if !wallet.IsActive {
		return nil, apperror.ErrWalletInactive()
	}
	if !accountIDPattern.MatchString(wallet.AccountID) {
		return nil, apperror.ErrInvalidAccountID(wallet.AccountID)
	}

	fees, err := gw.Quote(ctx, fiatAmountCents)
	if err != nil {
		return nil, apperror.ErrProviderUnavailable(string(provider), err)
	}

	price, err := s.unitPrice(ctx)
	if err != nil {
		return nil, err
	}
	_, _, estimated := computeQuote(fiatAmountCents, *fees, price.PriceCents)

	checkout, err := gw.CreateCheckout(ctx, ports.CheckoutRequest{
		FiatAmountCents:    fiatAmountCents,
		DestinationAccount: wallet.AccountID,
		Alias:              wallet.Alias,
		UserEmail:          userEmail,
		ReturnURL:          s.returnURL,
		CancelURL:          s.cancelURL,
	})
	if err != nil {
		return nil, apperror.ErrProviderUnavailable(string(provider), err)
	}

	fr := &domain.FundingRequest{
		ID:                uuid.New(),
		WalletID:          wallet.ID,
		Provider:          provider,
		FiatAmountCents:   fiatAmountCents,
		Fees:              *fees,
		EstimatedTinybars: estimated,
		CheckoutURL:       checkout.CheckoutURL,
		ProviderTxID:      checkout.ProviderTxID,
		State:             domain.FundingStateCreated,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.fundingRepo.Create(ctx, fr); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	s.log.Info().
		Str("funding_request_id", fr.ID.String()).
		Str("provider", string(provider)).
		Int64("fiat_amount_cents", fiatAmountCents).
		Str("provider_tx_id", fr.ProviderTxID).
		Msg("funding request created")

	return fr, nil
}

// PollStatus checks the provider and applies the resulting transition. It is
// the only path out of created/awaiting_payment. Terminal requests are
// returned unchanged.
func (s *FundingServiceImpl) PollStatus(ctx context.Context, fundingRequestID uuid.UUID) (*domain.FundingRequest, error) {
	fr, err := s.fundingRepo.GetByID(ctx, fundingRequestID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if fr == nil {
		return nil, apperror.ErrNotFound("funding request")
	}
	if fr.State.IsTerminal() {
		return fr, nil
	}

	gw := s.gateway(fr.Provider)
	if gw == nil {
		return nil, apperror.ErrUnknownProvider(string(fr.Provider))
	}

	status, err := gw.GetStatus(ctx, fr.ProviderTxID)
	if err != nil {
		return nil, apperror.ErrProviderUnavailable(string(fr.Provider), err)
	}

	switch status.State {
	case domain.FundingStateSettled:
		// Settlement records the provider-reported amount, never the estimate.
		settled := status.SettledTinybars
		if err := s.fundingRepo.UpdateState(ctx, fr.ID, domain.FundingStateSettled, &settled); err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		fr.State = domain.FundingStateSettled
		fr.SettledTinybars = &settled

		s.refreshBalance(ctx, fr.WalletID)
		s.appendSettlementAudit(ctx, fr, settled)

		s.log.Info().
			Str("funding_request_id", fr.ID.String()).
			Int64("settled_tinybars", settled).
			Msg("funding request settled")

	case domain.FundingStateFailed, domain.FundingStateCancelled:
		if err := s.fundingRepo.UpdateState(ctx, fr.ID, status.State, nil); err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		fr.State = status.State

	default:
		// Provider still pending: created advances to awaiting_payment once.
		if fr.State == domain.FundingStateCreated {
			if err := s.fundingRepo.UpdateState(ctx, fr.ID, domain.FundingStateAwaitingPayment, nil); err != nil {
				return nil, apperror.ErrDatabaseError(err)
			}
			fr.State = domain.FundingStateAwaitingPayment
		}
	}

	return fr, nil
}

// unitPrice returns the cached unit price while it is within TTL. Once the
// TTL lapses a refresh is attempted; if the refresh fails a stale price is
// still served rather than blocking the caller.
func (s *FundingServiceImpl) unitPrice(ctx context.Context) (*ports.UnitPrice, error) {
	cached, err := s.priceCache.Get(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("price cache read failed")
		cached = nil
	}
	if cached != nil && time.Since(cached.FetchedAt) < priceTTL {
		return cached, nil
	}

	fresh, err := s.priceSource.CurrentPrice(ctx)
	if err != nil {
		if cached != nil {
			s.log.Warn().Err(err).Time("fetched_at", cached.FetchedAt).Msg("price refresh failed, serving stale price")
			return cached, nil
		}
		return nil, apperror.ErrPriceUnavailable(err)
	}

	if err := s.priceCache.Set(ctx, fresh, priceRetention); err != nil {
		s.log.Warn().Err(err).Msg("price cache write failed")
	}
	return fresh, nil
}

func (s *FundingServiceImpl) gateway(provider domain.Provider) ports.PaymentGateway {
	for _, gw := range s.gateways {
		if gw.Provider() == provider {
			return gw
		}
	}
	return nil
}

// refreshBalance pulls the post-settlement balance from the ledger. Failures
// are logged only: the wallet balance is a cache and the next status read
// refreshes it again.
func (s *FundingServiceImpl) refreshBalance(ctx context.Context, walletID uuid.UUID) {
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil || wallet == nil {
		s.log.Warn().Err(err).Str("wallet_id", walletID.String()).Msg("balance refresh: wallet lookup failed")
		return
	}
	balance, err := s.ledger.GetBalance(ctx, wallet.AccountID)
	if err != nil {
		s.log.Warn().Err(err).Str("account_id", wallet.AccountID).Msg("balance refresh: ledger query failed")
		return
	}
	if err := s.walletRepo.UpdateBalance(ctx, walletID, balance, time.Now().UTC()); err != nil {
		s.log.Warn().Err(err).Str("wallet_id", walletID.String()).Msg("balance refresh: persist failed")
	}
}

func (s *FundingServiceImpl) appendSettlementAudit(ctx context.Context, fr *domain.FundingRequest, settled int64) {
	audit := &domain.LedgerTransaction{
		ID:            uuid.New(),
		EntityType:    domain.EntityTypeWallet,
		EntityID:      fr.WalletID,
		Operation:     domain.OperationFunding,
		TransactionID: fr.ProviderTxID,
		Status:        domain.TransferStatusConfirmed,
		CostTinybars:  settled,
		Timestamp:     time.Now().UTC(),
	}
	if err := s.ledgerTxs.Append(ctx, audit); err != nil {
		s.log.Warn().Err(err).Str("funding_request_id", fr.ID.String()).Msg("failed to append settlement audit row")
	}
}

// computeQuote applies the provider fee schedule and converts the net fiat
// amount to tinybars at the given unit price.
func computeQuote(fiatCents int64, fees domain.FeeBreakdown, priceCents float64) (totalFees, net, estimatedTinybars int64) {
	pctFee := int64(float64(fiatCents) * fees.Percentage)
	totalFees = pctFee + fees.FixedCents
	net = fiatCents - totalFees
	if net <= 0 || priceCents <= 0 {
		return totalFees, net, 0
	}
	units := float64(net) / priceCents
	estimatedTinybars = int64(units * tinybarsPerUnit)
	return totalFees, net, estimatedTinybars
}
