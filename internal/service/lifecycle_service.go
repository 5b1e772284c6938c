package service

import (
	"context"
	"sync"
	"time"

	"alias-wallet-orchestrator/internal/core/domain"
	"alias-wallet-orchestrator/internal/core/ports"
	"alias-wallet-orchestrator/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LifecycleServiceImpl implements ports.LifecycleService, composing account
// creation, custody, funding and balance sync into the facade operations. A
// short-lived in-memory lock keyed by user id guarantees at most one
// in-flight wallet creation per user.
type LifecycleServiceImpl struct {
	accounts   ports.AccountService
	funding    ports.FundingService
	walletRepo ports.WalletRepository
	ledger     ports.LedgerClient
	log        zerolog.Logger

	mu       sync.Mutex
	inFlight map[uuid.UUID]*sync.Mutex
}

// NewLifecycleService creates a new LifecycleServiceImpl.
func NewLifecycleService(
	accounts ports.AccountService,
	funding ports.FundingService,
	walletRepo ports.WalletRepository,
	ledger ports.LedgerClient,
	log zerolog.Logger,
) *LifecycleServiceImpl {
	return &LifecycleServiceImpl{
		accounts:   accounts,
		funding:    funding,
		walletRepo: walletRepo,
		ledger:     ledger,
		log:        log,
		inFlight:   make(map[uuid.UUID]*sync.Mutex),
	}
}

// CreateCompleteWallet creates the ledger account and opens the funding
// checkout in one flow. If funding-request creation fails after the account
// exists, the wallet is still returned with an empty checkout URL so funding
// can be retried alone — recreating the account would risk a duplicate.
func (s *LifecycleServiceImpl) CreateCompleteWallet(ctx context.Context, req ports.CompleteWalletRequest) (*ports.CompleteWalletResult, error) {
	if req.UserEmail == "" {
		return nil, apperror.Validation("user email is required")
	}
	if req.FundingCents <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	lock := s.userLock(req.UserID)
	lock.Lock()
	defer lock.Unlock()

	network := req.Network
	if network == "" {
		network = domain.NetworkTestnet
	}

	creation, err := s.accounts.CreateAliasWallet(ctx, req.UserID, req.UserEmail, network)
	if err != nil {
		return nil, err
	}

	result := &ports.CompleteWalletResult{
		Wallet:    creation.Wallet,
		Alias:     creation.Alias,
		AccountID: creation.AccountID,
	}

	fr, err := s.funding.CreateFundingRequest(ctx, creation.Wallet.ID, req.Provider, req.FundingCents, req.UserEmail)
	if err != nil {
		// The account exists and the key is in custody; funding alone failed
		// and can be retried through FundExistingWallet.
		s.log.Warn().Err(err).
			Str("wallet_id", creation.Wallet.ID.String()).
			Msg("wallet created but funding request failed")
		result.FundingError = err.Error()
		return result, nil
	}

	result.CheckoutURL = fr.CheckoutURL
	result.FundingRequestID = &fr.ID
	result.EstimatedTinybars = fr.EstimatedTinybars
	return result, nil
}

// GetWalletStatus joins the local wallet row with live ledger account data.
// The only mutation a status read performs is the balance-cache refresh.
func (s *LifecycleServiceImpl) GetWalletStatus(ctx context.Context, walletID uuid.UUID) (*ports.WalletStatus, error) {
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}

	info, err := s.ledger.GetAccountInfo(ctx, wallet.AccountID)
	if err != nil {
		return nil, apperror.ErrLedgerUnavailable(err)
	}
	if info == nil {
		return nil, apperror.ErrNotFound("ledger account")
	}

	now := time.Now().UTC()
	if err := s.walletRepo.UpdateBalance(ctx, walletID, info.BalanceTinybars, now); err != nil {
		s.log.Warn().Err(err).Str("wallet_id", walletID.String()).Msg("balance cache refresh failed")
	} else {
		wallet.BalanceTinybars = info.BalanceTinybars
		wallet.LastSyncedAt = now
	}

	return &ports.WalletStatus{
		Wallet:          wallet,
		AccountID:       wallet.AccountID,
		Alias:           wallet.Alias,
		BalanceTinybars: info.BalanceTinybars,
		IsDeleted:       info.IsDeleted,
		Network:         wallet.Network,
		LastSyncedAt:    wallet.LastSyncedAt,
	}, nil
}

// FundExistingWallet opens a new funding checkout against an existing wallet.
// The caller's email is forwarded to the provider checkout.
func (s *LifecycleServiceImpl) FundExistingWallet(ctx context.Context, walletID uuid.UUID, provider domain.Provider, fiatAmountCents int64, userEmail string) (*domain.FundingRequest, error) {
	return s.funding.CreateFundingRequest(ctx, walletID, provider, fiatAmountCents, userEmail)
}

// SyncWalletBalance refreshes the wallet's cached balance from the ledger
// and returns the fresh value.
func (s *LifecycleServiceImpl) SyncWalletBalance(ctx context.Context, walletID uuid.UUID) (int64, error) {
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return 0, apperror.ErrDatabaseError(err)
	}
	if wallet == nil {
		return 0, apperror.ErrNotFound("wallet")
	}

	balance, err := s.ledger.GetBalance(ctx, wallet.AccountID)
	if err != nil {
		return 0, apperror.ErrLedgerUnavailable(err)
	}
	if err := s.walletRepo.UpdateBalance(ctx, walletID, balance, time.Now().UTC()); err != nil {
		return 0, apperror.ErrDatabaseError(err)
	}
	return balance, nil
}

// userLock returns the per-user mutex used as the single-flight guard.
func (s *LifecycleServiceImpl) userLock(userID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.inFlight[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.inFlight[userID] = lock
	}
	return lock
}
