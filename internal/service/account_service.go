package service

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"alias-wallet-orchestrator/internal/core/domain"
	"alias-wallet-orchestrator/internal/core/ports"
	"alias-wallet-orchestrator/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AccountServiceImpl implements ports.AccountService. It generates the key
// pair locally, creates the ledger account bound to a derived alias, persists
// the wallet record, and hands the private key to the custodian before
// reporting success. The private key is never logged or persisted in
// plaintext anywhere along this path.
type AccountServiceImpl struct {
	ledger     ports.LedgerClient
	walletRepo ports.WalletRepository
	ledgerTxs  ports.LedgerTxRepository
	custodian  ports.KeyCustodian
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewAccountService creates a new AccountServiceImpl.
func NewAccountService(
	ledger ports.LedgerClient,
	walletRepo ports.WalletRepository,
	ledgerTxs ports.LedgerTxRepository,
	custodian ports.KeyCustodian,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *AccountServiceImpl {
	return &AccountServiceImpl{
		ledger:     ledger,
		walletRepo: walletRepo,
		ledgerTxs:  ledgerTxs,
		custodian:  custodian,
		transactor: transactor,
		log:        log,
	}
}

// CreateAliasWallet drives the account-creation flow. Callers must not invoke
// it concurrently for the same user; the facade's single-flight guard
// enforces that.
func (s *AccountServiceImpl) CreateAliasWallet(
	ctx context.Context,
	userID uuid.UUID,
	userEmail string,
	network domain.Network,
) (*ports.WalletCreation, error) {
	if !network.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("unknown network %q", network))
	}

	alias := domain.DeriveAlias(userID, userEmail, time.Now().UTC())

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generating key pair: %w", err))
	}
	defer zero(priv)
	publicKeyHex := hex.EncodeToString(pub)

	creation, err := s.ledger.CreateAccount(ctx, publicKeyHex, alias, 0)
	if err != nil {
		return nil, classifyAccountCreation(err)
	}

	s.log.Info().
		Str("account_id", creation.AccountID).
		Str("alias", alias).
		Str("network", string(network)).
		Msg("ledger account created")

	now := time.Now().UTC()
	wallet := &domain.Wallet{
		ID:              uuid.New(),
		UserID:          userID,
		AccountID:       creation.AccountID,
		PublicKey:       publicKeyHex,
		Alias:           alias,
		BalanceTinybars: 0,
		IsActive:        true,
		Network:         network,
		CreatedAt:       now,
		LastSyncedAt:    now,
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, s.orphaned(creation.AccountID, fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Activating the new wallet deactivates any prior active wallet for the
	// user in the same transaction, keeping exactly one active wallet.
	if err := s.walletRepo.CreateActivating(ctx, dbTx, wallet); err != nil {
		return nil, s.orphaned(creation.AccountID, fmt.Errorf("persist wallet: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, s.orphaned(creation.AccountID, fmt.Errorf("commit tx: %w", err))
	}

	// Custody must succeed before the operation can report success. The
	// ledger account cannot be reliably deleted, so a custody failure leaves
	// it orphaned and flagged for manual reconciliation.
	if err := s.custodian.EncryptAndStore(ctx, wallet.ID, priv); err != nil {
		s.log.Error().
			Str("account_id", creation.AccountID).
			Str("wallet_id", wallet.ID.String()).
			Msg("key custody failed after account creation, account orphaned")
		return nil, apperror.ErrOrphanedAccount(creation.AccountID, err)
	}

	audit := &domain.LedgerTransaction{
		ID:            uuid.New(),
		EntityType:    domain.EntityTypeWallet,
		EntityID:      wallet.ID,
		Operation:     domain.OperationCreateAccount,
		TransactionID: creation.TransactionID,
		Status:        domain.TransferStatusConfirmed,
		CostTinybars:  creation.CostTinybars,
		Timestamp:     now,
	}
	if err := s.ledgerTxs.Append(ctx, audit); err != nil {
		// Audit rows never drive control flow; the wallet is already usable.
		s.log.Warn().Err(err).Str("wallet_id", wallet.ID.String()).Msg("failed to append account-creation audit row")
	}

	return &ports.WalletCreation{
		Wallet:        wallet,
		Alias:         alias,
		AccountID:     creation.AccountID,
		TransactionID: creation.TransactionID,
	}, nil
}

// VerifyAccount checks the account exists on the ledger, is not deleted, and
// reports the id it was asked about.
func (s *AccountServiceImpl) VerifyAccount(ctx context.Context, accountID string) (bool, error) {
	info, err := s.ledger.GetAccountInfo(ctx, accountID)
	if err != nil {
		return false, apperror.ErrLedgerUnavailable(err)
	}
	if info == nil {
		return false, nil
	}
	return !info.IsDeleted && info.AccountID == accountID, nil
}

// orphaned logs the unlinked account and wraps the cause. Local persistence
// failed after the ledger account already existed.
func (s *AccountServiceImpl) orphaned(accountID string, err error) error {
	s.log.Error().
		Str("account_id", accountID).
		Err(err).
		Msg("local wallet persistence failed after account creation, account orphaned")
	return apperror.ErrOrphanedAccount(accountID, err)
}

// classifyAccountCreation separates reachability failures (retryable) from a
// ledger rejection (fatal, never retried with the same key).
func classifyAccountCreation(err error) error {
	if appErr, ok := err.(*apperror.AppError); ok {
		if appErr.Code == apperror.CodeAccountCreateFailed || appErr.Code == apperror.CodeLedgerUnavailable {
			return appErr
		}
	}
	return apperror.ErrLedgerUnavailable(err)
}

// zero wipes key material once it has been handed to custody.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
