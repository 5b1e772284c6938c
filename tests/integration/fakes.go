package integration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"alias-wallet-orchestrator/internal/core/domain"
	"alias-wallet-orchestrator/internal/core/ports"
)

// fakeLedger is an in-memory ledger network: accounts, tokens and files get
// sequential ids and every well-formed submission succeeds.

type fakeAccount struct {
	alias   string
	balance int64
	deleted bool
}

type fakeLedger struct {
	mu          sync.Mutex
	accounts    map[string]*fakeAccount
	tokens      map[string]*ports.TokenInfo
	serials     map[string]int64
	nextAccount int
	nextToken   int
	nextFile    int
	nextTx      int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		accounts:    make(map[string]*fakeAccount),
		tokens:      make(map[string]*ports.TokenInfo),
		serials:     make(map[string]int64),
		nextAccount: 5000,
		nextToken:   7000,
		nextFile:    8800,
	}
}

func (l *fakeLedger) txID() string {
	l.nextTx++
	return fmt.Sprintf("0.0.2@%d.%09d", time.Now().Unix(), l.nextTx)
}

func (l *fakeLedger) credit(accountID string, tinybars int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if acc, ok := l.accounts[accountID]; ok {
		acc.balance += tinybars
	}
}

func (l *fakeLedger) CreateAccount(ctx context.Context, publicKey, alias string, initialBalance int64) (*ports.AccountCreation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextAccount++
	accountID := fmt.Sprintf("0.0.%d", l.nextAccount)
	l.accounts[accountID] = &fakeAccount{alias: alias, balance: initialBalance}
	return &ports.AccountCreation{AccountID: accountID, TransactionID: l.txID(), CostTinybars: 100000000}, nil
}

func (l *fakeLedger) GetBalance(ctx context.Context, accountID string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[accountID]
	if !ok {
		return 0, fmt.Errorf("account %s not found", accountID)
	}
	return acc.balance, nil
}

func (l *fakeLedger) GetAccountInfo(ctx context.Context, accountID string) (*ports.AccountInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[accountID]
	if !ok {
		return nil, nil
	}
	return &ports.AccountInfo{
		AccountID:       accountID,
		Alias:           acc.alias,
		BalanceTinybars: acc.balance,
		IsDeleted:       acc.deleted,
	}, nil
}

func (l *fakeLedger) Transfer(ctx context.Context, from, to string, amountTinybars int64) (*ports.LedgerResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	src, ok := l.accounts[from]
	if !ok {
		return nil, fmt.Errorf("account %s not found", from)
	}
	dst, ok := l.accounts[to]
	if !ok {
		return nil, fmt.Errorf("account %s not found", to)
	}
	src.balance -= amountTinybars
	dst.balance += amountTinybars
	return &ports.LedgerResult{TransactionID: l.txID()}, nil
}

func (l *fakeLedger) CreateFile(ctx context.Context, contents []byte, memo string) (string, *ports.LedgerResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextFile++
	fileID := fmt.Sprintf("0.0.%d", l.nextFile)
	return fileID, &ports.LedgerResult{TransactionID: l.txID(), CostTinybars: 50000000}, nil
}

func (l *fakeLedger) CreateToken(ctx context.Context, name, symbol, treasuryAccount, memo string) (string, *ports.LedgerResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.accounts[treasuryAccount]; !ok {
		return "", nil, fmt.Errorf("treasury account %s not found", treasuryAccount)
	}
	l.nextToken++
	tokenID := fmt.Sprintf("0.0.%d", l.nextToken)
	l.tokens[tokenID] = &ports.TokenInfo{
		TokenID:         tokenID,
		Name:            name,
		Symbol:          symbol,
		TreasuryAccount: treasuryAccount,
	}
	return tokenID, &ports.LedgerResult{TransactionID: l.txID(), CostTinybars: 100000000}, nil
}

func (l *fakeLedger) MintNFT(ctx context.Context, tokenID string, metadata []byte) (int64, *ports.LedgerResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	info, ok := l.tokens[tokenID]
	if !ok {
		return 0, nil, fmt.Errorf("token %s not found", tokenID)
	}
	l.serials[tokenID]++
	info.TotalSupply++
	return l.serials[tokenID], &ports.LedgerResult{TransactionID: l.txID(), CostTinybars: 20000000}, nil
}

func (l *fakeLedger) GetTokenInfo(ctx context.Context, tokenID string) (*ports.TokenInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	info, ok := l.tokens[tokenID]
	if !ok {
		return nil, nil
	}
	cp := *info
	return &cp, nil
}

func (l *fakeLedger) GetTransactionStatus(ctx context.Context, transactionID string) (domain.TransferStatus, error) {
	return domain.TransferStatusConfirmed, nil
}

// fakeGateway is a scriptable payment provider: checkouts always open, and
// the reported status per provider tx id is whatever the test set.

type fakeGateway struct {
	mu       sync.Mutex
	provider domain.Provider
	name     string
	fees     domain.FeeBreakdown
	minCents int64
	maxCents int64
	statuses map[string]*ports.ProviderStatus
	nextTx   int
	lastTxID string
	lastReq  ports.CheckoutRequest
}

func newFakeGateway(provider domain.Provider, name string, fees domain.FeeBreakdown, minCents, maxCents int64) *fakeGateway {
	return &fakeGateway{
		provider: provider,
		name:     name,
		fees:     fees,
		minCents: minCents,
		maxCents: maxCents,
		statuses: make(map[string]*ports.ProviderStatus),
	}
}

func (g *fakeGateway) Provider() domain.Provider { return g.provider }
func (g *fakeGateway) Name() string              { return g.name }

func (g *fakeGateway) Quote(ctx context.Context, fiatAmountCents int64) (*domain.FeeBreakdown, error) {
	fees := g.fees
	return &fees, nil
}

func (g *fakeGateway) CreateCheckout(ctx context.Context, req ports.CheckoutRequest) (*ports.Checkout, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextTx++
	txID := fmt.Sprintf("%s-tx-%d", g.provider, g.nextTx)
	g.lastTxID = txID
	g.lastReq = req
	return &ports.Checkout{
		CheckoutURL:  fmt.Sprintf("https://%s.example/checkout/%s", g.provider, txID),
		ProviderTxID: txID,
	}, nil
}

func (g *fakeGateway) GetStatus(ctx context.Context, providerTxID string) (*ports.ProviderStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if st, ok := g.statuses[providerTxID]; ok {
		cp := *st
		return &cp, nil
	}
	return &ports.ProviderStatus{State: domain.FundingStateAwaitingPayment}, nil
}

func (g *fakeGateway) Limits() (int64, int64) { return g.minCents, g.maxCents }

func (g *fakeGateway) setStatus(providerTxID string, status ports.ProviderStatus) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.statuses[providerTxID] = &status
}

func (g *fakeGateway) lastCheckoutTxID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastTxID
}

func (g *fakeGateway) lastCheckoutRequest() ports.CheckoutRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastReq
}

// fakePriceSource serves a fixed unit price.

type fakePriceSource struct {
	priceCents float64
}

func (s *fakePriceSource) CurrentPrice(ctx context.Context) (*ports.UnitPrice, error) {
	return &ports.UnitPrice{PriceCents: s.priceCents, FetchedAt: time.Now().UTC()}, nil
}
