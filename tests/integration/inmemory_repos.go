package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"alias-wallet-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]*domain.Wallet
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[uuid.UUID]*domain.Wallet)}
}

func (r *inMemoryWalletRepo) CreateActivating(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.wallets {
		if existing.UserID == w.UserID && existing.IsActive {
			existing.IsActive = false
		}
	}
	cp := *w
	r.wallets[w.ID] = &cp
	return nil
}

func (r *inMemoryWalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWalletRepo) GetActiveByUserID(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wallets {
		if w.UserID == userID && w.IsActive {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryWalletRepo) UpdateBalance(ctx context.Context, id uuid.UUID, balanceTinybars int64, syncedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[id]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.BalanceTinybars = balanceTinybars
	w.LastSyncedAt = syncedAt
	return nil
}

func (r *inMemoryWalletRepo) Deactivate(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[id]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.IsActive = false
	return nil
}

func (r *inMemoryWalletRepo) activeCount(userID uuid.UUID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, w := range r.wallets {
		if w.UserID == userID && w.IsActive {
			n++
		}
	}
	return n
}

// --- In-Memory Folder Repo ---

type inMemoryFolderRepo struct {
	mu      sync.RWMutex
	folders map[uuid.UUID]*domain.Folder
}

func newInMemoryFolderRepo() *inMemoryFolderRepo {
	return &inMemoryFolderRepo{folders: make(map[uuid.UUID]*domain.Folder)}
}

func (r *inMemoryFolderRepo) seed(f *domain.Folder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *f
	r.folders[f.ID] = &cp
}

func (r *inMemoryFolderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.folders[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (r *inMemoryFolderRepo) ListBlockchain(ctx context.Context) ([]domain.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Folder
	for _, f := range r.folders {
		if f.IsBlockchain {
			result = append(result, *f)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *inMemoryFolderRepo) SetTokenID(ctx context.Context, id uuid.UUID, tokenID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[id]
	if !ok {
		return fmt.Errorf("folder not found")
	}
	f.TokenID = &tokenID
	return nil
}

func (r *inMemoryFolderRepo) SetLastVerified(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[id]
	if !ok {
		return fmt.Errorf("folder not found")
	}
	f.LastVerified = &at
	return nil
}

// --- In-Memory File Repo ---

type inMemoryFileRepo struct {
	mu    sync.RWMutex
	files map[uuid.UUID]*domain.File
}

func newInMemoryFileRepo() *inMemoryFileRepo {
	return &inMemoryFileRepo{files: make(map[uuid.UUID]*domain.File)}
}

func (r *inMemoryFileRepo) seed(f *domain.File) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *f
	r.files[f.ID] = &cp
}

func (r *inMemoryFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.files[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (r *inMemoryFileRepo) ListBlockchain(ctx context.Context) ([]domain.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.File
	for _, f := range r.files {
		if f.IsBlockchain {
			result = append(result, *f)
		}
	}
	return result, nil
}

func (r *inMemoryFileRepo) SetLedgerFileID(ctx context.Context, id uuid.UUID, ledgerFileID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if !ok {
		return fmt.Errorf("file not found")
	}
	f.LedgerFileID = &ledgerFileID
	return nil
}

func (r *inMemoryFileRepo) SetMinted(ctx context.Context, id uuid.UUID, tokenID string, serialNumber int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if !ok {
		return fmt.Errorf("file not found")
	}
	f.TokenID = &tokenID
	f.SerialNumber = &serialNumber
	return nil
}

// --- In-Memory Sync Status Repo ---

type inMemorySyncStatusRepo struct {
	mu   sync.RWMutex
	rows map[string]*domain.SyncStatus
}

func newInMemorySyncStatusRepo() *inMemorySyncStatusRepo {
	return &inMemorySyncStatusRepo{rows: make(map[string]*domain.SyncStatus)}
}

func syncKey(entityType domain.EntityType, entityID uuid.UUID) string {
	return string(entityType) + "/" + entityID.String()
}

func (r *inMemorySyncStatusRepo) Get(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) (*domain.SyncStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.rows[syncKey(entityType, entityID)]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (r *inMemorySyncStatusRepo) Upsert(ctx context.Context, status *domain.SyncStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *status
	r.rows[syncKey(status.EntityType, status.EntityID)] = &cp
	return nil
}

func (r *inMemorySyncStatusRepo) ListUnsynced(ctx context.Context) ([]domain.SyncStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.SyncStatus
	for _, st := range r.rows {
		if st.State != domain.SyncStateSynced {
			result = append(result, *st)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].LastAttemptAt.Before(result[j].LastAttemptAt) })
	return result, nil
}

// --- In-Memory Ledger Tx Repo ---

type inMemoryLedgerTxRepo struct {
	mu   sync.RWMutex
	rows []domain.LedgerTransaction
}

func newInMemoryLedgerTxRepo() *inMemoryLedgerTxRepo {
	return &inMemoryLedgerTxRepo{}
}

func (r *inMemoryLedgerTxRepo) Append(ctx context.Context, tx *domain.LedgerTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *tx)
	return nil
}

func (r *inMemoryLedgerTxRepo) ListByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]domain.LedgerTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.LedgerTransaction
	for _, row := range r.rows {
		if row.EntityType == entityType && row.EntityID == entityID {
			result = append(result, row)
		}
	}
	return result, nil
}

// --- In-Memory Funding Repo ---

type inMemoryFundingRepo struct {
	mu       sync.RWMutex
	requests map[uuid.UUID]*domain.FundingRequest
}

func newInMemoryFundingRepo() *inMemoryFundingRepo {
	return &inMemoryFundingRepo{requests: make(map[uuid.UUID]*domain.FundingRequest)}
}

func (r *inMemoryFundingRepo) Create(ctx context.Context, fr *domain.FundingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *fr
	r.requests[fr.ID] = &cp
	return nil
}

func (r *inMemoryFundingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FundingRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fr, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *fr
	return &cp, nil
}

func (r *inMemoryFundingRepo) UpdateState(ctx context.Context, id uuid.UUID, state domain.FundingState, settledTinybars *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	fr, ok := r.requests[id]
	if !ok {
		return fmt.Errorf("funding request not found")
	}
	fr.State = state
	fr.SettledTinybars = settledTinybars
	return nil
}

// --- In-Memory Vault ---

type inMemoryVault struct {
	mu      sync.RWMutex
	secrets map[string][]byte
}

func newInMemoryVault() *inMemoryVault {
	return &inMemoryVault{secrets: make(map[string][]byte)}
}

func (v *inMemoryVault) Put(ctx context.Context, namespacedKey string, secret []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.secrets[namespacedKey] = append([]byte(nil), secret...)
	return nil
}

func (v *inMemoryVault) Get(ctx context.Context, namespacedKey string) ([]byte, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	s, ok := v.secrets[namespacedKey]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), s...), nil
}

func (v *inMemoryVault) Delete(ctx context.Context, namespacedKey string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.secrets, namespacedKey)
	return nil
}

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
