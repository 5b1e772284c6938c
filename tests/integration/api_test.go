package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpHandler "alias-wallet-orchestrator/internal/adapter/http/handler"
	redisStorage "alias-wallet-orchestrator/internal/adapter/storage/redis"
	"alias-wallet-orchestrator/internal/core/domain"
	"alias-wallet-orchestrator/internal/core/ports"
	"alias-wallet-orchestrator/internal/service"
	"alias-wallet-orchestrator/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp builds a full application stack: real services, real HTTP layer and
// middleware, Redis via miniredis, and in-memory fakes for postgres repos,
// the ledger network and the payment providers.

const testMasterSecret = "6368616e676520746869732070617373776f726420746f206120736563726574"

type testApp struct {
	server *httptest.Server
	redis  *miniredis.Miniredis

	tokenSvc   *service.JWTTokenService
	ledger     *fakeLedger
	alchemy    *fakeGateway
	banxa      *fakeGateway
	walletRepo *inMemoryWalletRepo
	folderRepo *inMemoryFolderRepo
	fileRepo   *inMemoryFileRepo
	syncRepo   *inMemorySyncStatusRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	log := logger.New("debug", false)

	walletRepo := newInMemoryWalletRepo()
	folderRepo := newInMemoryFolderRepo()
	fileRepo := newInMemoryFileRepo()
	syncRepo := newInMemorySyncStatusRepo()
	ledgerTxRepo := newInMemoryLedgerTxRepo()
	fundingRepo := newInMemoryFundingRepo()
	transactor := newInMemoryTransactor()

	ledger := newFakeLedger()
	alchemy := newFakeGateway(domain.ProviderAlchemy, "Alchemy Pay",
		domain.FeeBreakdown{Percentage: 0.05, FixedCents: 99}, 500, 2000000)
	banxa := newFakeGateway(domain.ProviderBanxa, "Banxa",
		domain.FeeBreakdown{Percentage: 0.0199, FixedCents: 199}, 1000, 1500000)

	custodian, err := service.NewKeyCustodian(testMasterSecret, newInMemoryVault(), log)
	require.NoError(t, err)
	tokenSvc := service.NewJWTTokenService("test-jwt-secret-key-32bytes!!", 24*time.Hour, "test-issuer")

	accountSvc := service.NewAccountService(ledger, walletRepo, ledgerTxRepo, custodian, transactor, log)
	fundingSvc := service.NewFundingService(
		[]ports.PaymentGateway{alchemy, banxa},
		walletRepo, fundingRepo, ledgerTxRepo, ledger,
		&fakePriceSource{priceCents: 5.0},
		redisStorage.NewPriceCache(rdb),
		"https://app.example/funding/return", "https://app.example/funding/cancel",
		log,
	)

	// The treasury wallet must exist before any folder can be tokenized.
	treasuryUser := uuid.New()
	_, err = accountSvc.CreateAliasWallet(context.Background(), treasuryUser, "treasury@example.com", domain.NetworkTestnet)
	require.NoError(t, err)

	syncSvc := service.NewSyncService(ledger, folderRepo, fileRepo, syncRepo, ledgerTxRepo, walletRepo, treasuryUser, log)
	verificationSvc := service.NewVerificationService(ledger, folderRepo, fileRepo, syncRepo, log)
	lifecycleSvc := service.NewLifecycleService(accountSvc, fundingSvc, walletRepo, ledger, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		LifecycleSvc:    lifecycleSvc,
		FundingSvc:      fundingSvc,
		SyncSvc:         syncSvc,
		VerificationSvc: verificationSvc,
		TokenSvc:        tokenSvc,
		RateLimitStore:  redisStorage.NewRateLimitStore(rdb),
		HealthCheckers:  []ports.HealthChecker{redisStorage.NewHealthCheck(rdb)},
		Logger:          log,
	})

	return &testApp{
		server:     httptest.NewServer(router),
		redis:      mr,
		tokenSvc:   tokenSvc,
		ledger:     ledger,
		alchemy:    alchemy,
		banxa:      banxa,
		walletRepo: walletRepo,
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		syncRepo:   syncRepo,
	}
}

func (a *testApp) close() {
	a.server.Close()
	a.redis.Close()
}

func (a *testApp) tokenFor(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, _, err := a.tokenSvc.Generate(userID, "user@example.com")
	require.NoError(t, err)
	return token
}

func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func (a *testApp) seedSyncedFolderAndFile(t *testing.T) (folder *domain.Folder, file *domain.File) {
	t.Helper()
	folder = &domain.Folder{
		ID:           uuid.New(),
		Name:         "Family Documents",
		Type:         domain.FolderTypeFamily,
		FileCount:    1,
		IsBlockchain: true,
		CreatedAt:    time.Now().Add(-time.Hour),
	}
	file = &domain.File{
		ID:           uuid.New(),
		FolderID:     folder.ID,
		Name:         "deed.pdf",
		OriginalName: "property-deed.pdf",
		Size:         84213,
		MimeType:     "application/pdf",
		Checksum:     "9f86d081884c7d659a2feaa0c55ad015",
		IsBlockchain: true,
		UploadedAt:   time.Now().Add(-30 * time.Minute),
	}
	a.folderRepo.seed(folder)
	a.fileRepo.seed(file)
	return folder, file
}

// --- Integration Tests ---

func TestIntegration_HealthCheck(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, err := http.Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestIntegration_Unauthorized(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, err := http.Get(app.server.URL + "/api/v1/funding/quotes?amount_cents=10000")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIntegration_CreateWalletEndToEnd(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	userID := uuid.New()
	token := app.tokenFor(t, userID)

	resp, body := app.do(t, http.MethodPost, "/api/v1/wallets", token, map[string]interface{}{
		"funding_cents": 10000,
		"provider":      "alchemy",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	walletID := data["wallet_id"].(string)
	accountID := data["account_id"].(string)
	assert.NotEmpty(t, data["alias"])
	assert.Equal(t, "testnet", data["network"])
	assert.NotEmpty(t, data["checkout_url"])
	assert.NotEmpty(t, data["funding_request_id"])
	assert.Empty(t, data["funding_error"])

	// The provider checkout carries the caller's email from the JWT.
	assert.Equal(t, "user@example.com", app.alchemy.lastCheckoutRequest().UserEmail)

	// The ledger account exists and the wallet is the user's active one.
	info, err := app.ledger.GetAccountInfo(context.Background(), accountID)
	require.NoError(t, err)
	require.NotNil(t, info)

	active, err := app.walletRepo.GetActiveByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, walletID, active.ID.String())

	// Status read reflects a ledger-side credit.
	app.ledger.credit(accountID, 750000000)
	resp2, body2 := app.do(t, http.MethodGet, "/api/v1/wallets/"+walletID+"/status", token, nil)
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	status := body2["data"].(map[string]interface{})
	assert.Equal(t, float64(750000000), status["balance_tinybars"])
	assert.Equal(t, false, status["is_deleted"])
}

func TestIntegration_FundingSettlement(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	userID := uuid.New()
	token := app.tokenFor(t, userID)

	resp, body := app.do(t, http.MethodPost, "/api/v1/wallets", token, map[string]interface{}{
		"funding_cents": 10000,
		"provider":      "alchemy",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	fundingID := data["funding_request_id"].(string)
	accountID := data["account_id"].(string)
	walletID := data["wallet_id"].(string)

	// First poll: provider still pending, created advances to awaiting_payment.
	resp2, body2 := app.do(t, http.MethodGet, "/api/v1/funding/"+fundingID, token, nil)
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	fr := body2["data"].(map[string]interface{})
	assert.Equal(t, "awaiting_payment", fr["state"])

	// Provider settles: the reported amount lands on the ledger account and
	// the next poll credits exactly that figure.
	providerTx := app.alchemy.lastCheckoutTxID()
	app.alchemy.setStatus(providerTx, ports.ProviderStatus{
		State:           domain.FundingStateSettled,
		SettledTinybars: 1880000000,
	})
	app.ledger.credit(accountID, 1880000000)

	resp3, body3 := app.do(t, http.MethodGet, "/api/v1/funding/"+fundingID, token, nil)
	require.Equal(t, http.StatusOK, resp3.StatusCode)
	settled := body3["data"].(map[string]interface{})
	assert.Equal(t, "settled", settled["state"])
	assert.Equal(t, float64(1880000000), settled["settled_tinybars"])

	// Settlement refreshed the wallet's cached balance.
	resp4, body4 := app.do(t, http.MethodGet, "/api/v1/wallets/"+walletID+"/status", token, nil)
	require.Equal(t, http.StatusOK, resp4.StatusCode)
	status := body4["data"].(map[string]interface{})
	assert.Equal(t, float64(1880000000), status["balance_tinybars"])

	// Terminal state is immutable: another poll returns the same state even
	// though the provider now claims something else.
	app.alchemy.setStatus(providerTx, ports.ProviderStatus{State: domain.FundingStateFailed})
	resp5, body5 := app.do(t, http.MethodGet, "/api/v1/funding/"+fundingID, token, nil)
	require.Equal(t, http.StatusOK, resp5.StatusCode)
	again := body5["data"].(map[string]interface{})
	assert.Equal(t, "settled", again["state"])
}

func TestIntegration_Quotes(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := app.tokenFor(t, uuid.New())

	resp, body := app.do(t, http.MethodGet, "/api/v1/funding/quotes?amount_cents=10000", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(10000), data["amount_cents"])
	quotes := data["quotes"].([]interface{})
	require.Len(t, quotes, 2)

	alchemy := quotes[0].(map[string]interface{})
	assert.Equal(t, "alchemy", alchemy["provider"])
	assert.Equal(t, float64(599), alchemy["total_fees_cents"])
	assert.Equal(t, float64(9401), alchemy["net_amount_cents"])
	assert.Equal(t, float64(188020000000), alchemy["estimated_tinybars"])

	banxa := quotes[1].(map[string]interface{})
	assert.Equal(t, "banxa", banxa["provider"])
	assert.Equal(t, float64(398), banxa["total_fees_cents"])
	assert.Equal(t, float64(9602), banxa["net_amount_cents"])
	assert.Equal(t, float64(192040000000), banxa["estimated_tinybars"])
}

func TestIntegration_FundWallet_AmountOutOfBounds(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	userID := uuid.New()
	token := app.tokenFor(t, userID)

	resp, body := app.do(t, http.MethodPost, "/api/v1/wallets", token, map[string]interface{}{
		"funding_cents": 10000,
		"provider":      "alchemy",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	walletID := body["data"].(map[string]interface{})["wallet_id"].(string)

	resp2, body2 := app.do(t, http.MethodPost, "/api/v1/wallets/"+walletID+"/funding", token, map[string]interface{}{
		"amount_cents": 3000000,
		"provider":     "alchemy",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp2.StatusCode)
	assert.Equal(t, "VAL_002", body2["error_code"])
}

func TestIntegration_SyncFolderAndFile(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := app.tokenFor(t, uuid.New())
	folder, file := app.seedSyncedFolderAndFile(t)

	resp, body := app.do(t, http.MethodPost, fmt.Sprintf("/api/v1/folders/%s/sync", folder.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	folderData := body["data"].(map[string]interface{})
	tokenID := folderData["token_id"].(string)
	assert.NotEmpty(t, tokenID)
	assert.NotEmpty(t, folderData["transaction_id"])

	resp2, body2 := app.do(t, http.MethodPost, fmt.Sprintf("/api/v1/files/%s/sync", file.ID), token, nil)
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	fileData := body2["data"].(map[string]interface{})
	assert.Equal(t, tokenID, fileData["token_id"])
	assert.NotEmpty(t, fileData["ledger_file_id"])

	// The file is minted under the folder's token on the fake ledger.
	info, err := app.ledger.GetTokenInfo(context.Background(), tokenID)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, int64(1), info.TotalSupply)

	// The aggregate report counts both as verified.
	resp3, body3 := app.do(t, http.MethodGet, "/api/v1/sync/status", token, nil)
	require.Equal(t, http.StatusOK, resp3.StatusCode)
	status := body3["data"].(map[string]interface{})
	assert.Equal(t, float64(1), status["total_folders"])
	assert.Equal(t, float64(1), status["verified_parent_folders"])
	assert.Equal(t, float64(1), status["verified_files"])
	assert.Equal(t, float64(2), status["total_verified_items"])
}

func TestIntegration_FileSyncBeforeFolderConflict(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := app.tokenFor(t, uuid.New())
	_, file := app.seedSyncedFolderAndFile(t)

	resp, body := app.do(t, http.MethodPost, fmt.Sprintf("/api/v1/files/%s/sync", file.ID), token, nil)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "STC_002", body["error_code"])
}

func TestIntegration_SyncRun(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := app.tokenFor(t, uuid.New())
	folder, file := app.seedSyncedFolderAndFile(t)

	// The file row is older than the folder row; folder-first ordering must
	// still anchor both in one pass.
	require.NoError(t, app.syncRepo.Upsert(context.Background(), &domain.SyncStatus{
		ID: uuid.New(), EntityType: domain.EntityTypeFile, EntityID: file.ID,
		State: domain.SyncStatePending, LastAttemptAt: time.Now().Add(-2 * time.Hour),
	}))
	require.NoError(t, app.syncRepo.Upsert(context.Background(), &domain.SyncStatus{
		ID: uuid.New(), EntityType: domain.EntityTypeFolder, EntityID: folder.ID,
		State: domain.SyncStatePending, LastAttemptAt: time.Now().Add(-time.Hour),
	}))

	resp, body := app.do(t, http.MethodPost, "/api/v1/sync/run", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["synced"])
	assert.Equal(t, float64(0), data["failed"])
}

func TestIntegration_Verification(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := app.tokenFor(t, uuid.New())
	folder, _ := app.seedSyncedFolderAndFile(t)

	// One genuinely anchored folder, one that only claims to be.
	resp, _ := app.do(t, http.MethodPost, fmt.Sprintf("/api/v1/folders/%s/sync", folder.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	phantom := &domain.Folder{
		ID:           uuid.New(),
		Name:         "Phantom",
		Type:         domain.FolderTypePersonal,
		IsBlockchain: true,
		CreatedAt:    time.Now(),
	}
	phantomToken := "0.0.99999"
	phantom.TokenID = &phantomToken
	app.folderRepo.seed(phantom)

	resp2, body := app.do(t, http.MethodGet, "/api/v1/sync/verification", token, nil)
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	results := body["data"].(map[string]interface{})["results"].([]interface{})
	require.Len(t, results, 2)

	byID := make(map[string]map[string]interface{}, 2)
	for _, raw := range results {
		item := raw.(map[string]interface{})
		byID[item["folder_id"].(string)] = item
	}
	assert.Equal(t, true, byID[folder.ID.String()]["is_verified"])
	assert.Equal(t, false, byID[phantom.ID.String()]["is_verified"])
	assert.Equal(t, "token not found on ledger", byID[phantom.ID.String()]["error"])
}
