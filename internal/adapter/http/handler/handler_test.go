package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"alias-wallet-orchestrator/internal/adapter/http/dto"
	"alias-wallet-orchestrator/internal/adapter/http/middleware"
	"alias-wallet-orchestrator/internal/core/domain"
	"alias-wallet-orchestrator/internal/core/ports"
	"alias-wallet-orchestrator/internal/core/ports/mocks"
	"alias-wallet-orchestrator/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestWallet(userID uuid.UUID) *domain.Wallet {
	return &domain.Wallet{
		ID:              uuid.New(),
		UserID:          userID,
		AccountID:       "0.0.4521",
		PublicKey:       "302a300506032b6570032100aa",
		Alias:           "wallet_1a2b3c4d_5e6f7a8b_1724916000000",
		BalanceTinybars: 0,
		IsActive:        true,
		Network:         domain.NetworkTestnet,
		CreatedAt:       time.Now(),
	}
}

// --- Wallet Handler Tests ---

func TestCreateWallet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLifecycle := mocks.NewMockLifecycleService(ctrl)
	h := NewWalletHandler(mockLifecycle)

	userID := uuid.New()
	wallet := newTestWallet(userID)
	fundingID := uuid.New()

	mockLifecycle.EXPECT().CreateCompleteWallet(gomock.Any(), ports.CompleteWalletRequest{
		UserID:       userID,
		UserEmail:    "alice@example.com",
		Plan:         "premium",
		FundingCents: 10000,
		Provider:     domain.ProviderAlchemy,
		Network:      domain.NetworkTestnet,
	}).Return(&ports.CompleteWalletResult{
		Wallet:            wallet,
		Alias:             wallet.Alias,
		AccountID:         wallet.AccountID,
		CheckoutURL:       "https://pay.example.com/order/abc",
		FundingRequestID:  &fundingID,
		EstimatedTinybars: 1880000000,
	}, nil)

	body, _ := json.Marshal(dto.CreateWalletRequest{
		Plan:         "premium",
		FundingCents: 10000,
		Provider:     "alchemy",
		Network:      "testnet",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.CtxUserID, userID)
	c.Set(middleware.CtxUserEmail, "alice@example.com")
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/wallets", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CreateWallet(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, wallet.ID.String(), data["wallet_id"])
	assert.Equal(t, "0.0.4521", data["account_id"])
	assert.Equal(t, "https://pay.example.com/order/abc", data["checkout_url"])
	assert.Equal(t, fundingID.String(), data["funding_request_id"])
}

func TestCreateWallet_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLifecycle := mocks.NewMockLifecycleService(ctrl)
	h := NewWalletHandler(mockLifecycle)

	// Empty body => binding error
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.CtxUserID, uuid.New())
	c.Set(middleware.CtxUserEmail, "alice@example.com")
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/wallets", bytes.NewReader([]byte("{}")))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CreateWallet(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateWallet_FundingFailureStillReturnsWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLifecycle := mocks.NewMockLifecycleService(ctrl)
	h := NewWalletHandler(mockLifecycle)

	userID := uuid.New()
	wallet := newTestWallet(userID)

	mockLifecycle.EXPECT().CreateCompleteWallet(gomock.Any(), gomock.Any()).Return(&ports.CompleteWalletResult{
		Wallet:       wallet,
		Alias:        wallet.Alias,
		AccountID:    wallet.AccountID,
		FundingError: "provider Alchemy Pay unreachable",
	}, nil)

	body, _ := json.Marshal(dto.CreateWalletRequest{
		FundingCents: 10000,
		Provider:     "alchemy",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.CtxUserID, userID)
	c.Set(middleware.CtxUserEmail, "alice@example.com")
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/wallets", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CreateWallet(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, wallet.ID.String(), data["wallet_id"])
	assert.Equal(t, "provider Alchemy Pay unreachable", data["funding_error"])
	_, hasCheckout := data["checkout_url"]
	assert.False(t, hasCheckout)
}

func TestGetStatus_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLifecycle := mocks.NewMockLifecycleService(ctrl)
	h := NewWalletHandler(mockLifecycle)

	wallet := newTestWallet(uuid.New())
	synced := time.Now()

	mockLifecycle.EXPECT().GetWalletStatus(gomock.Any(), wallet.ID).Return(&ports.WalletStatus{
		Wallet:          wallet,
		AccountID:       wallet.AccountID,
		Alias:           wallet.Alias,
		BalanceTinybars: 1880000000,
		IsDeleted:       false,
		Network:         domain.NetworkTestnet,
		LastSyncedAt:    synced,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: wallet.ID.String()}}
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.GetStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "0.0.4521", data["account_id"])
	assert.Equal(t, float64(1880000000), data["balance_tinybars"])
	assert.Equal(t, false, data["is_deleted"])
}

func TestGetStatus_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLifecycle := mocks.NewMockLifecycleService(ctrl)
	h := NewWalletHandler(mockLifecycle)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.GetStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStatus_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLifecycle := mocks.NewMockLifecycleService(ctrl)
	h := NewWalletHandler(mockLifecycle)

	walletID := uuid.New()
	mockLifecycle.EXPECT().GetWalletStatus(gomock.Any(), walletID).Return(nil, apperror.ErrNotFound("wallet"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: walletID.String()}}
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.GetStatus(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFundWallet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLifecycle := mocks.NewMockLifecycleService(ctrl)
	h := NewWalletHandler(mockLifecycle)

	walletID := uuid.New()
	fr := &domain.FundingRequest{
		ID:                uuid.New(),
		WalletID:          walletID,
		Provider:          domain.ProviderBanxa,
		FiatAmountCents:   5000,
		Fees:              domain.FeeBreakdown{Percentage: 0.0199, FixedCents: 199},
		EstimatedTinybars: 900000000,
		CheckoutURL:       "https://banxa.example.com/checkout/xyz",
		State:             domain.FundingStateAwaitingPayment,
		CreatedAt:         time.Now(),
	}

	mockLifecycle.EXPECT().FundExistingWallet(gomock.Any(), walletID, domain.ProviderBanxa, int64(5000), "alice@example.com").Return(fr, nil)

	body, _ := json.Marshal(dto.FundWalletRequest{
		AmountCents: 5000,
		Provider:    "banxa",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.CtxUserID, uuid.New())
	c.Set(middleware.CtxUserEmail, "alice@example.com")
	c.Params = gin.Params{{Key: "id", Value: walletID.String()}}
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.FundWallet(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, fr.ID.String(), data["id"])
	assert.Equal(t, "awaiting_payment", data["state"])
	assert.Equal(t, "https://banxa.example.com/checkout/xyz", data["checkout_url"])
}

func TestFundWallet_WalletInactive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLifecycle := mocks.NewMockLifecycleService(ctrl)
	h := NewWalletHandler(mockLifecycle)

	walletID := uuid.New()
	mockLifecycle.EXPECT().FundExistingWallet(gomock.Any(), walletID, domain.ProviderAlchemy, int64(5000), gomock.Any()).
		Return(nil, apperror.ErrWalletInactive())

	body, _ := json.Marshal(dto.FundWalletRequest{
		AmountCents: 5000,
		Provider:    "alchemy",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.CtxUserID, uuid.New())
	c.Set(middleware.CtxUserEmail, "alice@example.com")
	c.Params = gin.Params{{Key: "id", Value: walletID.String()}}
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.FundWallet(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

// --- Funding Handler Tests ---

func TestQuoteAll_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFunding := mocks.NewMockFundingService(ctrl)
	h := NewFundingHandler(mockFunding)

	mockFunding.EXPECT().QuoteAll(gomock.Any(), int64(10000)).Return([]domain.ProviderQuote{
		{
			Provider:          domain.ProviderAlchemy,
			Name:              "Alchemy Pay",
			FiatAmountCents:   10000,
			Fees:              domain.FeeBreakdown{Percentage: 0.03, FixedCents: 299},
			TotalFeesCents:    599,
			NetAmountCents:    9401,
			EstimatedTinybars: 1880200000,
			MinAmountCents:    500,
			MaxAmountCents:    5000000,
		},
		{
			Provider:          domain.ProviderBanxa,
			Name:              "Banxa",
			FiatAmountCents:   10000,
			Fees:              domain.FeeBreakdown{Percentage: 0.0199, FixedCents: 199},
			TotalFeesCents:    398,
			NetAmountCents:    9602,
			EstimatedTinybars: 1920400000,
			MinAmountCents:    2000,
			MaxAmountCents:    1500000,
		},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/funding/quotes?amount_cents=10000", nil)

	h.QuoteAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	quotes := data["quotes"].([]interface{})
	require.Len(t, quotes, 2)
	first := quotes[0].(map[string]interface{})
	assert.Equal(t, "alchemy", first["provider"])
	assert.Equal(t, float64(9401), first["net_amount_cents"])
}

func TestQuoteAll_MissingAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFunding := mocks.NewMockFundingService(ctrl)
	h := NewFundingHandler(mockFunding)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/funding/quotes", nil)

	h.QuoteAll(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFundingStatus_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFunding := mocks.NewMockFundingService(ctrl)
	h := NewFundingHandler(mockFunding)

	settled := int64(1880000000)
	fr := &domain.FundingRequest{
		ID:              uuid.New(),
		WalletID:        uuid.New(),
		Provider:        domain.ProviderAlchemy,
		FiatAmountCents: 10000,
		State:           domain.FundingStateSettled,
		SettledTinybars: &settled,
		CreatedAt:       time.Now(),
	}

	mockFunding.EXPECT().PollStatus(gomock.Any(), fr.ID).Return(fr, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: fr.ID.String()}}
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.GetStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "settled", data["state"])
	assert.Equal(t, float64(1880000000), data["settled_tinybars"])
}

// --- Sync Handler Tests ---

func TestSyncFolder_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSync := mocks.NewMockSyncService(ctrl)
	mockVerification := mocks.NewMockVerificationService(ctrl)
	h := NewSyncHandler(mockSync, mockVerification)

	folderID := uuid.New()
	mockSync.EXPECT().SyncFolder(gomock.Any(), folderID).Return(&ports.SyncResult{
		TokenID:       "0.0.7001",
		TransactionID: "0.0.2@1724916000.000000001",
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: folderID.String()}}
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	h.SyncFolder(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "0.0.7001", data["token_id"])
}

func TestSyncFile_ParentNotSynced(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSync := mocks.NewMockSyncService(ctrl)
	mockVerification := mocks.NewMockVerificationService(ctrl)
	h := NewSyncHandler(mockSync, mockVerification)

	fileID := uuid.New()
	folderID := uuid.New()
	mockSync.EXPECT().SyncFile(gomock.Any(), fileID).
		Return(nil, apperror.ErrParentNotSynced(folderID.String()))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: fileID.String()}}
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	h.SyncFile(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "STC_002")
}

func TestSyncAllPending_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSync := mocks.NewMockSyncService(ctrl)
	mockVerification := mocks.NewMockVerificationService(ctrl)
	h := NewSyncHandler(mockSync, mockVerification)

	mockSync.EXPECT().SyncAllPending(gomock.Any()).Return(&ports.SyncSummary{
		Synced: 4,
		Failed: 1,
		Errors: []string{"file 7c9e: parent folder not synced"},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	h.SyncAllPending(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(4), data["synced"])
	assert.Equal(t, float64(1), data["failed"])
}

func TestVerifyAll_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSync := mocks.NewMockSyncService(ctrl)
	mockVerification := mocks.NewMockVerificationService(ctrl)
	h := NewSyncHandler(mockSync, mockVerification)

	folderID := uuid.New()
	verified := time.Now()
	mockVerification.EXPECT().VerifyAllFolders(gomock.Any()).Return([]ports.VerificationResult{
		{FolderID: folderID, IsVerified: true, TokenID: "0.0.7001", LastVerified: &verified},
		{FolderID: uuid.New(), IsVerified: false, Error: "token not found on ledger"},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.VerifyAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	results := data["results"].([]interface{})
	require.Len(t, results, 2)
	first := results[0].(map[string]interface{})
	assert.Equal(t, folderID.String(), first["folder_id"])
	assert.Equal(t, true, first["is_verified"])
}

func TestGetBlockchainStatus_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSync := mocks.NewMockSyncService(ctrl)
	mockVerification := mocks.NewMockVerificationService(ctrl)
	h := NewSyncHandler(mockSync, mockVerification)

	mockVerification.EXPECT().GetBlockchainStatus(gomock.Any()).Return(&ports.BlockchainStatus{
		TotalFolders:          10,
		VerifiedParentFolders: 3,
		VerifiedSubfolders:    4,
		VerifiedFiles:         20,
		Pending:               2,
		Failed:                1,
		TotalVerifiedItems:    27,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.GetBlockchainStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(10), data["total_folders"])
	assert.Equal(t, float64(27), data["total_verified_items"])
}

// --- Router smoke test ---

func TestSetupRouter_RequiresAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := RouterDeps{
		LifecycleSvc:    mocks.NewMockLifecycleService(ctrl),
		FundingSvc:      mocks.NewMockFundingService(ctrl),
		SyncSvc:         mocks.NewMockSyncService(ctrl),
		VerificationSvc: mocks.NewMockVerificationService(ctrl),
		TokenSvc:        mocks.NewMockTokenService(ctrl),
	}
	router := SetupRouter(deps)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/status", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSetupRouter_HealthEndpointIsPublic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := RouterDeps{
		LifecycleSvc:    mocks.NewMockLifecycleService(ctrl),
		FundingSvc:      mocks.NewMockFundingService(ctrl),
		SyncSvc:         mocks.NewMockSyncService(ctrl),
		VerificationSvc: mocks.NewMockVerificationService(ctrl),
		TokenSvc:        mocks.NewMockTokenService(ctrl),
	}
	router := SetupRouter(deps)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
