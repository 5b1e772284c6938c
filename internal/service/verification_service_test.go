package service

import (
	"context"
	"errors"
	"testing"

	"alias-wallet-orchestrator/internal/core/domain"
	"alias-wallet-orchestrator/internal/core/ports"
	"alias-wallet-orchestrator/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type verificationTestDeps struct {
	svc        *VerificationServiceImpl
	ledger     *mocks.MockLedgerClient
	folderRepo *mocks.MockFolderRepository
	fileRepo   *mocks.MockFileRepository
	syncRepo   *mocks.MockSyncStatusRepository
	ctrl       *gomock.Controller
}

func setupVerificationService(t *testing.T) *verificationTestDeps {
	ctrl := gomock.NewController(t)
	d := &verificationTestDeps{
		ledger:     mocks.NewMockLedgerClient(ctrl),
		folderRepo: mocks.NewMockFolderRepository(ctrl),
		fileRepo:   mocks.NewMockFileRepository(ctrl),
		syncRepo:   mocks.NewMockSyncStatusRepository(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewVerificationService(d.ledger, d.folderRepo, d.fileRepo, d.syncRepo, zerolog.Nop())
	return d
}

func syncedFolder(tokenID string) *domain.Folder {
	f := blockchainFolder()
	f.TokenID = &tokenID
	return f
}

// ==================== VerifyFolder Tests ====================

func TestVerificationService_VerifyFolder_Success(t *testing.T) {
	d := setupVerificationService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	folder := syncedFolder("0.0.7001")

	d.folderRepo.EXPECT().GetByID(ctx, folder.ID).Return(folder, nil)
	d.ledger.EXPECT().GetTokenInfo(ctx, "0.0.7001").Return(&ports.TokenInfo{
		TokenID:         "0.0.7001",
		Name:            folder.Name,
		Symbol:          "Ffam",
		TreasuryAccount: "0.0.1001",
	}, nil)
	d.folderRepo.EXPECT().SetLastVerified(ctx, folder.ID, gomock.Any()).Return(nil)

	result, err := d.svc.VerifyFolder(ctx, folder.ID)

	require.NoError(t, err)
	assert.True(t, result.IsVerified)
	assert.Equal(t, "0.0.7001", result.TokenID)
	assert.NotNil(t, result.LastVerified)
	assert.Empty(t, result.Error)
}

func TestVerificationService_VerifyFolder_NeverSynced(t *testing.T) {
	d := setupVerificationService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	folder := blockchainFolder() // no token id

	d.folderRepo.EXPECT().GetByID(ctx, folder.ID).Return(folder, nil)

	result, err := d.svc.VerifyFolder(ctx, folder.ID)

	require.NoError(t, err)
	assert.False(t, result.IsVerified)
	assert.Equal(t, "no ledger token id", result.Error)
}

func TestVerificationService_VerifyFolder_LedgerErrorIsUnverifiedNotFatal(t *testing.T) {
	d := setupVerificationService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	folder := syncedFolder("0.0.7001")

	d.folderRepo.EXPECT().GetByID(ctx, folder.ID).Return(folder, nil)
	d.ledger.EXPECT().GetTokenInfo(ctx, "0.0.7001").
		Return(nil, errors.New("mirror node timeout"))

	result, err := d.svc.VerifyFolder(ctx, folder.ID)

	require.NoError(t, err)
	assert.False(t, result.IsVerified)
	assert.Contains(t, result.Error, "TRN_001")
}

func TestVerificationService_VerifyFolder_TokenAbsentOnLedger(t *testing.T) {
	d := setupVerificationService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	folder := syncedFolder("0.0.7001")

	d.folderRepo.EXPECT().GetByID(ctx, folder.ID).Return(folder, nil)
	d.ledger.EXPECT().GetTokenInfo(ctx, "0.0.7001").Return(nil, nil)

	result, err := d.svc.VerifyFolder(ctx, folder.ID)

	require.NoError(t, err)
	assert.False(t, result.IsVerified)
	assert.Equal(t, "token not found on ledger", result.Error)
}

func TestVerificationService_VerifyFolder_TokenIDMismatch(t *testing.T) {
	d := setupVerificationService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	folder := syncedFolder("0.0.7001")

	d.folderRepo.EXPECT().GetByID(ctx, folder.ID).Return(folder, nil)
	d.ledger.EXPECT().GetTokenInfo(ctx, "0.0.7001").
		Return(&ports.TokenInfo{TokenID: "0.0.9999"}, nil)

	result, err := d.svc.VerifyFolder(ctx, folder.ID)

	require.NoError(t, err)
	assert.False(t, result.IsVerified)
	assert.Equal(t, "token not found on ledger", result.Error)
}

func TestVerificationService_VerifyFolder_TimestampPersistFailureIsWarnOnly(t *testing.T) {
	d := setupVerificationService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	folder := syncedFolder("0.0.7001")

	d.folderRepo.EXPECT().GetByID(ctx, folder.ID).Return(folder, nil)
	d.ledger.EXPECT().GetTokenInfo(ctx, "0.0.7001").
		Return(&ports.TokenInfo{TokenID: "0.0.7001"}, nil)
	d.folderRepo.EXPECT().SetLastVerified(ctx, folder.ID, gomock.Any()).
		Return(errors.New("connection reset"))

	result, err := d.svc.VerifyFolder(ctx, folder.ID)

	require.NoError(t, err)
	assert.True(t, result.IsVerified)
}

// ==================== VerifyAllFolders Tests ====================

func TestVerificationService_VerifyAllFolders_MixedResults(t *testing.T) {
	d := setupVerificationService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	good := syncedFolder("0.0.7001")
	stale := syncedFolder("0.0.7002")
	unsynced := blockchainFolder()

	d.folderRepo.EXPECT().ListBlockchain(ctx).
		Return([]domain.Folder{*good, *stale, *unsynced}, nil)

	d.folderRepo.EXPECT().GetByID(ctx, good.ID).Return(good, nil)
	d.ledger.EXPECT().GetTokenInfo(ctx, "0.0.7001").
		Return(&ports.TokenInfo{TokenID: "0.0.7001"}, nil)
	d.folderRepo.EXPECT().SetLastVerified(ctx, good.ID, gomock.Any()).Return(nil)

	d.folderRepo.EXPECT().GetByID(ctx, stale.ID).Return(stale, nil)
	d.ledger.EXPECT().GetTokenInfo(ctx, "0.0.7002").Return(nil, nil)

	d.folderRepo.EXPECT().GetByID(ctx, unsynced.ID).Return(unsynced, nil)

	results, err := d.svc.VerifyAllFolders(ctx)

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.True(t, results[0].IsVerified)
	assert.False(t, results[1].IsVerified)
	assert.Equal(t, "token not found on ledger", results[1].Error)
	assert.False(t, results[2].IsVerified)
	assert.Equal(t, "no ledger token id", results[2].Error)
}

func TestVerificationService_VerifyAllFolders_PerFolderFailureDoesNotAbort(t *testing.T) {
	d := setupVerificationService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	broken := syncedFolder("0.0.7001")
	good := syncedFolder("0.0.7002")

	d.folderRepo.EXPECT().ListBlockchain(ctx).
		Return([]domain.Folder{*broken, *good}, nil)

	d.folderRepo.EXPECT().GetByID(ctx, broken.ID).
		Return(nil, errors.New("connection refused"))

	d.folderRepo.EXPECT().GetByID(ctx, good.ID).Return(good, nil)
	d.ledger.EXPECT().GetTokenInfo(ctx, "0.0.7002").
		Return(&ports.TokenInfo{TokenID: "0.0.7002"}, nil)
	d.folderRepo.EXPECT().SetLastVerified(ctx, good.ID, gomock.Any()).Return(nil)

	results, err := d.svc.VerifyAllFolders(ctx)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.False(t, results[0].IsVerified)
	assert.NotEmpty(t, results[0].Error)
	assert.True(t, results[1].IsVerified)
}

// ==================== GetBlockchainStatus Tests ====================

func TestVerificationService_GetBlockchainStatus_Aggregation(t *testing.T) {
	d := setupVerificationService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()

	parent := syncedFolder("0.0.7001")
	child := syncedFolder("0.0.7002")
	child.ParentID = &parent.ID
	unverifiable := syncedFolder("0.0.7003")

	d.folderRepo.EXPECT().ListBlockchain(ctx).
		Return([]domain.Folder{*parent, *child, *unverifiable}, nil)

	d.folderRepo.EXPECT().GetByID(ctx, parent.ID).Return(parent, nil)
	d.ledger.EXPECT().GetTokenInfo(ctx, "0.0.7001").
		Return(&ports.TokenInfo{TokenID: "0.0.7001"}, nil)
	d.folderRepo.EXPECT().SetLastVerified(ctx, parent.ID, gomock.Any()).Return(nil)

	d.folderRepo.EXPECT().GetByID(ctx, child.ID).Return(child, nil)
	d.ledger.EXPECT().GetTokenInfo(ctx, "0.0.7002").
		Return(&ports.TokenInfo{TokenID: "0.0.7002"}, nil)
	d.folderRepo.EXPECT().SetLastVerified(ctx, child.ID, gomock.Any()).Return(nil)

	d.folderRepo.EXPECT().GetByID(ctx, unverifiable.ID).Return(unverifiable, nil)
	d.ledger.EXPECT().GetTokenInfo(ctx, "0.0.7003").Return(nil, nil)

	// mintedGood is counted; mintedUnderBadFolder is minted but its folder did
	// not verify this pass; unminted has no serial yet.
	serial := int64(1)
	mintedGood := blockchainFile(parent.ID)
	tok := "0.0.7001"
	mintedGood.TokenID = &tok
	mintedGood.SerialNumber = &serial

	badTok := "0.0.7003"
	mintedUnderBadFolder := blockchainFile(unverifiable.ID)
	mintedUnderBadFolder.TokenID = &badTok
	mintedUnderBadFolder.SerialNumber = &serial

	unminted := blockchainFile(child.ID)

	d.fileRepo.EXPECT().ListBlockchain(ctx).
		Return([]domain.File{*mintedGood, *mintedUnderBadFolder, *unminted}, nil)

	d.syncRepo.EXPECT().ListUnsynced(ctx).Return([]domain.SyncStatus{
		{State: domain.SyncStateFailed},
		{State: domain.SyncStatePending},
		{State: domain.SyncStateSyncing},
	}, nil)

	status, err := d.svc.GetBlockchainStatus(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, status.TotalFolders)
	assert.Equal(t, 1, status.VerifiedParentFolders)
	assert.Equal(t, 1, status.VerifiedSubfolders)
	assert.Equal(t, 1, status.VerifiedFiles)
	assert.Equal(t, 1, status.Failed)
	assert.Equal(t, 2, status.Pending)
	assert.Equal(t, 3, status.TotalVerifiedItems)
}
