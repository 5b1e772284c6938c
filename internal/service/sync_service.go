package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"alias-wallet-orchestrator/internal/core/domain"
	"alias-wallet-orchestrator/internal/core/ports"
	"alias-wallet-orchestrator/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SyncServiceImpl implements ports.SyncService: the state machine anchoring
// folders and files to the ledger. All failures are classified and returned
// as structured errors; nothing panics past this boundary.
type SyncServiceImpl struct {
	ledger       ports.LedgerClient
	folderRepo   ports.FolderRepository
	fileRepo     ports.FileRepository
	syncRepo     ports.SyncStatusRepository
	ledgerTxs    ports.LedgerTxRepository
	walletRepo   ports.WalletRepository
	treasuryUser uuid.UUID
	log          zerolog.Logger
}

// NewSyncService creates a new SyncServiceImpl. treasuryUser identifies the
// user whose active wallet acts as token treasury.
func NewSyncService(
	ledger ports.LedgerClient,
	folderRepo ports.FolderRepository,
	fileRepo ports.FileRepository,
	syncRepo ports.SyncStatusRepository,
	ledgerTxs ports.LedgerTxRepository,
	walletRepo ports.WalletRepository,
	treasuryUser uuid.UUID,
	log zerolog.Logger,
) *SyncServiceImpl {
	return &SyncServiceImpl{
		ledger:       ledger,
		folderRepo:   folderRepo,
		fileRepo:     fileRepo,
		syncRepo:     syncRepo,
		ledgerTxs:    ledgerTxs,
		walletRepo:   walletRepo,
		treasuryUser: treasuryUser,
		log:          log,
	}
}

// folderTokenMetadata is the canonical-JSON payload attached to a folder
// token. Keys are serialized in a fixed order so ledger-stored metadata is
// reproducible.
type folderTokenMetadata struct {
	Type        domain.FolderType `json:"type"`
	Description string            `json:"description"`
	FileCount   int               `json:"file_count"`
	CreatedAt   string            `json:"created_at"`
	ParentID    string            `json:"parent_id,omitempty"`
}

// fileNFTMetadata is the canonical-JSON payload minted for a file.
type fileNFTMetadata struct {
	LedgerFileID string `json:"ledger_file_id"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mime_type"`
	Checksum     string `json:"checksum"`
}

// SyncFolder anchors one folder as a ledger token. Already-synced folders
// short-circuit without a second ledger call.
func (s *SyncServiceImpl) SyncFolder(ctx context.Context, folderID uuid.UUID) (*ports.SyncResult, error) {
	folder, err := s.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if folder == nil {
		return nil, apperror.ErrNotFound("folder")
	}
	if !folder.IsBlockchain {
		return nil, apperror.ErrNotBlockchainEntity("folder")
	}
	if folder.IsSyncedToLedger() {
		return &ports.SyncResult{TokenID: *folder.TokenID}, nil
	}

	if err := s.markState(ctx, domain.EntityTypeFolder, folderID, domain.SyncStateSyncing, nil, nil); err != nil {
		return nil, err
	}

	treasury, err := s.treasuryAccount(ctx)
	if err != nil {
		return nil, s.failSync(ctx, domain.EntityTypeFolder, folderID, err)
	}

	meta := folderTokenMetadata{
		Type:        folder.Type,
		Description: folder.Description,
		FileCount:   folder.FileCount,
		CreatedAt:   folder.CreatedAt.UTC().Format(time.RFC3339),
	}
	if folder.ParentID != nil {
		meta.ParentID = folder.ParentID.String()
	}
	memo, err := json.Marshal(meta)
	if err != nil {
		return nil, s.failSync(ctx, domain.EntityTypeFolder, folderID, apperror.InternalError(err))
	}

	tokenID, res, err := s.ledger.CreateToken(ctx, folder.Name, folderSymbol(folder), treasury, string(memo))
	if err != nil {
		return nil, s.failSync(ctx, domain.EntityTypeFolder, folderID, classifyLedger(err))
	}

	if err := s.folderRepo.SetTokenID(ctx, folderID, tokenID); err != nil {
		return nil, s.failSync(ctx, domain.EntityTypeFolder, folderID, apperror.ErrDatabaseError(err))
	}

	s.appendAudit(ctx, domain.EntityTypeFolder, folderID, domain.OperationCreateToken, res)

	if err := s.markState(ctx, domain.EntityTypeFolder, folderID, domain.SyncStateSynced, &tokenID, nil); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("folder_id", folderID.String()).
		Str("token_id", tokenID).
		Msg("folder anchored to ledger")

	return &ports.SyncResult{TokenID: tokenID, TransactionID: res.TransactionID}, nil
}

// SyncFile uploads a file's content to the ledger file store and mints an NFT
// under the owning folder's token. Upload and mint are separate billable
// operations recorded as two audit rows; a mint failure after a successful
// upload keeps the ledger file id so a retry resumes without re-uploading.
func (s *SyncServiceImpl) SyncFile(ctx context.Context, fileID uuid.UUID) (*ports.SyncResult, error) {
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if file == nil {
		return nil, apperror.ErrNotFound("file")
	}
	if !file.IsBlockchain {
		return nil, apperror.ErrNotBlockchainEntity("file")
	}
	if file.TokenID != nil && file.SerialNumber != nil {
		return &ports.SyncResult{TokenID: *file.TokenID, LedgerFileID: stringOrEmpty(file.LedgerFileID)}, nil
	}

	folder, err := s.folderRepo.GetByID(ctx, file.FolderID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if folder == nil || !folder.IsSyncedToLedger() {
		// Fail fast: no partial sync is attempted under an unanchored folder.
		return nil, apperror.ErrParentNotSynced(file.FolderID.String())
	}

	if err := s.markState(ctx, domain.EntityTypeFile, fileID, domain.SyncStateSyncing, nil, nil); err != nil {
		return nil, err
	}

	ledgerFileID := stringOrEmpty(file.LedgerFileID)
	if ledgerFileID == "" {
		contents := fileAnchorPayload(file)
		var res *ports.LedgerResult
		ledgerFileID, res, err = s.ledger.CreateFile(ctx, contents, file.Checksum)
		if err != nil {
			return nil, s.failSync(ctx, domain.EntityTypeFile, fileID, classifyLedger(err))
		}
		if err := s.fileRepo.SetLedgerFileID(ctx, fileID, ledgerFileID); err != nil {
			return nil, s.failSync(ctx, domain.EntityTypeFile, fileID, apperror.ErrDatabaseError(err))
		}
		s.appendAudit(ctx, domain.EntityTypeFile, fileID, domain.OperationUploadFile, res)
	}

	meta := fileNFTMetadata{
		LedgerFileID: ledgerFileID,
		Name:         file.Name,
		Size:         file.Size,
		MimeType:     file.MimeType,
		Checksum:     file.Checksum,
	}
	metadata, err := json.Marshal(meta)
	if err != nil {
		return nil, s.failSync(ctx, domain.EntityTypeFile, fileID, apperror.InternalError(err))
	}

	serial, mintRes, err := s.ledger.MintNFT(ctx, *folder.TokenID, metadata)
	if err != nil {
		// Content is uploaded but the mint failed: the file stays failed so a
		// later verification pass re-checks it, and the saved file id makes
		// the retry skip the upload.
		return nil, s.failSync(ctx, domain.EntityTypeFile, fileID, classifyLedger(err))
	}
	s.appendAudit(ctx, domain.EntityTypeFile, fileID, domain.OperationMintNFT, mintRes)

	if err := s.fileRepo.SetMinted(ctx, fileID, *folder.TokenID, serial); err != nil {
		return nil, s.failSync(ctx, domain.EntityTypeFile, fileID, apperror.ErrDatabaseError(err))
	}

	if err := s.markState(ctx, domain.EntityTypeFile, fileID, domain.SyncStateSynced, folder.TokenID, nil); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("file_id", fileID.String()).
		Str("ledger_file_id", ledgerFileID).
		Str("token_id", *folder.TokenID).
		Int64("serial", serial).
		Msg("file anchored to ledger")

	return &ports.SyncResult{
		TokenID:       *folder.TokenID,
		LedgerFileID:  ledgerFileID,
		TransactionID: mintRes.TransactionID,
	}, nil
}

// SyncAllPending walks every pending/failed row sequentially. Sequential
// processing bounds the ledger request rate and keeps audit ordering
// deterministic; one item's failure never aborts the rest of the queue.
func (s *SyncServiceImpl) SyncAllPending(ctx context.Context) (*ports.SyncSummary, error) {
	rows, err := s.syncRepo.ListUnsynced(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	// Folders before files so a file's parent has its token by the time the
	// file is attempted within the same pass.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].EntityType == domain.EntityTypeFolder && rows[j].EntityType != domain.EntityTypeFolder
	})

	summary := &ports.SyncSummary{Errors: []string{}}
	for _, row := range rows {
		var err error
		switch row.EntityType {
		case domain.EntityTypeFolder:
			_, err = s.SyncFolder(ctx, row.EntityID)
		case domain.EntityTypeFile:
			_, err = s.SyncFile(ctx, row.EntityID)
		default:
			err = apperror.Validation(fmt.Sprintf("unknown entity type %q", row.EntityType))
		}
		if err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, err.Error())
			continue
		}
		summary.Synced++
	}

	s.log.Info().
		Int("synced", summary.Synced).
		Int("failed", summary.Failed).
		Msg("sync pass completed")

	return summary, nil
}

// markState applies a sync state transition, preserving retry counts.
func (s *SyncServiceImpl) markState(
	ctx context.Context,
	entityType domain.EntityType,
	entityID uuid.UUID,
	state domain.SyncState,
	tokenID *string,
	errMsg *string,
) error {
	current, err := s.syncRepo.Get(ctx, entityType, entityID)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}

	status := &domain.SyncStatus{
		ID:            uuid.New(),
		EntityType:    entityType,
		EntityID:      entityID,
		State:         state,
		TokenID:       tokenID,
		LastAttemptAt: time.Now().UTC(),
		ErrorMessage:  errMsg,
	}
	if current != nil {
		status.ID = current.ID
		status.RetryCount = current.RetryCount
		if current.State == domain.SyncStateFailed && state == domain.SyncStateSyncing {
			status.RetryCount++
		}
		if tokenID == nil {
			status.TokenID = current.TokenID
		}
	}

	if err := s.syncRepo.Upsert(ctx, status); err != nil {
		return apperror.ErrDatabaseError(err)
	}
	return nil
}

// failSync records the failure on the status row and returns the cause.
func (s *SyncServiceImpl) failSync(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, cause error) error {
	msg := cause.Error()
	if err := s.markState(ctx, entityType, entityID, domain.SyncStateFailed, nil, &msg); err != nil {
		s.log.Warn().Err(err).
			Str("entity_type", string(entityType)).
			Str("entity_id", entityID.String()).
			Msg("failed to record sync failure")
	}
	return cause
}

func (s *SyncServiceImpl) appendAudit(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, op domain.LedgerOperation, res *ports.LedgerResult) {
	audit := &domain.LedgerTransaction{
		ID:            uuid.New(),
		EntityType:    entityType,
		EntityID:      entityID,
		Operation:     op,
		TransactionID: res.TransactionID,
		Status:        domain.TransferStatusConfirmed,
		CostTinybars:  res.CostTinybars,
		Timestamp:     time.Now().UTC(),
	}
	if err := s.ledgerTxs.Append(ctx, audit); err != nil {
		s.log.Warn().Err(err).
			Str("entity_id", entityID.String()).
			Str("operation", string(op)).
			Msg("failed to append audit row")
	}
}

// treasuryAccount resolves the token treasury from the configured user's
// active wallet.
func (s *SyncServiceImpl) treasuryAccount(ctx context.Context) (string, error) {
	wallet, err := s.walletRepo.GetActiveByUserID(ctx, s.treasuryUser)
	if err != nil {
		return "", apperror.ErrDatabaseError(err)
	}
	if wallet == nil {
		return "", apperror.ErrNotFound("treasury wallet")
	}
	return wallet.AccountID, nil
}

// fileAnchorPayload is the content written to the ledger file store: the
// file's integrity descriptor, not the raw document bytes.
func fileAnchorPayload(f *domain.File) []byte {
	payload, _ := json.Marshal(map[string]interface{}{
		"original_name": f.OriginalName,
		"size":          f.Size,
		"mime_type":     f.MimeType,
		"checksum":      f.Checksum,
		"uploaded_at":   f.UploadedAt.UTC().Format(time.RFC3339),
	})
	return payload
}

// folderSymbol derives a short token symbol from the folder type.
func folderSymbol(f *domain.Folder) string {
	if len(f.Type) >= 3 {
		return "F" + string([]byte(f.Type)[:3])
	}
	return "FLD"
}

// classifyLedger maps raw ledger adapter errors into the taxonomy. Adapter
// errors already classified pass through unchanged.
func classifyLedger(err error) error {
	if _, ok := err.(*apperror.AppError); ok {
		return err
	}
	return apperror.ErrLedgerUnavailable(err)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
