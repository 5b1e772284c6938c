package handler

import (
	"alias-wallet-orchestrator/internal/adapter/http/dto"
	"alias-wallet-orchestrator/internal/core/ports"
	"alias-wallet-orchestrator/pkg/apperror"
	"alias-wallet-orchestrator/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SyncHandler handles ledger anchoring and verification endpoints.
type SyncHandler struct {
	syncSvc         ports.SyncService
	verificationSvc ports.VerificationService
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(syncSvc ports.SyncService, verificationSvc ports.VerificationService) *SyncHandler {
	return &SyncHandler{syncSvc: syncSvc, verificationSvc: verificationSvc}
}

// SyncFolder handles POST /api/v1/folders/:id/sync.
func (h *SyncHandler) SyncFolder(c *gin.Context) {
	folderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid folder id"))
		return
	}

	result, err := h.syncSvc.SyncFolder(c.Request.Context(), folderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.SyncResultResponse{
		TokenID:       result.TokenID,
		LedgerFileID:  result.LedgerFileID,
		TransactionID: result.TransactionID,
	})
}

// SyncFile handles POST /api/v1/files/:id/sync.
func (h *SyncHandler) SyncFile(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid file id"))
		return
	}

	result, err := h.syncSvc.SyncFile(c.Request.Context(), fileID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.SyncResultResponse{
		TokenID:       result.TokenID,
		LedgerFileID:  result.LedgerFileID,
		TransactionID: result.TransactionID,
	})
}

// SyncAllPending handles POST /api/v1/sync/run.
func (h *SyncHandler) SyncAllPending(c *gin.Context) {
	summary, err := h.syncSvc.SyncAllPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.SyncRunResponse{
		Synced: summary.Synced,
		Failed: summary.Failed,
		Errors: summary.Errors,
	})
}

// VerifyAll handles GET /api/v1/sync/verification.
func (h *SyncHandler) VerifyAll(c *gin.Context) {
	results, err := h.verificationSvc.VerifyAllFolders(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.VerificationItemResponse, 0, len(results))
	for _, r := range results {
		item := dto.VerificationItemResponse{
			FolderID:   r.FolderID.String(),
			IsVerified: r.IsVerified,
			TokenID:    r.TokenID,
			Error:      r.Error,
		}
		if r.LastVerified != nil {
			item.LastVerified = r.LastVerified.Format("2006-01-02T15:04:05Z07:00")
		}
		items = append(items, item)
	}

	response.OK(c, dto.VerificationListResponse{Results: items})
}

// GetBlockchainStatus handles GET /api/v1/sync/status.
func (h *SyncHandler) GetBlockchainStatus(c *gin.Context) {
	status, err := h.verificationSvc.GetBlockchainStatus(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BlockchainStatusResponse{
		TotalFolders:          status.TotalFolders,
		VerifiedParentFolders: status.VerifiedParentFolders,
		VerifiedSubfolders:    status.VerifiedSubfolders,
		VerifiedFiles:         status.VerifiedFiles,
		Pending:               status.Pending,
		Failed:                status.Failed,
		TotalVerifiedItems:    status.TotalVerifiedItems,
	})
}
