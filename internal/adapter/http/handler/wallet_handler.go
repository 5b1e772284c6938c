package handler

import (
	"alias-wallet-orchestrator/internal/adapter/http/dto"
	"alias-wallet-orchestrator/internal/adapter/http/middleware"
	"alias-wallet-orchestrator/internal/core/domain"
	"alias-wallet-orchestrator/internal/core/ports"
	"alias-wallet-orchestrator/pkg/apperror"
	"alias-wallet-orchestrator/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler handles wallet lifecycle endpoints.
type WalletHandler struct {
	lifecycleSvc ports.LifecycleService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(lifecycleSvc ports.LifecycleService) *WalletHandler {
	return &WalletHandler{lifecycleSvc: lifecycleSvc}
}

// CreateWallet handles POST /api/v1/wallets.
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	userID, ok := c.Get(middleware.CtxUserID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	userEmail, _ := c.Get(middleware.CtxUserEmail)

	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.lifecycleSvc.CreateCompleteWallet(c.Request.Context(), ports.CompleteWalletRequest{
		UserID:       userID.(uuid.UUID),
		UserEmail:    userEmail.(string),
		Plan:         req.Plan,
		FundingCents: req.FundingCents,
		Provider:     domain.Provider(req.Provider),
		Network:      domain.Network(req.Network),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toCreateWalletResponse(result))
}

// GetStatus handles GET /api/v1/wallets/:id/status.
func (h *WalletHandler) GetStatus(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet id"))
		return
	}

	status, err := h.lifecycleSvc.GetWalletStatus(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.WalletStatusResponse{
		WalletID:        status.Wallet.ID.String(),
		AccountID:       status.AccountID,
		Alias:           status.Alias,
		BalanceTinybars: status.BalanceTinybars,
		IsDeleted:       status.IsDeleted,
		Network:         string(status.Network),
		LastSyncedAt:    status.LastSyncedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// FundWallet handles POST /api/v1/wallets/:id/funding.
func (h *WalletHandler) FundWallet(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet id"))
		return
	}

	userEmail, ok := c.Get(middleware.CtxUserEmail)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.FundWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	fr, err := h.lifecycleSvc.FundExistingWallet(c.Request.Context(), walletID, domain.Provider(req.Provider), req.AmountCents, userEmail.(string))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toFundingResponse(fr))
}

// toCreateWalletResponse converts the lifecycle result to a DTO.
func toCreateWalletResponse(result *ports.CompleteWalletResult) dto.CreateWalletResponse {
	resp := dto.CreateWalletResponse{
		WalletID:          result.Wallet.ID.String(),
		AccountID:         result.AccountID,
		Alias:             result.Alias,
		Network:           string(result.Wallet.Network),
		CheckoutURL:       result.CheckoutURL,
		EstimatedTinybars: result.EstimatedTinybars,
		FundingError:      result.FundingError,
	}
	if result.FundingRequestID != nil {
		s := result.FundingRequestID.String()
		resp.FundingRequestID = &s
	}
	return resp
}

// toFundingResponse converts domain.FundingRequest to a DTO.
func toFundingResponse(fr *domain.FundingRequest) dto.FundingResponse {
	return dto.FundingResponse{
		ID:                fr.ID.String(),
		WalletID:          fr.WalletID.String(),
		Provider:          string(fr.Provider),
		State:             string(fr.State),
		FiatAmountCents:   fr.FiatAmountCents,
		FeePercentage:     fr.Fees.Percentage,
		FeeFixedCents:     fr.Fees.FixedCents,
		EstimatedTinybars: fr.EstimatedTinybars,
		SettledTinybars:   fr.SettledTinybars,
		CheckoutURL:       fr.CheckoutURL,
		CreatedAt:         fr.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
