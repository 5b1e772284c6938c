package handler

import (
	"strconv"

	"alias-wallet-orchestrator/internal/adapter/http/dto"
	"alias-wallet-orchestrator/internal/core/domain"
	"alias-wallet-orchestrator/internal/core/ports"
	"alias-wallet-orchestrator/pkg/apperror"
	"alias-wallet-orchestrator/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FundingHandler handles provider quote and funding status endpoints.
type FundingHandler struct {
	fundingSvc ports.FundingService
}

// NewFundingHandler creates a new FundingHandler.
func NewFundingHandler(fundingSvc ports.FundingService) *FundingHandler {
	return &FundingHandler{fundingSvc: fundingSvc}
}

// QuoteAll handles GET /api/v1/funding/quotes?amount_cents=N.
func (h *FundingHandler) QuoteAll(c *gin.Context) {
	amountCents, err := strconv.ParseInt(c.Query("amount_cents"), 10, 64)
	if err != nil || amountCents <= 0 {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}

	quotes, err := h.fundingSvc.QuoteAll(c.Request.Context(), amountCents)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		items = append(items, toQuoteResponse(q))
	}

	response.OK(c, dto.QuoteListResponse{
		AmountCents: amountCents,
		Quotes:      items,
	})
}

// GetStatus handles GET /api/v1/funding/:id.
func (h *FundingHandler) GetStatus(c *gin.Context) {
	fundingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid funding request id"))
		return
	}

	fr, err := h.fundingSvc.PollStatus(c.Request.Context(), fundingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toFundingResponse(fr))
}

// toQuoteResponse converts domain.ProviderQuote to a DTO.
func toQuoteResponse(q domain.ProviderQuote) dto.QuoteResponse {
	return dto.QuoteResponse{
		Provider:          string(q.Provider),
		Name:              q.Name,
		FiatAmountCents:   q.FiatAmountCents,
		FeePercentage:     q.Fees.Percentage,
		FeeFixedCents:     q.Fees.FixedCents,
		TotalFeesCents:    q.TotalFeesCents,
		NetAmountCents:    q.NetAmountCents,
		EstimatedTinybars: q.EstimatedTinybars,
		MinAmountCents:    q.MinAmountCents,
		MaxAmountCents:    q.MaxAmountCents,
	}
}
