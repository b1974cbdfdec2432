package api

import (
	"errors"
	"fmt"

	"bvcfolio/internal/domain"
	"bvcfolio/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FeeBreakdownResponse struct {
	BasePricePerShare float64 `json:"basePricePerShare"`
	BaseSubtotal      float64 `json:"baseSubtotal"`
	Commission        float64 `json:"commission"`
	RegistrationRight float64 `json:"registrationRight"`
	VAT               float64 `json:"vat"`
	GrandTotal        float64 `json:"grandTotal"`
	RealAvgCost       float64 `json:"realAvgCost"`
}

type GetHoldingDetailsResponse struct {
	Holding HoldingValuationResponse `json:"holding"`
	Fees    FeeBreakdownResponse     `json:"fees"`
}

func feesToResponse(fees domain.FeeBreakdown) FeeBreakdownResponse {
	return FeeBreakdownResponse{
		BasePricePerShare: fees.BasePricePerShare.InexactFloat64(),
		BaseSubtotal:      fees.BaseSubtotal.InexactFloat64(),
		Commission:        fees.Commission.InexactFloat64(),
		RegistrationRight: fees.RegistrationRight.InexactFloat64(),
		VAT:               fees.VAT.InexactFloat64(),
		GrandTotal:        fees.GrandTotal.InexactFloat64(),
		RealAvgCost:       fees.RealAvgCost.InexactFloat64(),
	}
}

func (h ApiHandler) getHoldingDetails(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid holding id: %w", err), c, 400)
		return
	}

	detail, err := h.PortfolioService.GetHoldingDetail(c.Request.Context(), id)
	if errors.Is(err, repository.ErrHoldingNotFound) {
		returnErrorJsonCode(err, c, 404)
		return
	} else if err != nil {
		returnErrorJson(fmt.Errorf("failed to get holding details: %w", err), c)
		return
	}

	c.JSON(200, GetHoldingDetailsResponse{
		Holding: valuationToResponse(detail.Valuation),
		Fees:    feesToResponse(detail.Fees),
	})
}
