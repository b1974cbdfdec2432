package api

import (
	"fmt"
	"time"

	"bvcfolio/internal/domain"

	"github.com/gin-gonic/gin"
)

type HoldingValuationResponse struct {
	HoldingID       string  `json:"holdingID"`
	Symbol          string  `json:"symbol"`
	DisplaySymbol   string  `json:"displaySymbol"`
	Quantity        float64 `json:"quantity"`
	RealAvgCost     float64 `json:"realAvgCost"`
	PurchaseDate    string  `json:"purchaseDate"`
	CurrentPrice    float64 `json:"currentPrice"`
	DayChangePct    float64 `json:"dayChangePercent"`
	MarketValue     float64 `json:"marketValue"`
	CostBasis       float64 `json:"costBasis"`
	GainLoss        float64 `json:"gainLoss"`
	GainLossPercent float64 `json:"gainLossPercent"`
	QuoteFound      bool    `json:"quoteFound"`
}

type GetPortfolioResponse struct {
	Holdings         []HoldingValuationResponse `json:"holdings"`
	TotalValue       float64                    `json:"totalValue"`
	TotalCost        float64                    `json:"totalCost"`
	TotalGain        float64                    `json:"totalGain"`
	TotalGainPercent float64                    `json:"totalGainPercent"`
	UsdRate          float64                    `json:"usdRate"`
	TotalValueUsd    float64                    `json:"totalValueUsd"`
}

func valuationToResponse(valuation domain.HoldingValuation) HoldingValuationResponse {
	return HoldingValuationResponse{
		HoldingID:       valuation.Holding.HoldingID.String(),
		Symbol:          valuation.Holding.Symbol,
		DisplaySymbol:   valuation.Holding.DisplaySymbol(),
		Quantity:        valuation.Holding.Quantity.InexactFloat64(),
		RealAvgCost:     valuation.Holding.RealAvgCost.InexactFloat64(),
		PurchaseDate:    valuation.Holding.PurchaseDate.Format(time.DateOnly),
		CurrentPrice:    valuation.CurrentPrice.InexactFloat64(),
		DayChangePct:    valuation.DayChangePercent,
		MarketValue:     valuation.MarketValue.InexactFloat64(),
		CostBasis:       valuation.CostBasis.InexactFloat64(),
		GainLoss:        valuation.GainLoss.InexactFloat64(),
		GainLossPercent: valuation.GainLossPercent,
		QuoteFound:      valuation.QuoteFound,
	}
}

func (h ApiHandler) getPortfolio(c *gin.Context) {
	snapshot, err := h.PortfolioService.GetSnapshot(c.Request.Context())
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to build portfolio snapshot: %w", err), c)
		return
	}

	responseJson := GetPortfolioResponse{
		Holdings:         make([]HoldingValuationResponse, 0, len(snapshot.Valuations)),
		TotalValue:       snapshot.TotalValue.InexactFloat64(),
		TotalCost:        snapshot.TotalCost.InexactFloat64(),
		TotalGain:        snapshot.TotalGain.InexactFloat64(),
		TotalGainPercent: snapshot.TotalGainPercent,
		UsdRate:          snapshot.UsdRate.InexactFloat64(),
	}
	if snapshot.UsdRate.IsPositive() {
		responseJson.TotalValueUsd = snapshot.TotalValue.Div(snapshot.UsdRate).InexactFloat64()
	}
	for _, valuation := range snapshot.Valuations {
		responseJson.Holdings = append(responseJson.Holdings, valuationToResponse(valuation))
	}

	c.JSON(200, responseJson)
}
