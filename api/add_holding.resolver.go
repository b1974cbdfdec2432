package api

import (
	"fmt"
	"time"

	"bvcfolio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AddHoldingRequest struct {
	Symbol        string   `json:"symbol"`
	Quantity      float64  `json:"quantity"`
	PricePerShare *float64 `json:"pricePerShare,omitempty"`
	PurchaseDate  string   `json:"purchaseDate"`
}

type AddHoldingResponse struct {
	HoldingID    string  `json:"holdingID"`
	Symbol       string  `json:"symbol"`
	Quantity     float64 `json:"quantity"`
	RealAvgCost  float64 `json:"realAvgCost"`
	PurchaseDate string  `json:"purchaseDate"`
	PriceSource  string  `json:"priceSource,omitempty"`
}

func (h ApiHandler) addHolding(c *gin.Context) {
	var requestBody AddHoldingRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	purchaseDate, err := time.Parse(time.DateOnly, requestBody.PurchaseDate)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid purchase date %q: %w", requestBody.PurchaseDate, err), c, 400)
		return
	}

	priceSource := ""
	var pricePerShare decimal.Decimal
	if requestBody.PricePerShare != nil {
		pricePerShare = decimal.NewFromFloat(*requestBody.PricePerShare)
	} else {
		resolved, err := h.PurchaseService.ResolvePurchasePrice(c.Request.Context(), requestBody.Symbol, purchaseDate)
		if err != nil {
			returnErrorJson(fmt.Errorf("failed to resolve purchase price: %w", err), c)
			return
		}
		if !resolved.Found {
			returnErrorJsonCode(fmt.Errorf("no price available for %s on %s", requestBody.Symbol, requestBody.PurchaseDate), c, 422)
			return
		}
		pricePerShare = resolved.Price
		priceSource = resolved.Source
	}

	added, err := h.PortfolioService.AddHolding(c.Request.Context(), service.AddHoldingInput{
		Symbol:        requestBody.Symbol,
		Quantity:      decimal.NewFromFloat(requestBody.Quantity),
		PricePerShare: pricePerShare,
		PurchaseDate:  purchaseDate,
	})
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	c.JSON(200, AddHoldingResponse{
		HoldingID:    added.HoldingID.String(),
		Symbol:       added.Symbol,
		Quantity:     added.Quantity.InexactFloat64(),
		RealAvgCost:  added.RealAvgCost.InexactFloat64(),
		PurchaseDate: added.PurchaseDate.Format(time.DateOnly),
		PriceSource:  priceSource,
	})
}
