package api

import (
	"errors"
	"fmt"
	"time"

	"bvcfolio/internal/domain"
	"bvcfolio/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UpdateHoldingRequest struct {
	Symbol       string  `json:"symbol"`
	Quantity     float64 `json:"quantity"`
	RealAvgCost  float64 `json:"realAvgCost"`
	PurchaseDate string  `json:"purchaseDate"`
}

func (h ApiHandler) updateHolding(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid holding id: %w", err), c, 400)
		return
	}

	var requestBody UpdateHoldingRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	purchaseDate, err := time.Parse(time.DateOnly, requestBody.PurchaseDate)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid purchase date %q: %w", requestBody.PurchaseDate, err), c, 400)
		return
	}

	err = h.PortfolioService.UpdateHolding(c.Request.Context(), domain.Holding{
		HoldingID:    id,
		Symbol:       requestBody.Symbol,
		Quantity:     decimal.NewFromFloat(requestBody.Quantity),
		RealAvgCost:  decimal.NewFromFloat(requestBody.RealAvgCost),
		PurchaseDate: purchaseDate,
	})
	if errors.Is(err, repository.ErrHoldingNotFound) {
		returnErrorJsonCode(err, c, 404)
		return
	} else if errors.Is(err, domain.ErrInvalidLot) {
		returnErrorJsonCode(err, c, 400)
		return
	} else if err != nil {
		returnErrorJson(fmt.Errorf("failed to update holding: %w", err), c)
		return
	}

	c.JSON(200, gin.H{"status": "ok"})
}
