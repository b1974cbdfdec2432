package api

import (
	"errors"
	"fmt"
	"time"

	"bvcfolio/internal/calculator"
	"bvcfolio/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PreviewPurchaseRequest struct {
	Symbol        string   `json:"symbol"`
	Quantity      float64  `json:"quantity"`
	PricePerShare *float64 `json:"pricePerShare,omitempty"`
	PurchaseDate  string   `json:"purchaseDate,omitempty"`

	CommissionPct   *float64 `json:"commissionPct,omitempty"`
	RegistrationPct *float64 `json:"registrationPct,omitempty"`
	VATPct          *float64 `json:"vatPct,omitempty"`
}

type PreviewPurchaseResponse struct {
	Symbol      string               `json:"symbol"`
	Fees        FeeBreakdownResponse `json:"fees"`
	PriceSource string               `json:"priceSource,omitempty"`
}

func (h ApiHandler) previewPurchase(c *gin.Context) {
	var requestBody PreviewPurchaseRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	priceSource := ""
	var pricePerShare decimal.Decimal
	if requestBody.PricePerShare != nil {
		pricePerShare = decimal.NewFromFloat(*requestBody.PricePerShare)
	} else {
		purchaseDate := time.Now()
		if requestBody.PurchaseDate != "" {
			parsed, err := time.Parse(time.DateOnly, requestBody.PurchaseDate)
			if err != nil {
				returnErrorJsonCode(fmt.Errorf("invalid purchase date %q: %w", requestBody.PurchaseDate, err), c, 400)
				return
			}
			purchaseDate = parsed
		}

		resolved, err := h.PurchaseService.ResolvePurchasePrice(c.Request.Context(), requestBody.Symbol, purchaseDate)
		if err != nil {
			returnErrorJson(fmt.Errorf("failed to resolve purchase price: %w", err), c)
			return
		}
		if !resolved.Found {
			returnErrorJsonCode(fmt.Errorf("no price available for %s", requestBody.Symbol), c, 422)
			return
		}
		pricePerShare = resolved.Price
		priceSource = resolved.Source
	}

	in := calculator.ComposeFeesInput{
		Quantity:        decimal.NewFromFloat(requestBody.Quantity),
		MarketPrice:     pricePerShare,
		CommissionPct:   calculator.DefaultCommissionPct,
		RegistrationPct: calculator.DefaultRegistrationPct,
		VATPct:          calculator.DefaultVATPct,
	}
	if requestBody.CommissionPct != nil {
		in.CommissionPct = decimal.NewFromFloat(*requestBody.CommissionPct)
	}
	if requestBody.RegistrationPct != nil {
		in.RegistrationPct = decimal.NewFromFloat(*requestBody.RegistrationPct)
	}
	if requestBody.VATPct != nil {
		in.VATPct = decimal.NewFromFloat(*requestBody.VATPct)
	}

	fees, err := h.PurchaseService.PreviewPurchase(c.Request.Context(), in)
	if errors.Is(err, domain.ErrInvalidLot) {
		returnErrorJsonCode(err, c, 400)
		return
	} else if err != nil {
		returnErrorJson(fmt.Errorf("failed to preview purchase: %w", err), c)
		return
	}

	c.JSON(200, PreviewPurchaseResponse{
		Symbol:      requestBody.Symbol,
		Fees:        feesToResponse(*fees),
		PriceSource: priceSource,
	})
}
