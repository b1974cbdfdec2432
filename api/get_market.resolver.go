package api

import (
	"fmt"
	"time"

	"bvcfolio/internal/domain"

	"github.com/gin-gonic/gin"
)

type MarketQuoteResponse struct {
	Symbol        string  `json:"symbol"`
	DisplaySymbol string  `json:"displaySymbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	PreviousClose float64 `json:"previousClose"`
	Open          float64 `json:"open"`
	DayHigh       float64 `json:"dayHigh"`
	DayLow        float64 `json:"dayLow"`
	Volume        int64   `json:"volume"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

type GetMarketResponse struct {
	Status               string                `json:"status"`
	Quotes               []MarketQuoteResponse `json:"quotes"`
	AverageChangePercent float64               `json:"averageChangePercent"`
	TotalVolume          int64                 `json:"totalVolume"`
	TopGainer            *MarketQuoteResponse  `json:"topGainer,omitempty"`
	MarketOpen           bool                  `json:"marketOpen"`
	AsOf                 string                `json:"asOf"`
}

func quoteToResponse(quote domain.Quote) MarketQuoteResponse {
	return MarketQuoteResponse{
		Symbol:        quote.Symbol,
		DisplaySymbol: quote.DisplaySymbol(),
		Name:          quote.Name,
		Price:         quote.Price.InexactFloat64(),
		PreviousClose: quote.PreviousClose.InexactFloat64(),
		Open:          quote.Open.InexactFloat64(),
		DayHigh:       quote.DayHigh.InexactFloat64(),
		DayLow:        quote.DayLow.InexactFloat64(),
		Volume:        quote.Volume,
		Change:        quote.Change.InexactFloat64(),
		ChangePercent: quote.ChangePercent,
	}
}

func (h ApiHandler) getMarket(c *gin.Context) {
	overview, err := h.MarketService.GetOverview(c.Request.Context())
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to fetch market overview: %w", err), c)
		return
	}

	status := "ok"
	if overview.Degraded {
		status = "degraded"
	}

	responseJson := GetMarketResponse{
		Status:               status,
		Quotes:               make([]MarketQuoteResponse, 0, len(overview.Quotes)),
		AverageChangePercent: overview.Summary.AverageChangePercent,
		TotalVolume:          overview.Summary.TotalVolume,
		MarketOpen:           overview.Summary.MarketOpen,
		AsOf:                 overview.Summary.AsOf.Format(time.RFC3339),
	}
	for _, quote := range overview.Quotes {
		responseJson.Quotes = append(responseJson.Quotes, quoteToResponse(quote))
	}
	if overview.Summary.TopGainer != nil {
		topGainer := quoteToResponse(*overview.Summary.TopGainer)
		responseJson.TopGainer = &topGainer
	}

	c.JSON(200, responseJson)
}
