package calculator

import (
	"bvcfolio/internal/domain"

	"github.com/shopspring/decimal"
)

// ValueHolding joins one holding with the current quote for its symbol.
// A missing quote never fails the valuation: the holding is priced at
// its own cost, showing zero gain.
func ValueHolding(h domain.Holding, quote *domain.Quote) domain.HoldingValuation {
	currentPrice := h.RealAvgCost
	dayChangePct := 0.0
	quoteFound := false
	if quote != nil {
		currentPrice = quote.Price
		dayChangePct = quote.ChangePercent
		quoteFound = true
	}

	marketValue := currentPrice.Mul(h.Quantity)
	costBasis := h.RealAvgCost.Mul(h.Quantity)
	gainLoss := marketValue.Sub(costBasis)

	gainLossPct := 0.0
	if costBasis.IsPositive() {
		gainLossPct = gainLoss.Div(costBasis).InexactFloat64() * 100
	}

	return domain.HoldingValuation{
		Holding:          h,
		CurrentPrice:     currentPrice,
		DayChangePercent: dayChangePct,
		MarketValue:      marketValue,
		CostBasis:        costBasis,
		GainLoss:         gainLoss,
		GainLossPercent:  gainLossPct,
		QuoteFound:       quoteFound,
	}
}

// Rollup sums per-holding valuations into portfolio totals. The sum is
// commutative, so input ordering does not matter; an empty portfolio
// rolls up to zeros rather than an error.
func Rollup(valuations []domain.HoldingValuation) domain.PortfolioSnapshot {
	totalValue := decimal.Zero
	totalCost := decimal.Zero
	for _, v := range valuations {
		totalValue = totalValue.Add(v.MarketValue)
		totalCost = totalCost.Add(v.CostBasis)
	}
	totalGain := totalValue.Sub(totalCost)

	totalGainPct := 0.0
	if totalCost.IsPositive() {
		totalGainPct = totalGain.Div(totalCost).InexactFloat64() * 100
	}

	return domain.PortfolioSnapshot{
		Valuations:       valuations,
		TotalValue:       totalValue,
		TotalCost:        totalCost,
		TotalGain:        totalGain,
		TotalGainPercent: totalGainPct,
	}
}
