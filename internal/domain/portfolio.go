package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HoldingValuation joins one holding with the current quote for its
// symbol. When the quote is missing the valuation degrades to a
// zero-gain display instead of failing: current price falls back to the
// stored real average cost.
type HoldingValuation struct {
	Holding          Holding
	CurrentPrice     decimal.Decimal
	DayChangePercent float64
	MarketValue      decimal.Decimal
	CostBasis        decimal.Decimal
	GainLoss         decimal.Decimal
	GainLossPercent  float64
	QuoteFound       bool
}

// PortfolioSnapshot is recomputed on every request and never persisted.
type PortfolioSnapshot struct {
	Valuations       []HoldingValuation
	TotalValue       decimal.Decimal
	TotalCost        decimal.Decimal
	TotalGain        decimal.Decimal
	TotalGainPercent float64

	// UsdRate is the official VES/USD rate applied for dollar display
	// figures, 1 when the rate service is unavailable.
	UsdRate decimal.Decimal
}

// MarketSummary aggregates the quote table into the dashboard header.
type MarketSummary struct {
	AverageChangePercent float64
	TotalVolume          int64
	TopGainer            *Quote
	MarketOpen           bool
	AsOf                 time.Time
}

// ValuePoint is one day of qty-weighted portfolio value.
type ValuePoint struct {
	Date  string
	Value decimal.Decimal
}
