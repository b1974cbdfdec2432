package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bvcfolio/internal/calculator"
	"bvcfolio/internal/domain"
	"bvcfolio/internal/logger"
	"bvcfolio/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AddHoldingInput struct {
	Symbol        string
	Quantity      decimal.Decimal
	PricePerShare decimal.Decimal
	PurchaseDate  time.Time
}

type HoldingDetail struct {
	Holding   domain.Holding
	Fees      domain.FeeBreakdown
	Valuation domain.HoldingValuation
}

// PortfolioService owns the lot lifecycle and the valuation views built
// on top of it. Market data problems degrade the views; store write
// problems are surfaced to the caller.
type PortfolioService interface {
	GetSnapshot(ctx context.Context) (*domain.PortfolioSnapshot, error)
	AddHolding(ctx context.Context, in AddHoldingInput) (*domain.Holding, error)
	UpdateHolding(ctx context.Context, holding domain.Holding) error
	DeleteHolding(ctx context.Context, id uuid.UUID) error
	GetHoldingDetail(ctx context.Context, id uuid.UUID) (*HoldingDetail, error)
	GetValueHistory(ctx context.Context, lookback time.Duration) ([]domain.ValuePoint, error)
}

func NewPortfolioService(
	holdingRepository repository.HoldingRepository,
	quoteRepository repository.QuoteRepository,
	fxRepository repository.FxRateRepository,
) PortfolioService {
	return portfolioServiceHandler{
		HoldingRepository: holdingRepository,
		QuoteRepository:   quoteRepository,
		FxRepository:      fxRepository,
	}
}

type portfolioServiceHandler struct {
	HoldingRepository repository.HoldingRepository
	QuoteRepository   repository.QuoteRepository
	FxRepository      repository.FxRateRepository
}

func (h portfolioServiceHandler) GetSnapshot(ctx context.Context) (*domain.PortfolioSnapshot, error) {
	snapshot := &domain.PortfolioSnapshot{
		Valuations: []domain.HoldingValuation{},
		UsdRate:    h.FxRepository.OfficialUsdRate(ctx),
	}

	holdings, err := h.HoldingRepository.List()
	if err != nil {
		// an unreadable store should not blank the dashboard
		logger.Error(fmt.Errorf("failed to list holdings for snapshot: %w", err))
		return snapshot, nil
	}
	if len(holdings) == 0 {
		return snapshot, nil
	}

	quotes := h.quotesForHoldings(ctx, holdings)

	valuations := make([]domain.HoldingValuation, 0, len(holdings))
	for _, holding := range holdings {
		var quote *domain.Quote
		if q, ok := quotes[holding.Symbol]; ok {
			quote = &q
		}
		valuations = append(valuations, calculator.ValueHolding(holding, quote))
	}

	rolled := calculator.Rollup(valuations)
	rolled.UsdRate = snapshot.UsdRate
	return &rolled, nil
}

func (h portfolioServiceHandler) quotesForHoldings(ctx context.Context, holdings []domain.Holding) map[string]domain.Quote {
	seen := map[string]bool{}
	symbols := []string{}
	for _, holding := range holdings {
		if !seen[holding.Symbol] {
			seen[holding.Symbol] = true
			symbols = append(symbols, holding.Symbol)
		}
	}

	quotes, err := h.QuoteRepository.GetQuotes(ctx, symbols)
	if err != nil {
		logger.Warn("failed to fetch quotes for %d symbols, valuing at cost: %v", len(symbols), err)
		return map[string]domain.Quote{}
	}
	return quotes
}

func (h portfolioServiceHandler) AddHolding(ctx context.Context, in AddHoldingInput) (*domain.Holding, error) {
	fees, err := calculator.ComposeFees(calculator.ComposeFeesInput{
		Quantity:        in.Quantity,
		MarketPrice:     in.PricePerShare,
		CommissionPct:   calculator.DefaultCommissionPct,
		RegistrationPct: calculator.DefaultRegistrationPct,
		VATPct:          calculator.DefaultVATPct,
	})
	if err != nil {
		return nil, err
	}

	holding := domain.Holding{
		Symbol:       in.Symbol,
		Quantity:     in.Quantity,
		RealAvgCost:  fees.RealAvgCost,
		PurchaseDate: in.PurchaseDate,
	}
	if err := holding.Validate(); err != nil {
		return nil, err
	}

	added, err := h.HoldingRepository.Add(holding)
	if err != nil {
		return nil, fmt.Errorf("failed to add holding: %w", err)
	}

	return added, nil
}

func (h portfolioServiceHandler) UpdateHolding(ctx context.Context, holding domain.Holding) error {
	if err := holding.Validate(); err != nil {
		return err
	}
	return h.HoldingRepository.Update(holding)
}

func (h portfolioServiceHandler) DeleteHolding(ctx context.Context, id uuid.UUID) error {
	return h.HoldingRepository.Delete(id)
}

func (h portfolioServiceHandler) GetHoldingDetail(ctx context.Context, id uuid.UUID) (*HoldingDetail, error) {
	holding, err := h.HoldingRepository.Get(id)
	if err != nil {
		return nil, err
	}

	fees, err := calculator.DecomposeFees(holding.RealAvgCost, holding.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to decompose fees for holding %s: %w", id, err)
	}

	quotes := h.quotesForHoldings(ctx, []domain.Holding{*holding})
	var quote *domain.Quote
	if q, ok := quotes[holding.Symbol]; ok {
		quote = &q
	}

	return &HoldingDetail{
		Holding:   *holding,
		Fees:      *fees,
		Valuation: calculator.ValueHolding(*holding, quote),
	}, nil
}

func (h portfolioServiceHandler) GetValueHistory(ctx context.Context, lookback time.Duration) ([]domain.ValuePoint, error) {
	holdings, err := h.HoldingRepository.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings for value history: %w", err)
	}
	if len(holdings) == 0 {
		return []domain.ValuePoint{}, nil
	}

	quantityBySymbol := map[string]decimal.Decimal{}
	for _, holding := range holdings {
		quantityBySymbol[holding.Symbol] = quantityBySymbol[holding.Symbol].Add(holding.Quantity)
	}

	end := time.Now().UTC()
	start := end.Add(-lookback)

	closesBySymbol := map[string]map[string]decimal.Decimal{}
	dateSet := map[string]bool{}
	for symbol := range quantityBySymbol {
		closes, err := h.QuoteRepository.GetDailyCloses(ctx, symbol, start, end)
		if err != nil {
			logger.Warn("failed to fetch close series for %s, excluding from history: %v", symbol, err)
			continue
		}
		series := map[string]decimal.Decimal{}
		for _, close := range closes {
			series[close.Date] = close.Close
			dateSet[close.Date] = true
		}
		if len(series) > 0 {
			closesBySymbol[symbol] = series
		}
	}
	if len(dateSet) == 0 {
		return []domain.ValuePoint{}, nil
	}

	dates := make([]string, 0, len(dateSet))
	for date := range dateSet {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	points := make([]domain.ValuePoint, 0, len(dates))
	for _, date := range dates {
		points = append(points, domain.ValuePoint{Date: date, Value: decimal.Zero})
	}

	// forward-fill gaps, back-fill the head, so sparse symbols do not
	// carve holes in the aggregate line
	for symbol, series := range closesBySymbol {
		quantity := quantityBySymbol[symbol]

		firstKnown := decimal.Zero
		for _, date := range dates {
			if close, ok := series[date]; ok {
				firstKnown = close
				break
			}
		}

		last := firstKnown
		for i, date := range dates {
			if close, ok := series[date]; ok {
				last = close
			}
			points[i].Value = points[i].Value.Add(quantity.Mul(last))
		}
	}

	return points, nil
}
