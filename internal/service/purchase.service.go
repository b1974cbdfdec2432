package service

import (
	"context"
	"fmt"
	"time"

	"bvcfolio/internal/calculator"
	"bvcfolio/internal/domain"
	"bvcfolio/internal/repository"
	"bvcfolio/internal/util"

	"github.com/shopspring/decimal"
)

const (
	PriceSourceLive       = "live"
	PriceSourceHistorical = "historical"
)

type ResolvedPrice struct {
	Price  decimal.Decimal
	Found  bool
	Source string
}

// PurchaseService answers "what would this trade cost". It resolves a
// reference price for the chosen date and runs the fee schedule over
// it; nothing here touches the store.
type PurchaseService interface {
	ResolvePurchasePrice(ctx context.Context, symbol string, date time.Time) (*ResolvedPrice, error)
	PreviewPurchase(ctx context.Context, in calculator.ComposeFeesInput) (*domain.FeeBreakdown, error)
}

func NewPurchaseService(quoteRepository repository.QuoteRepository) PurchaseService {
	return purchaseServiceHandler{
		QuoteRepository: quoteRepository,
	}
}

type purchaseServiceHandler struct {
	QuoteRepository repository.QuoteRepository
}

func (h purchaseServiceHandler) ResolvePurchasePrice(ctx context.Context, symbol string, date time.Time) (*ResolvedPrice, error) {
	if util.SameVETDay(date, time.Now()) {
		quotes, err := h.QuoteRepository.GetQuotes(ctx, []string{symbol})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch live price for %s: %w", symbol, err)
		}
		if quote, ok := quotes[symbol]; ok && quote.Price.IsPositive() {
			return &ResolvedPrice{Price: quote.Price, Found: true, Source: PriceSourceLive}, nil
		}
		return &ResolvedPrice{Source: PriceSourceLive}, nil
	}

	close, found, err := h.QuoteRepository.GetHistoricalClose(ctx, symbol, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch close for %s on %s: %w", symbol, date.Format(time.DateOnly), err)
	}
	if !found {
		return &ResolvedPrice{Source: PriceSourceHistorical}, nil
	}

	return &ResolvedPrice{Price: close, Found: true, Source: PriceSourceHistorical}, nil
}

func (h purchaseServiceHandler) PreviewPurchase(ctx context.Context, in calculator.ComposeFeesInput) (*domain.FeeBreakdown, error) {
	if in.CommissionPct.IsZero() && in.RegistrationPct.IsZero() && in.VATPct.IsZero() {
		in.CommissionPct = calculator.DefaultCommissionPct
		in.RegistrationPct = calculator.DefaultRegistrationPct
		in.VATPct = calculator.DefaultVATPct
	}
	return calculator.ComposeFees(in)
}
