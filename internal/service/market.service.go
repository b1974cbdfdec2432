package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bvcfolio/internal/domain"
	"bvcfolio/internal/logger"
	"bvcfolio/internal/repository"
	"bvcfolio/internal/util"

	"github.com/montanaflynn/stats"
)

type MarketOverview struct {
	Quotes  []domain.Quote
	Summary domain.MarketSummary

	// Degraded marks an overview rendered without any feed data.
	Degraded bool
}

// MarketService aggregates exchange-wide state over the tracked
// universe. It has no stored state of its own.
type MarketService interface {
	GetOverview(ctx context.Context) (*MarketOverview, error)
}

func NewMarketService(quoteRepository repository.QuoteRepository, universe []string) MarketService {
	if len(universe) == 0 {
		universe = domain.DefaultUniverse
	}
	return marketServiceHandler{
		QuoteRepository: quoteRepository,
		Universe:        universe,
	}
}

type marketServiceHandler struct {
	QuoteRepository repository.QuoteRepository
	Universe        []string
}

func (h marketServiceHandler) GetOverview(ctx context.Context) (*MarketOverview, error) {
	summary := domain.MarketSummary{
		MarketOpen: util.IsMarketHours(time.Now()),
		AsOf:       time.Now().UTC(),
	}

	quotesBySymbol, err := h.QuoteRepository.GetQuotes(ctx, h.Universe)
	if err != nil {
		// a dashboard with an outage banner beats a dead dashboard
		logger.Warn("failed to fetch universe quotes, serving degraded overview: %v", err)
		return &MarketOverview{
			Quotes:   []domain.Quote{},
			Summary:  summary,
			Degraded: true,
		}, nil
	}

	quotes := make([]domain.Quote, 0, len(quotesBySymbol))
	for _, quote := range quotesBySymbol {
		quotes = append(quotes, quote)
	}
	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].Symbol < quotes[j].Symbol
	})

	changes := make([]float64, 0, len(quotes))
	var topGainer *domain.Quote
	for i, quote := range quotes {
		changes = append(changes, quote.ChangePercent)
		summary.TotalVolume += quote.Volume
		if topGainer == nil || quote.ChangePercent > topGainer.ChangePercent {
			topGainer = &quotes[i]
		}
	}
	if len(changes) > 0 {
		mean, err := stats.Mean(changes)
		if err != nil {
			return nil, fmt.Errorf("failed to compute average change: %w", err)
		}
		summary.AverageChangePercent = mean
	}
	summary.TopGainer = topGainer

	return &MarketOverview{
		Quotes:  quotes,
		Summary: summary,
	}, nil
}
