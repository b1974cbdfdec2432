package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"bvcfolio/internal/domain"
	"bvcfolio/internal/logger"

	gocache "github.com/patrickmn/go-cache"
	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
	"golang.org/x/net/publicsuffix"
)

// QuoteRepository fetches market data for Caracas-listed symbols.
// Live quotes are cached for a minute, historical closes for an hour;
// a symbol the feed does not know is simply absent from the result.
type QuoteRepository interface {
	GetQuotes(ctx context.Context, symbols []string) (map[string]domain.Quote, error)
	GetHistoricalClose(ctx context.Context, symbol string, date time.Time) (decimal.Decimal, bool, error)
	GetDailyCloses(ctx context.Context, symbol string, start, end time.Time) ([]domain.ClosePrice, error)
}

const (
	liveQuoteTTL  = time.Minute
	historicalTTL = time.Hour

	quoteHTTPTimeout = 10 * time.Second
)

func NewQuoteRepository() QuoteRepository {
	// the library default waits 80s; keep the jar it needs for Yahoo's
	// crumb exchange but cap the wait
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err == nil {
		finance.SetHTTPClient(&http.Client{
			Jar:     jar,
			Timeout: quoteHTTPTimeout,
		})
	}

	return &quoteRepositoryHandler{
		Cache: gocache.New(liveQuoteTTL, 10*time.Minute),
	}
}

type quoteRepositoryHandler struct {
	Cache *gocache.Cache
}

func (h *quoteRepositoryHandler) GetQuotes(ctx context.Context, symbols []string) (map[string]domain.Quote, error) {
	out := map[string]domain.Quote{}
	missing := []string{}
	for _, symbol := range symbols {
		if cached, ok := h.Cache.Get("quote:" + symbol); ok {
			out[symbol] = cached.(domain.Quote)
			continue
		}
		missing = append(missing, symbol)
	}
	if len(missing) == 0 {
		return out, nil
	}

	iter := quote.List(missing)
	for iter.Next() {
		q := iter.Quote()
		if q == nil {
			continue
		}
		dq := domain.Quote{
			Symbol:        q.Symbol,
			Name:          q.ShortName,
			Price:         decimal.NewFromFloat(q.RegularMarketPrice),
			PreviousClose: decimal.NewFromFloat(q.RegularMarketPreviousClose),
			Open:          decimal.NewFromFloat(q.RegularMarketOpen),
			DayHigh:       decimal.NewFromFloat(q.RegularMarketDayHigh),
			DayLow:        decimal.NewFromFloat(q.RegularMarketDayLow),
			Volume:        int64(q.RegularMarketVolume),
		}
		if dq.Name == "" {
			dq.Name = dq.Symbol
		}
		dq.DeriveChange()

		out[dq.Symbol] = dq
		h.Cache.Set("quote:"+dq.Symbol, dq, liveQuoteTTL)
	}
	if err := iter.Err(); err != nil {
		if len(out) == 0 {
			return nil, fmt.Errorf("failed to fetch quotes: %w", err)
		}
		// partial result is better than none
		logger.Warn("quote feed returned partial results: %v", err)
	}

	return out, nil
}

func (h *quoteRepositoryHandler) GetHistoricalClose(ctx context.Context, symbol string, date time.Time) (decimal.Decimal, bool, error) {
	day := date.UTC().Truncate(24 * time.Hour)
	cacheKey := fmt.Sprintf("close:%s:%s", symbol, day.Format(time.DateOnly))
	if cached, ok := h.Cache.Get(cacheKey); ok {
		close := cached.(decimal.Decimal)
		return close, !close.IsZero(), nil
	}

	next := day.Add(24 * time.Hour)
	iter := chart.Get(&chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&day),
		End:      datetime.New(&next),
		Interval: datetime.OneDay,
	})

	bars := []*finance.ChartBar{}
	for iter.Next() {
		if bar := iter.Bar(); bar != nil {
			bars = append(bars, bar)
		}
	}
	if err := iter.Err(); err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to fetch %s close for %s: %w", symbol, day.Format(time.DateOnly), err)
	}

	close := pickClose(bars)
	h.Cache.Set(cacheKey, close, historicalTTL)
	return close, !close.IsZero(), nil
}

// pickClose selects the reference close for a window: any bar's raw
// close beats every adjusted close, which only stands in when no bar in
// the window carries a raw one.
func pickClose(bars []*finance.ChartBar) decimal.Decimal {
	for _, bar := range bars {
		if !bar.Close.IsZero() {
			return bar.Close
		}
	}
	for _, bar := range bars {
		if !bar.AdjClose.IsZero() {
			return bar.AdjClose
		}
	}
	return decimal.Zero
}

func (h *quoteRepositoryHandler) GetDailyCloses(ctx context.Context, symbol string, start, end time.Time) ([]domain.ClosePrice, error) {
	cacheKey := fmt.Sprintf("series:%s:%s:%s", symbol, start.Format(time.DateOnly), end.Format(time.DateOnly))
	if cached, ok := h.Cache.Get(cacheKey); ok {
		return cached.([]domain.ClosePrice), nil
	}

	startUtc := start.UTC()
	endUtc := end.UTC()
	iter := chart.Get(&chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&startUtc),
		End:      datetime.New(&endUtc),
		Interval: datetime.OneDay,
	})

	closes := []domain.ClosePrice{}
	for iter.Next() {
		bar := iter.Bar()
		if bar == nil {
			continue
		}
		close := bar.Close
		if close.IsZero() {
			close = bar.AdjClose
		}
		if close.IsZero() {
			// thinly traded days come back empty; the caller forward-fills
			continue
		}
		closes = append(closes, domain.ClosePrice{
			Symbol: symbol,
			Date:   time.Unix(int64(bar.Timestamp), 0).UTC().Format(time.DateOnly),
			Close:  close,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch %s closes: %w", symbol, err)
	}

	h.Cache.Set(cacheKey, closes, historicalTTL)
	return closes, nil
}
