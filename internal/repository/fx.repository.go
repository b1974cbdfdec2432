package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"bvcfolio/internal/logger"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

const (
	officialRateUrl = "https://ve.dolarapi.com/v1/dolares/oficial"
	parallelRateUrl = "https://p2p.binance.com/bapi/c2c/v2/friendly/c2c/adv/search"

	officialRateTTL = time.Hour
	parallelRateTTL = 5 * time.Minute

	// how long the fallback rate is served before the upstream is
	// retried; without it every render during an outage waits out the
	// full request timeout
	officialRateRetryTTL = time.Minute
)

// FxRateRepository exposes VES/USD exchange rates. The official (BCV)
// rate never fails: on any upstream problem it degrades to 1, so
// downstream USD figures silently become VES figures. The parallel
// rate reports availability explicitly.
type FxRateRepository interface {
	OfficialUsdRate(ctx context.Context) decimal.Decimal
	ParallelUsdRate(ctx context.Context) (decimal.Decimal, bool)
}

func NewFxRateRepository() FxRateRepository {
	return &fxRateRepositoryHandler{
		HttpClient:  &http.Client{Timeout: 5 * time.Second},
		Cache:       gocache.New(officialRateTTL, 10*time.Minute),
		OfficialUrl: officialRateUrl,
		ParallelUrl: parallelRateUrl,
	}
}

type fxRateRepositoryHandler struct {
	HttpClient  *http.Client
	Cache       *gocache.Cache
	OfficialUrl string
	ParallelUrl string
}

type officialRateResponse struct {
	Promedio float64 `json:"promedio"`
}

func (h *fxRateRepositoryHandler) OfficialUsdRate(ctx context.Context) decimal.Decimal {
	if cached, ok := h.Cache.Get("fx:official"); ok {
		return cached.(decimal.Decimal)
	}

	rate, err := h.fetchOfficialRate(ctx)
	if err != nil {
		logger.Warn("could not fetch official usd rate, falling back to 1: %v", err)
		fallback := decimal.NewFromInt(1)
		h.Cache.Set("fx:official", fallback, officialRateRetryTTL)
		return fallback
	}

	h.Cache.Set("fx:official", rate, officialRateTTL)
	return rate
}

func (h *fxRateRepositoryHandler) fetchOfficialRate(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.OfficialUrl, nil)
	if err != nil {
		return decimal.Zero, err
	}

	resp, err := h.HttpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("official rate request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("official rate request returned status %d", resp.StatusCode)
	}

	response := officialRateResponse{}
	err = json.NewDecoder(resp.Body).Decode(&response)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode official rate response: %w", err)
	}
	if response.Promedio <= 0 {
		return decimal.Zero, fmt.Errorf("official rate response had non-positive promedio %f", response.Promedio)
	}

	return decimal.NewFromFloat(response.Promedio), nil
}

type parallelRateRequest struct {
	Asset         string   `json:"asset"`
	Fiat          string   `json:"fiat"`
	MerchantCheck bool     `json:"merchantCheck"`
	Page          int      `json:"page"`
	PayTypes      []string `json:"payTypes"`
	PublisherType string   `json:"publisherType"`
	Rows          int      `json:"rows"`
	TradeType     string   `json:"tradeType"`
}

type parallelRateResponse struct {
	Data []struct {
		Adv struct {
			Price string `json:"price"`
		} `json:"adv"`
	} `json:"data"`
}

func (h *fxRateRepositoryHandler) ParallelUsdRate(ctx context.Context) (decimal.Decimal, bool) {
	if cached, ok := h.Cache.Get("fx:parallel"); ok {
		return cached.(decimal.Decimal), true
	}

	rate, err := h.fetchParallelRate(ctx)
	if err != nil {
		logger.Warn("could not fetch parallel usd rate: %v", err)
		return decimal.Zero, false
	}

	h.Cache.Set("fx:parallel", rate, parallelRateTTL)
	return rate, true
}

func (h *fxRateRepositoryHandler) fetchParallelRate(ctx context.Context) (decimal.Decimal, error) {
	payload := parallelRateRequest{
		Asset:         "USDT",
		Fiat:          "VES",
		MerchantCheck: true,
		Page:          1,
		PayTypes:      []string{},
		PublisherType: "merchant",
		Rows:          3,
		TradeType:     "BUY",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return decimal.Zero, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.ParallelUrl, bytes.NewReader(body))
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.HttpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parallel rate request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("parallel rate request returned status %d", resp.StatusCode)
	}

	response := parallelRateResponse{}
	err = json.NewDecoder(resp.Body).Decode(&response)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode parallel rate response: %w", err)
	}
	if len(response.Data) == 0 {
		return decimal.Zero, fmt.Errorf("parallel rate response had no advertisements")
	}

	sum := decimal.Zero
	count := 0
	for _, ad := range response.Data {
		price, err := strconv.ParseFloat(ad.Adv.Price, 64)
		if err != nil || price <= 0 {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(price))
		count++
	}
	if count == 0 {
		return decimal.Zero, fmt.Errorf("parallel rate response had no parseable prices")
	}

	return sum.Div(decimal.NewFromInt(int64(count))), nil
}
