package service

import (
	"context"
	"testing"
	"time"

	"bvcfolio/internal/calculator"
	"bvcfolio/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_ResolvePurchasePrice(t *testing.T) {
	t.Run("same day uses the live quote", func(t *testing.T) {
		quoteRepository := &mockQuoteRepository{
			quotes: map[string]domain.Quote{
				"BNC.CR": {Symbol: "BNC.CR", Price: decimal.NewFromFloat(12.5)},
			},
		}
		svc := NewPurchaseService(quoteRepository)

		resolved, err := svc.ResolvePurchasePrice(context.Background(), "BNC.CR", time.Now())
		require.NoError(t, err)
		require.True(t, resolved.Found)
		require.Equal(t, PriceSourceLive, resolved.Source)
		require.Equal(t, "12.5", resolved.Price.String())
	})

	t.Run("past date uses the historical close", func(t *testing.T) {
		date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		quoteRepository := &mockQuoteRepository{
			closes: map[string]decimal.Decimal{
				"BNC.CR:2025-03-10": decimal.NewFromFloat(9.75),
			},
		}
		svc := NewPurchaseService(quoteRepository)

		resolved, err := svc.ResolvePurchasePrice(context.Background(), "BNC.CR", date)
		require.NoError(t, err)
		require.True(t, resolved.Found)
		require.Equal(t, PriceSourceHistorical, resolved.Source)
		require.Equal(t, "9.75", resolved.Price.String())
	})

	t.Run("unknown date reports not found", func(t *testing.T) {
		date := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
		svc := NewPurchaseService(&mockQuoteRepository{})

		resolved, err := svc.ResolvePurchasePrice(context.Background(), "BNC.CR", date)
		require.NoError(t, err)
		require.False(t, resolved.Found)
		require.Equal(t, PriceSourceHistorical, resolved.Source)
	})
}

func Test_PreviewPurchase(t *testing.T) {
	t.Run("applies the default fee schedule", func(t *testing.T) {
		svc := NewPurchaseService(&mockQuoteRepository{})

		fees, err := svc.PreviewPurchase(context.Background(), calculator.ComposeFeesInput{
			Quantity:    decimal.NewFromInt(100),
			MarketPrice: decimal.NewFromInt(10),
		})
		require.NoError(t, err)
		require.Equal(t, "1000", fees.BaseSubtotal.String())
		require.Equal(t, "50", fees.Commission.String())
		require.Equal(t, "1", fees.RegistrationRight.String())
		require.Equal(t, "8", fees.VAT.String())
		require.Equal(t, "1059", fees.GrandTotal.String())
		require.Equal(t, "10.59", fees.RealAvgCost.String())
	})

	t.Run("honors explicit rates", func(t *testing.T) {
		svc := NewPurchaseService(&mockQuoteRepository{})

		fees, err := svc.PreviewPurchase(context.Background(), calculator.ComposeFeesInput{
			Quantity:        decimal.NewFromInt(10),
			MarketPrice:     decimal.NewFromInt(100),
			CommissionPct:   decimal.NewFromInt(1),
			RegistrationPct: decimal.NewFromInt(0),
			VATPct:          decimal.NewFromInt(0),
		})
		require.NoError(t, err)
		require.Equal(t, "10", fees.Commission.String())
		require.Equal(t, "0", fees.RegistrationRight.String())
		require.Equal(t, "0", fees.VAT.String())
		require.Equal(t, "1010", fees.GrandTotal.String())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		svc := NewPurchaseService(&mockQuoteRepository{})

		_, err := svc.PreviewPurchase(context.Background(), calculator.ComposeFeesInput{
			Quantity:    decimal.NewFromInt(-1),
			MarketPrice: decimal.NewFromInt(10),
		})
		require.ErrorIs(t, err, domain.ErrInvalidLot)
	})
}
