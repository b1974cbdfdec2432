package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"bvcfolio/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_GetSnapshot(t *testing.T) {
	t.Run("values holdings against live quotes", func(t *testing.T) {
		holdingRepository := &mockHoldingRepository{
			holdings: []domain.Holding{
				{
					HoldingID:   uuid.New(),
					Symbol:      "BNC.CR",
					Quantity:    decimal.NewFromInt(100),
					RealAvgCost: decimal.NewFromInt(10),
				},
			},
		}
		quoteRepository := &mockQuoteRepository{
			quotes: map[string]domain.Quote{
				"BNC.CR": {
					Symbol: "BNC.CR",
					Price:  decimal.NewFromFloat(12.5),
				},
			},
		}
		svc := NewPortfolioService(holdingRepository, quoteRepository, &mockFxRepository{
			official: decimal.NewFromFloat(36.5),
		})

		snapshot, err := svc.GetSnapshot(context.Background())
		require.NoError(t, err)
		require.Len(t, snapshot.Valuations, 1)
		require.Equal(t, "1250", snapshot.TotalValue.String())
		require.Equal(t, "1000", snapshot.TotalCost.String())
		require.Equal(t, "250", snapshot.TotalGain.String())
		require.InDelta(t, 25.0, snapshot.TotalGainPercent, 1e-9)
		require.Equal(t, "36.5", snapshot.UsdRate.String())
		require.True(t, snapshot.Valuations[0].QuoteFound)
	})

	t.Run("missing quote falls back to cost", func(t *testing.T) {
		holdingRepository := &mockHoldingRepository{
			holdings: []domain.Holding{
				{
					HoldingID:   uuid.New(),
					Symbol:      "EFE.CR",
					Quantity:    decimal.NewFromInt(10),
					RealAvgCost: decimal.NewFromInt(7),
				},
			},
		}
		svc := NewPortfolioService(holdingRepository, &mockQuoteRepository{}, &mockFxRepository{})

		snapshot, err := svc.GetSnapshot(context.Background())
		require.NoError(t, err)
		require.Len(t, snapshot.Valuations, 1)
		require.False(t, snapshot.Valuations[0].QuoteFound)
		require.Equal(t, "70", snapshot.TotalValue.String())
		require.Equal(t, "0", snapshot.TotalGain.String())
	})

	t.Run("quote feed failure degrades to cost", func(t *testing.T) {
		holdingRepository := &mockHoldingRepository{
			holdings: []domain.Holding{
				{
					HoldingID:   uuid.New(),
					Symbol:      "BNC.CR",
					Quantity:    decimal.NewFromInt(100),
					RealAvgCost: decimal.NewFromInt(10),
				},
			},
		}
		quoteRepository := &mockQuoteRepository{
			quotesErr: fmt.Errorf("upstream down"),
		}
		svc := NewPortfolioService(holdingRepository, quoteRepository, &mockFxRepository{})

		snapshot, err := svc.GetSnapshot(context.Background())
		require.NoError(t, err)
		require.Len(t, snapshot.Valuations, 1)
		require.False(t, snapshot.Valuations[0].QuoteFound)
		require.Equal(t, "1000", snapshot.TotalValue.String())
	})

	t.Run("unreadable store yields empty snapshot", func(t *testing.T) {
		holdingRepository := &mockHoldingRepository{
			listErr: fmt.Errorf("db down"),
		}
		svc := NewPortfolioService(holdingRepository, &mockQuoteRepository{}, &mockFxRepository{})

		snapshot, err := svc.GetSnapshot(context.Background())
		require.NoError(t, err)
		require.Empty(t, snapshot.Valuations)
		require.Equal(t, "0", snapshot.TotalValue.String())
	})
}

func Test_AddHolding(t *testing.T) {
	t.Run("derives real avg cost from the fee schedule", func(t *testing.T) {
		holdingRepository := &mockHoldingRepository{}
		svc := NewPortfolioService(holdingRepository, &mockQuoteRepository{}, &mockFxRepository{})

		added, err := svc.AddHolding(context.Background(), AddHoldingInput{
			Symbol:        "BNC.CR",
			Quantity:      decimal.NewFromInt(100),
			PricePerShare: decimal.NewFromInt(10),
			PurchaseDate:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		require.Equal(t, "10.59", added.RealAvgCost.String())
		require.Len(t, holdingRepository.holdings, 1)
	})

	t.Run("rejects invalid input before touching the store", func(t *testing.T) {
		holdingRepository := &mockHoldingRepository{}
		svc := NewPortfolioService(holdingRepository, &mockQuoteRepository{}, &mockFxRepository{})

		_, err := svc.AddHolding(context.Background(), AddHoldingInput{
			Symbol:        "BNC.CR",
			Quantity:      decimal.Zero,
			PricePerShare: decimal.NewFromInt(10),
			PurchaseDate:  time.Now(),
		})
		require.ErrorIs(t, err, domain.ErrInvalidLot)
		require.Empty(t, holdingRepository.holdings)
	})

	t.Run("surfaces store write failures", func(t *testing.T) {
		holdingRepository := &mockHoldingRepository{
			addErr: fmt.Errorf("disk full"),
		}
		svc := NewPortfolioService(holdingRepository, &mockQuoteRepository{}, &mockFxRepository{})

		_, err := svc.AddHolding(context.Background(), AddHoldingInput{
			Symbol:        "BNC.CR",
			Quantity:      decimal.NewFromInt(1),
			PricePerShare: decimal.NewFromInt(10),
			PurchaseDate:  time.Now(),
		})
		require.Error(t, err)
	})
}

func Test_GetHoldingDetail(t *testing.T) {
	holding := domain.Holding{
		HoldingID:    uuid.New(),
		Symbol:       "BNC.CR",
		Quantity:     decimal.NewFromInt(100),
		RealAvgCost:  decimal.NewFromFloat(10.59),
		PurchaseDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	holdingRepository := &mockHoldingRepository{holdings: []domain.Holding{holding}}
	quoteRepository := &mockQuoteRepository{
		quotes: map[string]domain.Quote{
			"BNC.CR": {Symbol: "BNC.CR", Price: decimal.NewFromInt(12)},
		},
	}
	svc := NewPortfolioService(holdingRepository, quoteRepository, &mockFxRepository{})

	detail, err := svc.GetHoldingDetail(context.Background(), holding.HoldingID)
	require.NoError(t, err)

	// decomposition reconstructs the original base price
	require.Equal(t, "10", detail.Fees.BasePricePerShare.Round(6).String())
	require.Equal(t, "1059", detail.Fees.GrandTotal.Round(6).String())
	require.True(t, detail.Valuation.QuoteFound)
	require.Equal(t, "1200", detail.Valuation.MarketValue.String())
}

func Test_GetValueHistory(t *testing.T) {
	t.Run("sums quantity weighted closes", func(t *testing.T) {
		holdingRepository := &mockHoldingRepository{
			holdings: []domain.Holding{
				{HoldingID: uuid.New(), Symbol: "BNC.CR", Quantity: decimal.NewFromInt(10), RealAvgCost: decimal.NewFromInt(1)},
				{HoldingID: uuid.New(), Symbol: "EFE.CR", Quantity: decimal.NewFromInt(5), RealAvgCost: decimal.NewFromInt(1)},
			},
		}
		quoteRepository := &mockQuoteRepository{
			series: map[string][]domain.ClosePrice{
				"BNC.CR": {
					{Symbol: "BNC.CR", Date: "2025-08-01", Close: decimal.NewFromInt(2)},
					{Symbol: "BNC.CR", Date: "2025-08-02", Close: decimal.NewFromInt(3)},
				},
				"EFE.CR": {
					{Symbol: "EFE.CR", Date: "2025-08-02", Close: decimal.NewFromInt(4)},
				},
			},
		}
		svc := NewPortfolioService(holdingRepository, quoteRepository, &mockFxRepository{})

		points, err := svc.GetValueHistory(context.Background(), 365*24*time.Hour)
		require.NoError(t, err)

		// EFE.CR has no 08-01 close, so its 08-02 value back-fills
		expected := []domain.ValuePoint{
			{Date: "2025-08-01", Value: decimal.NewFromInt(40)},
			{Date: "2025-08-02", Value: decimal.NewFromInt(50)},
		}
		diff := cmp.Diff(expected, points, cmp.Comparer(func(a, b decimal.Decimal) bool {
			return a.Equal(b)
		}))
		require.Empty(t, diff)
	})

	t.Run("aggregates lots of the same symbol", func(t *testing.T) {
		holdingRepository := &mockHoldingRepository{
			holdings: []domain.Holding{
				{HoldingID: uuid.New(), Symbol: "BNC.CR", Quantity: decimal.NewFromInt(10), RealAvgCost: decimal.NewFromInt(1)},
				{HoldingID: uuid.New(), Symbol: "BNC.CR", Quantity: decimal.NewFromInt(15), RealAvgCost: decimal.NewFromInt(2)},
			},
		}
		quoteRepository := &mockQuoteRepository{
			series: map[string][]domain.ClosePrice{
				"BNC.CR": {
					{Symbol: "BNC.CR", Date: "2025-08-01", Close: decimal.NewFromInt(2)},
				},
			},
		}
		svc := NewPortfolioService(holdingRepository, quoteRepository, &mockFxRepository{})

		points, err := svc.GetValueHistory(context.Background(), 30*24*time.Hour)
		require.NoError(t, err)
		require.Len(t, points, 1)
		require.Equal(t, "50", points[0].Value.String())
	})

	t.Run("no holdings yields empty series", func(t *testing.T) {
		svc := NewPortfolioService(&mockHoldingRepository{}, &mockQuoteRepository{}, &mockFxRepository{})

		points, err := svc.GetValueHistory(context.Background(), 30*24*time.Hour)
		require.NoError(t, err)
		require.Empty(t, points)
	})
}
