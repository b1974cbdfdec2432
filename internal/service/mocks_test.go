package service

import (
	"context"
	"time"

	"bvcfolio/internal/domain"
	"bvcfolio/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type mockHoldingRepository struct {
	holdings []domain.Holding
	listErr  error
	addErr   error

	updated *domain.Holding
	deleted []uuid.UUID
}

func (m *mockHoldingRepository) Add(in domain.Holding) (*domain.Holding, error) {
	if m.addErr != nil {
		return nil, m.addErr
	}
	in.HoldingID = uuid.New()
	in.CreatedAt = time.Now().UTC()
	m.holdings = append([]domain.Holding{in}, m.holdings...)
	return &in, nil
}

func (m *mockHoldingRepository) Get(id uuid.UUID) (*domain.Holding, error) {
	for _, h := range m.holdings {
		if h.HoldingID == id {
			return &h, nil
		}
	}
	return nil, repository.ErrHoldingNotFound
}

func (m *mockHoldingRepository) List() ([]domain.Holding, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.holdings, nil
}

func (m *mockHoldingRepository) Update(in domain.Holding) error {
	m.updated = &in
	return nil
}

func (m *mockHoldingRepository) Delete(id uuid.UUID) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type mockQuoteRepository struct {
	quotes    map[string]domain.Quote
	quotesErr error

	closes    map[string]decimal.Decimal
	closesErr error

	series    map[string][]domain.ClosePrice
	seriesErr error
}

func (m *mockQuoteRepository) GetQuotes(ctx context.Context, symbols []string) (map[string]domain.Quote, error) {
	if m.quotesErr != nil {
		return nil, m.quotesErr
	}
	out := map[string]domain.Quote{}
	for _, symbol := range symbols {
		if q, ok := m.quotes[symbol]; ok {
			out[symbol] = q
		}
	}
	return out, nil
}

func (m *mockQuoteRepository) GetHistoricalClose(ctx context.Context, symbol string, date time.Time) (decimal.Decimal, bool, error) {
	if m.closesErr != nil {
		return decimal.Zero, false, m.closesErr
	}
	close, ok := m.closes[symbol+":"+date.Format(time.DateOnly)]
	return close, ok, nil
}

func (m *mockQuoteRepository) GetDailyCloses(ctx context.Context, symbol string, start, end time.Time) ([]domain.ClosePrice, error) {
	if m.seriesErr != nil {
		return nil, m.seriesErr
	}
	return m.series[symbol], nil
}

type mockFxRepository struct {
	official    decimal.Decimal
	parallel    decimal.Decimal
	hasParallel bool
}

func (m *mockFxRepository) OfficialUsdRate(ctx context.Context) decimal.Decimal {
	if m.official.IsZero() {
		return decimal.NewFromInt(1)
	}
	return m.official
}

func (m *mockFxRepository) ParallelUsdRate(ctx context.Context) (decimal.Decimal, bool) {
	return m.parallel, m.hasParallel
}
