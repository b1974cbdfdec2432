package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidLot is returned when a holding fails validation before it
// reaches the store.
var ErrInvalidLot = errors.New("invalid lot input")

// Holding is one purchased position. RealAvgCost is the fully-loaded
// per-share cost including commission, registration right and VAT - it is
// the only cost figure persisted. The store owns HoldingID and CreatedAt.
type Holding struct {
	HoldingID    uuid.UUID
	Symbol       string
	Quantity     decimal.Decimal
	RealAvgCost  decimal.Decimal
	PurchaseDate time.Time
	CreatedAt    time.Time
}

func (h Holding) Validate() error {
	if strings.TrimSpace(h.Symbol) == "" {
		return fmt.Errorf("%w: missing symbol", ErrInvalidLot)
	}
	if !h.Quantity.IsPositive() {
		return fmt.Errorf("%w: quantity must be positive, got %s", ErrInvalidLot, h.Quantity)
	}
	if h.RealAvgCost.IsNegative() {
		return fmt.Errorf("%w: real average cost must not be negative, got %s", ErrInvalidLot, h.RealAvgCost)
	}
	return nil
}

func (h Holding) CostBasis() decimal.Decimal {
	return h.RealAvgCost.Mul(h.Quantity)
}

// DisplaySymbol strips the Caracas exchange suffix for presentation.
func (h Holding) DisplaySymbol() string {
	return strings.TrimSuffix(h.Symbol, ".CR")
}
