package calculator

import (
	"bvcfolio/internal/domain"
	"fmt"

	"github.com/shopspring/decimal"
)

// Documented BVC trade fee defaults: brokerage commission on the gross
// amount, registration right on the gross amount, VAT on the commission
// only.
var (
	DefaultCommissionPct   = decimal.NewFromFloat(5.00)
	DefaultRegistrationPct = decimal.NewFromFloat(0.10)
	DefaultVATPct          = decimal.NewFromFloat(16.0)
)

var hundred = decimal.NewFromInt(100)

type ComposeFeesInput struct {
	Quantity        decimal.Decimal
	MarketPrice     decimal.Decimal
	CommissionPct   decimal.Decimal
	RegistrationPct decimal.Decimal
	VATPct          decimal.Decimal
}

func validPct(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(hundred)
}

// ComposeFees computes the settlement breakdown for a purchase. The
// resulting RealAvgCost is the only figure the store persists; the rest
// of the breakdown exists for the entry-time preview.
func ComposeFees(in ComposeFeesInput) (*domain.FeeBreakdown, error) {
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive, got %s", domain.ErrInvalidLot, in.Quantity)
	}
	if in.MarketPrice.IsNegative() {
		return nil, fmt.Errorf("%w: market price must not be negative, got %s", domain.ErrInvalidLot, in.MarketPrice)
	}
	for _, pct := range []decimal.Decimal{in.CommissionPct, in.RegistrationPct, in.VATPct} {
		if !validPct(pct) {
			return nil, fmt.Errorf("%w: fee percentage out of range [0, 100]: %s", domain.ErrInvalidLot, pct)
		}
	}

	base := in.Quantity.Mul(in.MarketPrice)
	commission := base.Mul(in.CommissionPct).Div(hundred)
	registration := base.Mul(in.RegistrationPct).Div(hundred)
	vat := commission.Mul(in.VATPct).Div(hundred)
	grandTotal := base.Add(commission).Add(registration).Add(vat)

	return &domain.FeeBreakdown{
		BasePricePerShare: in.MarketPrice,
		BaseSubtotal:      base,
		Commission:        commission,
		RegistrationRight: registration,
		VAT:               vat,
		GrandTotal:        grandTotal,
		RealAvgCost:       grandTotal.Div(in.Quantity),
	}, nil
}

// Fixed rate assumptions for reconstructing a breakdown from the
// persisted real average cost. These are intentionally independent from
// whatever percentages were used at entry time, so the reconstruction is
// an estimate unless the entry used the same rates.
var (
	decomposeCommissionRate   = decimal.NewFromFloat(0.05)
	decomposeRegistrationRate = decimal.NewFromFloat(0.001)
	decomposeVATRate          = decimal.NewFromFloat(0.16)
)

// DecomposeFees reverse-engineers an approximate settlement breakdown
// given only the two persisted figures. totalPaid / (1 + c + r + c*v)
// recovers the estimated gross amount; the fee lines are re-derived from
// it.
func DecomposeFees(realAvgCost, quantity decimal.Decimal) (*domain.FeeBreakdown, error) {
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive, got %s", domain.ErrInvalidLot, quantity)
	}
	if realAvgCost.IsNegative() {
		return nil, fmt.Errorf("%w: real average cost must not be negative, got %s", domain.ErrInvalidLot, realAvgCost)
	}

	totalPaid := realAvgCost.Mul(quantity)
	// 1.059 under the fixed rates above
	factor := decimal.NewFromInt(1).
		Add(decomposeCommissionRate).
		Add(decomposeRegistrationRate).
		Add(decomposeCommissionRate.Mul(decomposeVATRate))

	baseTotal := totalPaid.Div(factor)
	commission := baseTotal.Mul(decomposeCommissionRate)
	registration := baseTotal.Mul(decomposeRegistrationRate)
	vat := commission.Mul(decomposeVATRate)

	return &domain.FeeBreakdown{
		BasePricePerShare: baseTotal.Div(quantity),
		BaseSubtotal:      baseTotal,
		Commission:        commission,
		RegistrationRight: registration,
		VAT:               vat,
		GrandTotal:        totalPaid,
		RealAvgCost:       realAvgCost,
	}, nil
}
