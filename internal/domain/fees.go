package domain

import "github.com/shopspring/decimal"

// FeeBreakdown itemizes one purchase settlement. Computed at entry time
// from raw trade inputs, or reconstructed at display time from the
// persisted real average cost. GrandTotal = BaseSubtotal + Commission +
// RegistrationRight + VAT; RealAvgCost = GrandTotal / quantity.
type FeeBreakdown struct {
	BasePricePerShare decimal.Decimal
	BaseSubtotal      decimal.Decimal
	Commission        decimal.Decimal
	RegistrationRight decimal.Decimal
	VAT               decimal.Decimal
	GrandTotal        decimal.Decimal
	RealAvgCost       decimal.Decimal
}
