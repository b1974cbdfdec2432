package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Quote is ephemeral market data for one symbol. It is never persisted
// and has no identity beyond the render cycle that fetched it.
type Quote struct {
	Symbol        string
	Name          string
	Price         decimal.Decimal
	PreviousClose decimal.Decimal
	Open          decimal.Decimal
	DayHigh       decimal.Decimal
	DayLow        decimal.Decimal
	Volume        int64
	Change        decimal.Decimal
	ChangePercent float64
}

// DeriveChange fills Change and ChangePercent from the raw provider
// fields. Previous close falls back through open and finally the current
// price, so a symbol with no usable previous close reports zero change
// rather than NaN.
func (q *Quote) DeriveChange() {
	prevClose := q.PreviousClose
	if prevClose.IsZero() {
		prevClose = q.Open
	}
	if prevClose.IsZero() {
		prevClose = q.Price
	}
	q.PreviousClose = prevClose

	if prevClose.IsZero() {
		q.Change = decimal.Zero
		q.ChangePercent = 0
		return
	}
	q.Change = q.Price.Sub(prevClose)
	q.ChangePercent = q.Change.Div(prevClose).InexactFloat64() * 100
}

func (q Quote) DisplaySymbol() string {
	return strings.TrimSuffix(q.Symbol, ".CR")
}

// ClosePrice is one daily close for a symbol, used for historical cost
// lookups and portfolio value history.
type ClosePrice struct {
	Symbol string
	Date   string // calendar day, 2006-01-02
	Close  decimal.Decimal
}
