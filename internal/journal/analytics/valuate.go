package analytics

import (
	"swingmate/internal/entity"
	"swingmate/internal/journal/dto"
)

// Quantity returns the effective share count. Zero or negative counts as 1.
func Quantity(t *entity.Trade) float64 {
	if t.Quantity > 0 {
		return t.Quantity
	}
	return 1
}

// Valuation is the priced view of a single trade.
type Valuation struct {
	Closed       bool    `json:"closed"`
	CurrentPrice float64 `json:"currentPrice"`
	Value        float64 `json:"value"`
	PL           float64 `json:"pl"`
	PLPercent    float64 `json:"plPercent"`
}

// Valuate prices a trade against its quote. Closed trades use the realized
// sell price. Open trades use the quote's current price when the provider
// had one; without a usable quote the entry price stands in, so the row
// reads as breakeven rather than unknown.
//
// PLPercent is 0 when the entry price is 0; no division here can produce
// NaN or Inf.
func Valuate(t *entity.Trade, q *dto.Quote) Valuation {
	closed := Closed(t)

	current := t.EntryPrice
	if closed {
		current = *t.SellPrice
	} else if price, ok := q.Price(); ok {
		current = price
	}

	qty := Quantity(t)
	v := Valuation{
		Closed:       closed,
		CurrentPrice: current,
		Value:        current * qty,
		PL:           (current - t.EntryPrice) * qty,
	}
	if t.EntryPrice > 0 {
		v.PLPercent = (current - t.EntryPrice) / t.EntryPrice * 100
	}
	return v
}
