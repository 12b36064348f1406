package analytics

import (
	"swingmate/internal/entity"
)

// hasSellPrice and hasSellDate are the single "present" predicates for the
// optional exit fields. Every classification, valuation and sort decision
// goes through them so the open/closed rule cannot drift between call sites.
func hasSellPrice(t *entity.Trade) bool {
	return t.SellPrice != nil
}

func hasSellDate(t *entity.Trade) bool {
	return t.SellDate != nil && !t.SellDate.IsZero()
}

// Closed reports whether a trade has a complete exit: both sell price and
// sell date. A trade carrying only one of the two is still open, and
// clearing either field re-opens a previously closed trade.
func Closed(t *entity.Trade) bool {
	return hasSellPrice(t) && hasSellDate(t)
}
