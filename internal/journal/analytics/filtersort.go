package analytics

import (
	"sort"
	"strings"

	"swingmate/internal/entity"
	"swingmate/internal/journal/dto"
	"swingmate/pkg/utils"
)

// Status values as shown in the journal table. Win and loss apply only to
// closed trades.
const (
	StatusOpen = "open"
	StatusWin  = "win"
	StatusLoss = "loss"

	// StatusClosed is accepted as a filter value only.
	StatusClosed = "closed"
)

// StatusOf returns open, win or loss for a trade.
func StatusOf(t *entity.Trade, q *dto.Quote) string {
	v := Valuate(t, q)
	if !v.Closed {
		return StatusOpen
	}
	if v.PL >= 0 {
		return StatusWin
	}
	return StatusLoss
}

// SortKey names a sortable column.
type SortKey string

const (
	SortByTicker       SortKey = "ticker"
	SortByQuantity     SortKey = "quantity"
	SortByEntryPrice   SortKey = "entryPrice"
	SortByEntryDate    SortKey = "entryDate"
	SortBySellPrice    SortKey = "sellPrice"
	SortBySellDate     SortKey = "sellDate"
	SortByCurrentPrice SortKey = "currentPrice"
	SortByValue        SortKey = "value"
	SortByPL           SortKey = "pl"
	SortByPLPercent    SortKey = "plPercent"
	SortByStatus       SortKey = "status"
)

// SortState carries the table's current ordering between requests.
type SortState struct {
	Key  SortKey
	Desc bool
}

// Toggle flips the direction when the same key is selected again and
// resets to ascending when a new key is chosen.
func (s *SortState) Toggle(key SortKey) {
	if s.Key == key {
		s.Desc = !s.Desc
		return
	}
	s.Key = key
	s.Desc = false
}

// Filter holds the active predicates. All non-empty fields are ANDed.
type Filter struct {
	// Query is matched case-insensitively against the ticker and against
	// the YYYY-MM-DD form of either date.
	Query string
	// Status is one of open, closed, win, loss (closed-win and closed-loss
	// are accepted aliases). Empty means no status filter.
	Status string
}

// Select applies the filter and returns the matching trades in a stable
// order by the given key. Trades whose key cannot be computed (no sell
// price yet, no usable quote) sort after computed ones in both directions.
func Select(trades []entity.Trade, quotes map[string]*dto.Quote, f Filter, key SortKey, desc bool) []entity.Trade {
	out := make([]entity.Trade, 0, len(trades))
	for i := range trades {
		if matches(&trades[i], quotes, f) {
			out = append(out, trades[i])
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a := sortValue(&out[i], quotes[out[i].Ticker], key)
		b := sortValue(&out[j], quotes[out[j].Ticker], key)
		if a.ok != b.ok {
			return a.ok
		}
		if !a.ok {
			return false
		}
		if a.lexical {
			if a.str == b.str {
				return false
			}
			if desc {
				return a.str > b.str
			}
			return a.str < b.str
		}
		if a.num == b.num {
			return false
		}
		if desc {
			return a.num > b.num
		}
		return a.num < b.num
	})

	return out
}

func matches(t *entity.Trade, quotes map[string]*dto.Quote, f Filter) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		hit := strings.Contains(strings.ToLower(t.Ticker), q) ||
			strings.Contains(utils.FormatDate(t.EntryDate), q) ||
			(hasSellDate(t) && strings.Contains(utils.FormatDate(*t.SellDate), q))
		if !hit {
			return false
		}
	}

	switch f.Status {
	case StatusOpen:
		return !Closed(t)
	case StatusClosed:
		return Closed(t)
	case StatusWin, "closed-win":
		v := Valuate(t, quotes[t.Ticker])
		return v.Closed && v.PL >= 0
	case StatusLoss, "closed-loss":
		v := Valuate(t, quotes[t.Ticker])
		return v.Closed && v.PL < 0
	}
	return true
}

// keyVal is a typed sort key: lexical or numeric, possibly missing.
type keyVal struct {
	num     float64
	str     string
	lexical bool
	ok      bool
}

func sortValue(t *entity.Trade, q *dto.Quote, key SortKey) keyVal {
	switch key {
	case SortByTicker:
		return keyVal{str: t.Ticker, lexical: true, ok: true}
	case SortByQuantity:
		return keyVal{num: Quantity(t), ok: true}
	case SortByEntryPrice:
		return keyVal{num: t.EntryPrice, ok: true}
	case SortByEntryDate:
		return keyVal{num: float64(t.EntryDate.Unix()), ok: true}
	case SortBySellPrice:
		if !hasSellPrice(t) {
			return keyVal{}
		}
		return keyVal{num: *t.SellPrice, ok: true}
	case SortBySellDate:
		if !hasSellDate(t) {
			return keyVal{}
		}
		return keyVal{num: float64(t.SellDate.Unix()), ok: true}
	case SortByCurrentPrice, SortByValue, SortByPL, SortByPLPercent:
		// Open trades without a usable quote have no computed price; the
		// valuator's breakeven fallback must not make them sortable.
		if !Closed(t) {
			if _, ok := q.Price(); !ok {
				return keyVal{}
			}
		}
		v := Valuate(t, q)
		switch key {
		case SortByCurrentPrice:
			return keyVal{num: v.CurrentPrice, ok: true}
		case SortByValue:
			return keyVal{num: v.Value, ok: true}
		case SortByPL:
			return keyVal{num: v.PL, ok: true}
		default:
			return keyVal{num: v.PLPercent, ok: true}
		}
	case SortByStatus:
		// open < loss < win
		switch StatusOf(t, q) {
		case StatusOpen:
			return keyVal{num: 0, ok: true}
		case StatusLoss:
			return keyVal{num: 1, ok: true}
		default:
			return keyVal{num: 2, ok: true}
		}
	}
	return keyVal{num: float64(t.EntryDate.Unix()), ok: true}
}
