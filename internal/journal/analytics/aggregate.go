package analytics

import (
	"time"

	"swingmate/internal/entity"
	"swingmate/internal/journal/dto"
	"swingmate/pkg/utils"
)

// Snapshot holds the portfolio-level statistics derived from the current
// trades and quotes. It is recomputed on every request and never stored.
//
// The avg* percent fields are means of per-trade ratios; the total*Percent
// fields are ratios of sums. The two disagree whenever position sizes
// differ and both are reported.
type Snapshot struct {
	OpenCount   int `json:"openCount"`
	ClosedCount int `json:"closedCount"`
	TotalCount  int `json:"totalCount"`
	WinCount    int `json:"winCount"`
	LossCount   int `json:"lossCount"`

	WinRate       float64 `json:"winRate"`
	AvgEntryPrice float64 `json:"avgEntryPrice"`

	OpenValue   float64 `json:"openValue"`
	ClosedValue float64 `json:"closedValue"`

	TotalOpenPL          float64 `json:"totalOpenPL"`
	TotalOpenPLPercent   float64 `json:"totalOpenPLPercent"`
	TotalClosedPL        float64 `json:"totalClosedPL"`
	TotalClosedPLPercent float64 `json:"totalClosedPLPercent"`

	AvgPLOpen          float64 `json:"avgPLOpen"`
	AvgPLOpenPercent   float64 `json:"avgPLOpenPercent"`
	AvgPLClosed        float64 `json:"avgPLClosed"`
	AvgPLClosedPercent float64 `json:"avgPLClosedPercent"`

	AvgHoldDays float64 `json:"avgHoldDays"`
	AvgOpenDays float64 `json:"avgOpenDays"`

	BestTrade           *entity.Trade `json:"bestTrade,omitempty"`
	WorstTrade          *entity.Trade `json:"worstTrade,omitempty"`
	LargestOpenPosition *entity.Trade `json:"largestOpenPosition,omitempty"`
	LargestOpenValue    float64       `json:"largestOpenValue"`
}

// Aggregate partitions the trades into open and closed and computes every
// Snapshot field. Trades missing a quote degrade per Valuate; they never
// abort the computation. Every division guards its denominator and yields
// 0 for empty groups. Best/worst/largest ties keep the first occurrence
// in input order.
func Aggregate(trades []entity.Trade, quotes map[string]*dto.Quote, now time.Time) Snapshot {
	var s Snapshot
	s.TotalCount = len(trades)

	var (
		entrySum     float64
		openCost     float64
		closedCost   float64
		openPctSum   float64
		closedPctSum float64
		holdDaysSum  float64
		openDaysSum  float64
		bestPL       float64
		worstPL      float64
		largestValue float64
	)

	for i := range trades {
		t := &trades[i]
		entrySum += t.EntryPrice

		v := Valuate(t, quotes[t.Ticker])
		cost := t.EntryPrice * Quantity(t)

		if v.Closed {
			s.ClosedCount++
			s.ClosedValue += v.Value
			s.TotalClosedPL += v.PL
			closedCost += cost
			closedPctSum += v.PLPercent
			holdDaysSum += utils.DaysBetween(t.EntryDate, *t.SellDate)

			if v.PL >= 0 {
				s.WinCount++
			} else {
				s.LossCount++
			}
			if s.BestTrade == nil || v.PL > bestPL {
				s.BestTrade = t
				bestPL = v.PL
			}
			if s.WorstTrade == nil || v.PL < worstPL {
				s.WorstTrade = t
				worstPL = v.PL
			}
		} else {
			s.OpenCount++
			s.OpenValue += v.Value
			s.TotalOpenPL += v.PL
			openCost += cost
			openPctSum += v.PLPercent
			openDaysSum += utils.DaysBetween(t.EntryDate, now)

			if s.LargestOpenPosition == nil || v.Value > largestValue {
				s.LargestOpenPosition = t
				largestValue = v.Value
			}
		}
	}

	s.LargestOpenValue = largestValue
	if s.TotalCount > 0 {
		s.AvgEntryPrice = entrySum / float64(s.TotalCount)
	}
	if s.ClosedCount > 0 {
		s.WinRate = float64(s.WinCount) / float64(s.ClosedCount) * 100
		s.AvgPLClosed = s.TotalClosedPL / float64(s.ClosedCount)
		s.AvgPLClosedPercent = closedPctSum / float64(s.ClosedCount)
		s.AvgHoldDays = holdDaysSum / float64(s.ClosedCount)
	}
	if s.OpenCount > 0 {
		s.AvgPLOpen = s.TotalOpenPL / float64(s.OpenCount)
		s.AvgPLOpenPercent = openPctSum / float64(s.OpenCount)
		s.AvgOpenDays = openDaysSum / float64(s.OpenCount)
	}
	if openCost > 0 {
		s.TotalOpenPLPercent = s.TotalOpenPL / openCost * 100
	}
	if closedCost > 0 {
		s.TotalClosedPLPercent = s.TotalClosedPL / closedCost * 100
	}

	return s
}
