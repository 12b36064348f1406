package dto

// PositionRow is one valuated trade as rendered in the journal table.
type PositionRow struct {
	ID           string   `json:"id"`
	Ticker       string   `json:"ticker"`
	Quantity     float64  `json:"quantity"`
	EntryPrice   float64  `json:"entryPrice"`
	EntryDate    string   `json:"entryDate"`
	SellPrice    *float64 `json:"sellPrice,omitempty"`
	SellDate     *string  `json:"sellDate,omitempty"`
	CurrentPrice float64  `json:"currentPrice"`
	Value        float64  `json:"value"`
	PL           float64  `json:"pl"`
	PLPercent    float64  `json:"plPercent"`
	Status       string   `json:"status"`
	Notes        string   `json:"notes,omitempty"`
}

// WatchlistItem is one distinct held ticker with its latest quote, when
// the provider had one.
type WatchlistItem struct {
	Ticker string `json:"ticker"`
	Quote  *Quote `json:"quote,omitempty"`
}

// WatchlistResponse lists the distinct tickers across all holdings plus
// the average entry-relative profit percent over the priced ones.
type WatchlistResponse struct {
	Items            []WatchlistItem `json:"items"`
	AvgProfitPercent float64         `json:"avgProfitPercent"`
}
