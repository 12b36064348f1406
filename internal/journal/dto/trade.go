package dto

// CreateTradeRequest is the payload for recording a new trade.
// Dates are YYYY-MM-DD strings; the sell pair is optional.
type CreateTradeRequest struct {
	Ticker     string   `json:"ticker"`
	Quantity   float64  `json:"quantity"`
	EntryPrice float64  `json:"entryPrice"`
	EntryDate  string   `json:"entryDate"`
	SellPrice  *float64 `json:"sellPrice,omitempty"`
	SellDate   *string  `json:"sellDate,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

// UpdateTradeRequest is the payload for replacing a trade's fields.
// Omitting SellPrice or SellDate clears it, which re-opens the trade.
type UpdateTradeRequest struct {
	Ticker     string   `json:"ticker"`
	Quantity   float64  `json:"quantity"`
	EntryPrice float64  `json:"entryPrice"`
	EntryDate  string   `json:"entryDate"`
	SellPrice  *float64 `json:"sellPrice,omitempty"`
	SellDate   *string  `json:"sellDate,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}
