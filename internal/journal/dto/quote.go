package dto

// Quote is the normalized market snapshot served to clients. The JSON
// field names follow the shape the frontend already consumes.
// CurrentPrice is nil when the provider had no usable price.
type Quote struct {
	Ticker        string   `json:"symbol"`
	ShortName     string   `json:"shortName,omitempty"`
	CurrentPrice  *float64 `json:"regularMarketPrice,omitempty"`
	Currency      string   `json:"currency,omitempty"`
	Open          float64  `json:"open"`
	High          float64  `json:"high"`
	Low           float64  `json:"low"`
	PreviousClose float64  `json:"previousClose"`
	Change        float64  `json:"change"`
	ChangePercent string   `json:"changePercent,omitempty"`
}

// Price returns the usable current price, if any.
func (q *Quote) Price() (float64, bool) {
	if q == nil || q.CurrentPrice == nil {
		return 0, false
	}
	return *q.CurrentPrice, true
}
