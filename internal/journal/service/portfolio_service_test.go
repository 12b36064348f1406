package service

import (
	"context"
	"testing"

	"swingmate/internal/entity"
	"swingmate/internal/journal/analytics"
	"swingmate/internal/journal/dto"
	"swingmate/internal/journal/repository"
	"swingmate/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeQuotes serves quotes from a map and records how often each ticker
// was requested.
type fakeQuotes struct {
	quotes map[string]*dto.Quote
	errs   map[string]error
	calls  map[string]int
}

func newFakeQuotes() *fakeQuotes {
	return &fakeQuotes{
		quotes: map[string]*dto.Quote{},
		errs:   map[string]error{},
		calls:  map[string]int{},
	}
}

func (f *fakeQuotes) Get(_ context.Context, ticker string) (*dto.Quote, error) {
	f.calls[ticker]++
	if err, ok := f.errs[ticker]; ok {
		return nil, err
	}
	if q, ok := f.quotes[ticker]; ok {
		return q, nil
	}
	return nil, repository.ErrQuoteNotFound
}

func newPortfolioService(trades []entity.Trade, quotes *fakeQuotes) PortfolioService {
	return NewPortfolioService(&fakeTradeRepo{trades: trades}, quotes, logger.NewNop())
}

func TestWatchlistDeduplicatesTickers(t *testing.T) {
	price := 110.0
	quotes := newFakeQuotes()
	quotes.quotes["AAPL"] = &dto.Quote{Ticker: "AAPL", CurrentPrice: &price}
	quotes.errs["TSLA"] = repository.ErrQuoteUpstream

	trades := []entity.Trade{
		{Ticker: "AAPL", Quantity: 10, EntryPrice: 100, EntryDate: day("2024-01-01")},
		{Ticker: "AAPL", Quantity: 5, EntryPrice: 50, EntryDate: day("2024-02-01"), SellPrice: fp(60), SellDate: ptrDay("2024-03-01")},
		{Ticker: "TSLA", Quantity: 2, EntryPrice: 200, EntryDate: day("2024-01-01")},
	}

	resp, err := newPortfolioService(trades, quotes).Watchlist(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, "AAPL", resp.Items[0].Ticker)
	require.NotNil(t, resp.Items[0].Quote)
	assert.Equal(t, "TSLA", resp.Items[1].Ticker)
	assert.Nil(t, resp.Items[1].Quote)

	// Both AAPL holdings are priced: +10% on entry 100 and +120% on
	// entry 50. The unquoted TSLA holding does not dilute the average.
	assert.InDelta(t, 65, resp.AvgProfitPercent, 1e-9)

	assert.Equal(t, 1, quotes.calls["AAPL"])
}

func TestWatchlistNoPricedHoldings(t *testing.T) {
	quotes := newFakeQuotes()
	quotes.errs["AAPL"] = repository.ErrQuoteUpstream

	trades := []entity.Trade{
		{Ticker: "AAPL", Quantity: 10, EntryPrice: 100, EntryDate: day("2024-01-01")},
	}

	resp, err := newPortfolioService(trades, quotes).Watchlist(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Zero(t, resp.AvgProfitPercent)
}

// A failed quote degrades that ticker's valuation to breakeven but the
// summary request still succeeds with the rest intact.
func TestSummaryDegradesOnQuoteFailure(t *testing.T) {
	price := 110.0
	quotes := newFakeQuotes()
	quotes.quotes["AAPL"] = &dto.Quote{Ticker: "AAPL", CurrentPrice: &price}
	quotes.errs["NOPE"] = repository.ErrQuoteUpstream

	trades := []entity.Trade{
		{Ticker: "AAPL", Quantity: 10, EntryPrice: 100, EntryDate: day("2024-01-01")},
		{Ticker: "NOPE", Quantity: 2, EntryPrice: 40, EntryDate: day("2024-01-01")},
	}

	snapshot, err := newPortfolioService(trades, quotes).Summary(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 2, snapshot.OpenCount)
	assert.InDelta(t, 100, snapshot.TotalOpenPL, 1e-9)
	assert.InDelta(t, 1180, snapshot.OpenValue, 1e-9)
}

// Closed trades are valued at their sell price, so tickers with no open
// position must not hit the quote provider.
func TestSummarySkipsQuotesForClosedTickers(t *testing.T) {
	price := 110.0
	quotes := newFakeQuotes()
	quotes.quotes["AAPL"] = &dto.Quote{Ticker: "AAPL", CurrentPrice: &price}

	trades := []entity.Trade{
		{Ticker: "AAPL", Quantity: 10, EntryPrice: 100, EntryDate: day("2024-01-01")},
		{Ticker: "TSLA", Quantity: 5, EntryPrice: 200, EntryDate: day("2024-01-01"), SellPrice: fp(180), SellDate: ptrDay("2024-02-01")},
	}
	svc := newPortfolioService(trades, quotes)

	_, err := svc.Summary(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, quotes.calls["AAPL"])
	assert.Zero(t, quotes.calls["TSLA"])

	_, err = svc.Positions(context.Background(), "user-1", analytics.Filter{}, analytics.SortByEntryDate, true)
	require.NoError(t, err)
	assert.Zero(t, quotes.calls["TSLA"])
}

func TestPositionsRowsCarryValuation(t *testing.T) {
	price := 110.0
	quotes := newFakeQuotes()
	quotes.quotes["AAPL"] = &dto.Quote{Ticker: "AAPL", CurrentPrice: &price}

	trades := []entity.Trade{
		{ID: "t1", Ticker: "AAPL", Quantity: 10, EntryPrice: 100, EntryDate: day("2024-01-01")},
		{ID: "t2", Ticker: "TSLA", Quantity: 5, EntryPrice: 200, EntryDate: day("2024-02-01"), SellPrice: fp(180), SellDate: ptrDay("2024-03-01")},
	}

	rows, err := newPortfolioService(trades, quotes).Positions(context.Background(), "user-1", analytics.Filter{}, analytics.SortByEntryDate, true)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "t2", rows[0].ID)
	assert.Equal(t, "loss", rows[0].Status)
	assert.InDelta(t, 180, rows[0].CurrentPrice, 1e-9)
	require.NotNil(t, rows[0].SellDate)
	assert.Equal(t, "2024-03-01", *rows[0].SellDate)

	assert.Equal(t, "t1", rows[1].ID)
	assert.Equal(t, "open", rows[1].Status)
	assert.InDelta(t, 1100, rows[1].Value, 1e-9)
	assert.InDelta(t, 10, rows[1].PLPercent, 1e-9)
}
