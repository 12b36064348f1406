package service

import (
	"context"
	"time"

	"swingmate/internal/entity"
	"swingmate/internal/journal/analytics"
	"swingmate/internal/journal/dto"
	"swingmate/internal/journal/repository"
	"swingmate/pkg/logger"
	"swingmate/pkg/utils"
)

// PortfolioService derives the displayed views from stored trades plus
// per-ticker quotes.
type PortfolioService interface {
	Summary(ctx context.Context, userID string) (*analytics.Snapshot, error)
	Positions(ctx context.Context, userID string, filter analytics.Filter, key analytics.SortKey, desc bool) ([]dto.PositionRow, error)
	Watchlist(ctx context.Context, userID string) (*dto.WatchlistResponse, error)
}

type portfolioService struct {
	tradeRepo repository.TradeRepository
	quotes    QuoteService
	logger    *logger.Logger
}

// NewPortfolioService creates a new portfolio service.
func NewPortfolioService(tradeRepo repository.TradeRepository, quotes QuoteService, log *logger.Logger) PortfolioService {
	return &portfolioService{
		tradeRepo: tradeRepo,
		quotes:    quotes,
		logger:    log,
	}
}

func (s *portfolioService) Summary(ctx context.Context, userID string) (*analytics.Snapshot, error) {
	trades, err := s.tradeRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	quotes := s.quotesFor(ctx, trades, true)
	snapshot := analytics.Aggregate(trades, quotes, time.Now())
	return &snapshot, nil
}

func (s *portfolioService) Positions(ctx context.Context, userID string, filter analytics.Filter, key analytics.SortKey, desc bool) ([]dto.PositionRow, error) {
	trades, err := s.tradeRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	quotes := s.quotesFor(ctx, trades, true)
	selected := analytics.Select(trades, quotes, filter, key, desc)

	rows := make([]dto.PositionRow, 0, len(selected))
	for i := range selected {
		t := &selected[i]
		q := quotes[t.Ticker]
		v := analytics.Valuate(t, q)

		row := dto.PositionRow{
			ID:           t.ID,
			Ticker:       t.Ticker,
			Quantity:     analytics.Quantity(t),
			EntryPrice:   t.EntryPrice,
			EntryDate:    utils.FormatDate(t.EntryDate),
			SellPrice:    t.SellPrice,
			CurrentPrice: v.CurrentPrice,
			Value:        v.Value,
			PL:           v.PL,
			PLPercent:    v.PLPercent,
			Status:       analytics.StatusOf(t, q),
			Notes:        t.Notes,
		}
		if t.SellDate != nil {
			formatted := utils.FormatDate(*t.SellDate)
			row.SellDate = &formatted
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Watchlist lists the distinct tickers across all of the user's trades,
// each with its quote when one is available, plus the average
// entry-relative profit percent over the priced holdings.
func (s *portfolioService) Watchlist(ctx context.Context, userID string) (*dto.WatchlistResponse, error) {
	trades, err := s.tradeRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	// The watchlist shows a live quote even for fully closed tickers.
	quotes := s.quotesFor(ctx, trades, false)

	seen := make(map[string]bool, len(trades))
	items := make([]dto.WatchlistItem, 0, len(trades))
	var profitSum float64
	var priced int

	for i := range trades {
		t := &trades[i]
		q := quotes[t.Ticker]
		if !seen[t.Ticker] {
			seen[t.Ticker] = true
			items = append(items, dto.WatchlistItem{Ticker: t.Ticker, Quote: q})
		}
		if price, ok := q.Price(); ok && t.EntryPrice > 0 {
			profitSum += (price - t.EntryPrice) / t.EntryPrice * 100
			priced++
		}
	}

	resp := &dto.WatchlistResponse{Items: items}
	if priced > 0 {
		resp.AvgProfitPercent = profitSum / float64(priced)
	}
	return resp, nil
}

// quotesFor fetches one quote per distinct ticker. With openOnly set,
// tickers held only in closed trades are skipped; their valuation is
// fixed by the sell price and never reads a quote. A failure for one
// ticker only degrades that ticker's valuation; it never aborts the
// request, so the map simply lacks an entry for it.
func (s *portfolioService) quotesFor(ctx context.Context, trades []entity.Trade, openOnly bool) map[string]*dto.Quote {
	quotes := make(map[string]*dto.Quote)
	for i := range trades {
		ticker := trades[i].Ticker
		if openOnly && analytics.Closed(&trades[i]) {
			continue
		}
		if _, done := quotes[ticker]; done {
			continue
		}
		q, err := s.quotes.Get(ctx, ticker)
		if err != nil {
			s.logger.WarnContext(ctx, "Quote unavailable, valuation degraded",
				logger.StringField("ticker", ticker), logger.ErrorField(err))
			quotes[ticker] = nil
			continue
		}
		quotes[ticker] = q
	}
	return quotes
}
