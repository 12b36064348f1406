package service

import (
	"context"
	"time"

	"swingmate/internal/journal/repository"
	"swingmate/pkg/logger"

	"github.com/robfig/cron/v3"
)

// QuoteRefresher periodically warms the quote cache for every held ticker
// so the journal views rarely pay the upstream latency. It only calls
// QuoteService.Get; staleness and caching policy stay in one place.
type QuoteRefresher struct {
	cron      *cron.Cron
	tradeRepo repository.TradeRepository
	quotes    QuoteService
	logger    *logger.Logger
}

// NewQuoteRefresher schedules a warm-up pass with the given cron spec.
func NewQuoteRefresher(schedule string, tradeRepo repository.TradeRepository, quotes QuoteService, log *logger.Logger) (*QuoteRefresher, error) {
	r := &QuoteRefresher{
		cron:      cron.New(),
		tradeRepo: tradeRepo,
		quotes:    quotes,
		logger:    log,
	}
	if _, err := r.cron.AddFunc(schedule, r.refresh); err != nil {
		return nil, err
	}
	return r, nil
}

// Start begins running the scheduled passes.
func (r *QuoteRefresher) Start() {
	r.cron.Start()
}

// Stop halts scheduling and waits for a running pass to finish.
func (r *QuoteRefresher) Stop() {
	<-r.cron.Stop().Done()
}

func (r *QuoteRefresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	tickers, err := r.tradeRepo.DistinctTickers(ctx)
	if err != nil {
		r.logger.Error("Quote warm-up failed to list tickers", logger.ErrorField(err))
		return
	}

	var refreshed int
	for _, ticker := range tickers {
		if _, err := r.quotes.Get(ctx, ticker); err != nil {
			r.logger.WarnContext(ctx, "Quote warm-up fetch failed",
				logger.StringField("ticker", ticker), logger.ErrorField(err))
			continue
		}
		refreshed++
	}
	r.logger.Debug("Quote warm-up pass finished",
		logger.IntField("tickers", len(tickers)), logger.IntField("refreshed", refreshed))
}
