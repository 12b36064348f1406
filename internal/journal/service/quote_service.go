package service

import (
	"context"
	"strings"

	"swingmate/internal/journal/dto"
	"swingmate/internal/journal/repository"
	"swingmate/pkg/logger"

	"github.com/patrickmn/go-cache"
)

// QuoteService serves quotes from a per-process TTL cache, going upstream
// only when the cached entry is missing or stale.
type QuoteService interface {
	Get(ctx context.Context, ticker string) (*dto.Quote, error)
}

type quoteService struct {
	provider repository.QuoteProviderRepository
	cache    *cache.Cache
	logger   *logger.Logger
}

// NewQuoteService creates a quote service on top of the given cache. The
// cache is constructed once in main with the configured TTL and injected,
// so there is no package-global state.
func NewQuoteService(provider repository.QuoteProviderRepository, c *cache.Cache, log *logger.Logger) QuoteService {
	return &quoteService{
		provider: provider,
		cache:    c,
		logger:   log,
	}
}

// Get returns the cached quote when it is still within its TTL, otherwise
// fetches from the provider. Failed fetches are never cached: a not-found
// or upstream error must not poison the slot for the full TTL window, so
// the next call retries. Concurrent callers racing an expired entry may
// each fetch once; there is no request coalescing.
func (s *quoteService) Get(ctx context.Context, ticker string) (*dto.Quote, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	if cached, ok := s.cache.Get(ticker); ok {
		s.logger.DebugContext(ctx, "Quote cache hit", logger.StringField("ticker", ticker))
		return cached.(*dto.Quote), nil
	}

	quote, err := s.provider.GetQuote(ctx, ticker)
	if err != nil {
		return nil, err
	}

	s.cache.SetDefault(ticker, quote)
	return quote, nil
}
