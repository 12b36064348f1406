package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"swingmate/internal/journal/config"
	"swingmate/internal/journal/dto"
	"swingmate/pkg/logger"

	"golang.org/x/time/rate"
)

var (
	// ErrQuoteNotFound means the provider answered but had no usable price
	// for the ticker.
	ErrQuoteNotFound = errors.New("quote not found")
	// ErrQuoteUpstream means the provider could not be reached or answered
	// with a transport-level failure.
	ErrQuoteUpstream = errors.New("quote provider unavailable")
)

// QuoteProviderRepository fetches a normalized quote for a ticker from the
// upstream market-data provider.
type QuoteProviderRepository interface {
	GetQuote(ctx context.Context, ticker string) (*dto.Quote, error)
}

type finnhubRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewFinnhubRepository creates a Finnhub-backed quote provider with a
// client-side request limiter.
func NewFinnhubRepository(cfg *config.Config, log *logger.Logger) QuoteProviderRepository {
	maxPerMinute := cfg.Finnhub.MaxRequestPerMinute
	if maxPerMinute <= 0 {
		maxPerMinute = 60
	}
	secondsPerRequest := time.Minute / time.Duration(maxPerMinute)
	return &finnhubRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

// finnhubQuoteResponse is the raw /quote payload. C is a pointer so an
// error body without a price field is distinguishable from a real zero.
type finnhubQuoteResponse struct {
	C  *float64 `json:"c"`
	O  float64  `json:"o"`
	H  float64  `json:"h"`
	L  float64  `json:"l"`
	PC float64  `json:"pc"`
	T  int64    `json:"t"`
}

func (r *finnhubRepository) GetQuote(ctx context.Context, ticker string) (*dto.Quote, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuoteUpstream, err)
	}

	endpoint := fmt.Sprintf("%s/quote?symbol=%s&token=%s",
		r.cfg.Finnhub.BaseURL, url.QueryEscape(ticker), r.cfg.Finnhub.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuoteUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to reach quote provider",
			logger.StringField("ticker", ticker), logger.ErrorField(err))
		return nil, fmt.Errorf("%w: %v", ErrQuoteUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.ErrorContext(ctx, "Non-OK response from quote provider",
			logger.StringField("ticker", ticker), logger.IntField("status_code", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrQuoteUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuoteUpstream, err)
	}

	var raw finnhubQuoteResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuoteUpstream, err)
	}

	// Finnhub answers unknown symbols with an all-zero payload rather than
	// an error status.
	if raw.C == nil || (*raw.C == 0 && raw.PC == 0 && raw.T == 0) {
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, ticker)
	}

	return r.normalize(ticker, &raw), nil
}

// normalize maps the raw provider payload to the served quote shape.
// Finnhub does not report change or change percent on this endpoint, so
// both derive from the current and previous close.
func (r *finnhubRepository) normalize(ticker string, raw *finnhubQuoteResponse) *dto.Quote {
	current := *raw.C
	q := &dto.Quote{
		Ticker:        ticker,
		ShortName:     ticker,
		CurrentPrice:  &current,
		Currency:      "USD",
		Open:          raw.O,
		High:          raw.H,
		Low:           raw.L,
		PreviousClose: raw.PC,
		Change:        current - raw.PC,
	}
	if raw.PC != 0 {
		q.ChangePercent = fmt.Sprintf("%.2f%%", (current-raw.PC)/raw.PC*100)
	}
	return q
}
