package http

import (
	"errors"
	"net/http"

	"swingmate/internal/journal/dto"
	"swingmate/internal/journal/repository"
	"swingmate/internal/journal/service"
	"swingmate/pkg/logger"

	"github.com/labstack/echo/v4"
)

// QuoteHandler handles HTTP requests for market quotes.
type QuoteHandler struct {
	quoteService service.QuoteService
	logger       *logger.Logger
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quoteService service.QuoteService, logger *logger.Logger) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService, logger: logger}
}

// RegisterRoutes registers the quote routes to the Echo group.
func (h *QuoteHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetQuote)
}

// GetQuote serves the cached-or-fetched quote for a ticker.
// 400 without a ticker, 404 when the provider has no price for it, 500 on
// transport failure.
func (h *QuoteHandler) GetQuote(c echo.Context) error {
	ticker := c.QueryParam("ticker")
	if ticker == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Missing ticker"})
	}

	quote, err := h.quoteService.Get(c.Request().Context(), ticker)
	if err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Ticker not found"})
		}
		h.logger.Error("Failed to fetch quote", logger.StringField("ticker", ticker), logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch quote"})
	}

	return c.JSON(http.StatusOK, quote)
}
