package http

import (
	"net/http"

	"swingmate/internal/journal/dto"
	"swingmate/internal/journal/service"
	"swingmate/pkg/logger"

	"github.com/labstack/echo/v4"
)

// WatchlistHandler handles HTTP requests for the watchlist view.
type WatchlistHandler struct {
	portfolioService service.PortfolioService
	logger           *logger.Logger
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(portfolioService service.PortfolioService, logger *logger.Logger) *WatchlistHandler {
	return &WatchlistHandler{portfolioService: portfolioService, logger: logger}
}

// RegisterRoutes registers the watchlist routes to the Echo group.
func (h *WatchlistHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetWatchlist)
}

// GetWatchlist returns the distinct held tickers with their quotes.
func (h *WatchlistHandler) GetWatchlist(c echo.Context) error {
	watchlist, err := h.portfolioService.Watchlist(c.Request().Context(), defaultUserID)
	if err != nil {
		h.logger.Error("Failed to build watchlist", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to build watchlist"})
	}
	return c.JSON(http.StatusOK, watchlist)
}
