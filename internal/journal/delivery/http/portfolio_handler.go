package http

import (
	"net/http"

	"swingmate/internal/journal/analytics"
	"swingmate/internal/journal/dto"
	"swingmate/internal/journal/service"
	"swingmate/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PortfolioHandler handles HTTP requests for derived portfolio views.
type PortfolioHandler struct {
	portfolioService service.PortfolioService
	logger           *logger.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService service.PortfolioService, logger *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, logger: logger}
}

// RegisterRoutes registers the portfolio routes to the Echo group.
func (h *PortfolioHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/summary", h.GetSummary)
	g.GET("/positions", h.GetPositions)
}

// GetSummary returns the aggregate statistics over all trades. Missing
// quotes degrade individual valuations but never fail the request.
func (h *PortfolioHandler) GetSummary(c echo.Context) error {
	snapshot, err := h.portfolioService.Summary(c.Request().Context(), defaultUserID)
	if err != nil {
		h.logger.Error("Failed to compute portfolio summary", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to compute summary"})
	}
	return c.JSON(http.StatusOK, snapshot)
}

// GetPositions returns the filtered, sorted, valuated trade rows.
// Query params: q (free text), status (open|closed|win|loss), sort
// (column key), dir (asc|desc).
func (h *PortfolioHandler) GetPositions(c echo.Context) error {
	filter := analytics.Filter{
		Query:  c.QueryParam("q"),
		Status: c.QueryParam("status"),
	}
	key := analytics.SortKey(c.QueryParam("sort"))
	desc := c.QueryParam("dir") == "desc"
	if key == "" {
		// No explicit sort means the journal default: newest entry first.
		key = analytics.SortByEntryDate
		desc = c.QueryParam("dir") != "asc"
	}

	rows, err := h.portfolioService.Positions(c.Request().Context(), defaultUserID, filter, key, desc)
	if err != nil {
		h.logger.Error("Failed to list positions", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list positions"})
	}
	return c.JSON(http.StatusOK, rows)
}
