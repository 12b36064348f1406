package http

import (
	"errors"
	"net/http"

	"swingmate/internal/journal/dto"
	"swingmate/internal/journal/service"
	"swingmate/pkg/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// defaultUserID is the single demo user all trades belong to. There is no
// account system yet; the original MVP worked the same way.
const defaultUserID = "00000000-0000-0000-0000-000000000001"

// TradeHandler handles HTTP requests for trade records.
type TradeHandler struct {
	tradeService service.TradeService
	logger       *logger.Logger
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeService service.TradeService, logger *logger.Logger) *TradeHandler {
	return &TradeHandler{tradeService: tradeService, logger: logger}
}

// RegisterRoutes registers the trade routes to the Echo group.
func (h *TradeHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListTrades)
	g.POST("", h.CreateTrade)
	g.PUT("/:id", h.UpdateTrade)
	g.DELETE("/:id", h.DeleteTrade)
}

// ListTrades returns the user's trades, newest entry first.
func (h *TradeHandler) ListTrades(c echo.Context) error {
	trades, err := h.tradeService.List(c.Request().Context(), defaultUserID)
	if err != nil {
		h.logger.Error("Failed to list trades", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list trades"})
	}
	return c.JSON(http.StatusOK, trades)
}

// CreateTrade records a new trade.
func (h *TradeHandler) CreateTrade(c echo.Context) error {
	var req dto.CreateTradeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	trade, err := h.tradeService.Create(c.Request().Context(), defaultUserID, &req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.Error("Failed to create trade", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create trade"})
	}
	return c.JSON(http.StatusCreated, trade)
}

// UpdateTrade replaces a trade's fields. Clearing a sell field re-opens
// the trade.
func (h *TradeHandler) UpdateTrade(c echo.Context) error {
	id := c.Param("id")

	var req dto.UpdateTradeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	trade, err := h.tradeService.Update(c.Request().Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Trade not found"})
		}
		h.logger.Error("Failed to update trade", logger.ErrorField(err), logger.StringField("trade_id", id))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update trade"})
	}
	return c.JSON(http.StatusOK, trade)
}

// DeleteTrade removes a trade by ID.
func (h *TradeHandler) DeleteTrade(c echo.Context) error {
	id := c.Param("id")

	if err := h.tradeService.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Trade not found"})
		}
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete trade"})
	}
	return c.NoContent(http.StatusNoContent)
}
