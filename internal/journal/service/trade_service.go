package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"swingmate/internal/entity"
	"swingmate/internal/journal/dto"
	"swingmate/internal/journal/repository"
	"swingmate/pkg/logger"
	"swingmate/pkg/utils"
)

// ErrValidation marks a malformed or incomplete request.
var ErrValidation = errors.New("validation failed")

// TradeService manages the trade records behind the journal.
type TradeService interface {
	Create(ctx context.Context, userID string, req *dto.CreateTradeRequest) (*entity.Trade, error)
	List(ctx context.Context, userID string) ([]entity.Trade, error)
	Update(ctx context.Context, id string, req *dto.UpdateTradeRequest) (*entity.Trade, error)
	Delete(ctx context.Context, id string) error
}

type tradeService struct {
	tradeRepo repository.TradeRepository
	logger    *logger.Logger
}

// NewTradeService creates a new trade service.
func NewTradeService(tradeRepo repository.TradeRepository, log *logger.Logger) TradeService {
	return &tradeService{
		tradeRepo: tradeRepo,
		logger:    log,
	}
}

func (s *tradeService) Create(ctx context.Context, userID string, req *dto.CreateTradeRequest) (*entity.Trade, error) {
	fields, err := parseTradeFields(req.Ticker, req.Quantity, req.EntryPrice, req.EntryDate, req.SellPrice, req.SellDate)
	if err != nil {
		return nil, err
	}

	trade := &entity.Trade{
		UserID:     userID,
		Ticker:     fields.ticker,
		Quantity:   fields.quantity,
		EntryPrice: req.EntryPrice,
		EntryDate:  fields.entryDate,
		SellPrice:  req.SellPrice,
		SellDate:   fields.sellDate,
		Notes:      req.Notes,
	}
	if err := s.tradeRepo.Create(ctx, trade); err != nil {
		s.logger.Error("Failed to create trade", logger.ErrorField(err), logger.StringField("ticker", trade.Ticker))
		return nil, err
	}
	return trade, nil
}

func (s *tradeService) List(ctx context.Context, userID string) ([]entity.Trade, error) {
	return s.tradeRepo.FindAllByUser(ctx, userID)
}

func (s *tradeService) Update(ctx context.Context, id string, req *dto.UpdateTradeRequest) (*entity.Trade, error) {
	trade, err := s.tradeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := parseTradeFields(req.Ticker, req.Quantity, req.EntryPrice, req.EntryDate, req.SellPrice, req.SellDate)
	if err != nil {
		return nil, err
	}

	trade.Ticker = fields.ticker
	trade.Quantity = fields.quantity
	trade.EntryPrice = req.EntryPrice
	trade.EntryDate = fields.entryDate
	trade.SellPrice = req.SellPrice
	trade.SellDate = fields.sellDate
	trade.Notes = req.Notes

	if err := s.tradeRepo.Update(ctx, trade); err != nil {
		s.logger.Error("Failed to update trade", logger.ErrorField(err), logger.StringField("trade_id", id))
		return nil, err
	}
	return trade, nil
}

func (s *tradeService) Delete(ctx context.Context, id string) error {
	if err := s.tradeRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete trade", logger.ErrorField(err), logger.StringField("trade_id", id))
		return err
	}
	s.logger.Info("Trade deleted", logger.StringField("trade_id", id))
	return nil
}

type tradeFields struct {
	ticker    string
	quantity  float64
	entryDate time.Time
	sellDate  *time.Time
}

// parseTradeFields validates and normalizes the request fields shared by
// create and update. The sell date is optional on its own; pairing with
// the sell price is the classifier's concern, not a validation rule.
func parseTradeFields(ticker string, quantity, entryPrice float64, entryDate string, sellPrice *float64, sellDate *string) (*tradeFields, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("%w: ticker is required", ErrValidation)
	}
	if entryPrice <= 0 {
		return nil, fmt.Errorf("%w: entryPrice must be positive", ErrValidation)
	}
	if entryDate == "" {
		return nil, fmt.Errorf("%w: entryDate is required", ErrValidation)
	}
	entry, err := utils.ParseDate(entryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid entryDate: %v", ErrValidation, err)
	}
	if sellPrice != nil && *sellPrice <= 0 {
		return nil, fmt.Errorf("%w: sellPrice must be positive", ErrValidation)
	}

	var sell *time.Time
	if sellDate != nil && *sellDate != "" {
		parsed, err := utils.ParseDate(*sellDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid sellDate: %v", ErrValidation, err)
		}
		sell = &parsed
	}

	if quantity <= 0 {
		quantity = 1
	}

	return &tradeFields{
		ticker:    ticker,
		quantity:  quantity,
		entryDate: entry,
		sellDate:  sell,
	}, nil
}
