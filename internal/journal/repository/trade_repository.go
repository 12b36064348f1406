package repository

import (
	"context"

	"swingmate/internal/entity"

	"gorm.io/gorm"
)

// TradeRepository persists trades.
type TradeRepository interface {
	Create(ctx context.Context, trade *entity.Trade) error
	FindByID(ctx context.Context, id string) (*entity.Trade, error)
	FindAllByUser(ctx context.Context, userID string) ([]entity.Trade, error)
	Update(ctx context.Context, trade *entity.Trade) error
	Delete(ctx context.Context, id string) error
	DistinctTickers(ctx context.Context) ([]string, error)
}

type tradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a gorm-backed trade repository.
func NewTradeRepository(db *gorm.DB) TradeRepository {
	return &tradeRepository{db: db}
}

func (r *tradeRepository) Create(ctx context.Context, trade *entity.Trade) error {
	return r.db.WithContext(ctx).Create(trade).Error
}

func (r *tradeRepository) FindByID(ctx context.Context, id string) (*entity.Trade, error) {
	var trade entity.Trade
	if err := r.db.WithContext(ctx).First(&trade, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &trade, nil
}

// FindAllByUser returns the user's trades newest entry first, matching the
// journal's default ordering.
func (r *tradeRepository) FindAllByUser(ctx context.Context, userID string) ([]entity.Trade, error) {
	var trades []entity.Trade
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("entry_date DESC").
		Find(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}

// Update replaces the whole row. Save (not Updates) is required so that a
// cleared sell price or sell date actually writes NULL and re-opens the
// trade.
func (r *tradeRepository) Update(ctx context.Context, trade *entity.Trade) error {
	return r.db.WithContext(ctx).Save(trade).Error
}

func (r *tradeRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&entity.Trade{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *tradeRepository) DistinctTickers(ctx context.Context) ([]string, error) {
	var tickers []string
	if err := r.db.WithContext(ctx).
		Model(&entity.Trade{}).
		Distinct("ticker").
		Order("ticker").
		Pluck("ticker", &tickers).Error; err != nil {
		return nil, err
	}
	return tickers, nil
}
