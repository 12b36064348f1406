package service

import (
	"context"
	"testing"
	"time"

	"swingmate/internal/entity"
	"swingmate/internal/journal/dto"
	"swingmate/pkg/logger"
	"swingmate/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTradeRepo struct {
	trades  []entity.Trade
	created []*entity.Trade
	updated []*entity.Trade
	deleted []string
}

func (f *fakeTradeRepo) Create(_ context.Context, trade *entity.Trade) error {
	f.created = append(f.created, trade)
	return nil
}

func (f *fakeTradeRepo) FindByID(_ context.Context, id string) (*entity.Trade, error) {
	for i := range f.trades {
		if f.trades[i].ID == id {
			t := f.trades[i]
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTradeRepo) FindAllByUser(_ context.Context, _ string) ([]entity.Trade, error) {
	return f.trades, nil
}

func (f *fakeTradeRepo) Update(_ context.Context, trade *entity.Trade) error {
	f.updated = append(f.updated, trade)
	return nil
}

func (f *fakeTradeRepo) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeTradeRepo) DistinctTickers(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, t := range f.trades {
		if !seen[t.Ticker] {
			seen[t.Ticker] = true
			out = append(out, t.Ticker)
		}
	}
	return out, nil
}

func fp(v float64) *float64 { return &v }

func sp(v string) *string { return &v }

func day(value string) time.Time {
	d, err := utils.ParseDate(value)
	if err != nil {
		panic(err)
	}
	return d
}

func ptrDay(value string) *time.Time {
	d := day(value)
	return &d
}

func TestTradeServiceCreateValidation(t *testing.T) {
	valid := dto.CreateTradeRequest{
		Ticker:     "AAPL",
		Quantity:   10,
		EntryPrice: 100,
		EntryDate:  "2024-01-15",
	}

	tests := []struct {
		name    string
		mutate  func(r *dto.CreateTradeRequest)
		wantErr bool
	}{
		{"valid open trade", func(r *dto.CreateTradeRequest) {}, false},
		{"valid closed trade", func(r *dto.CreateTradeRequest) {
			r.SellPrice = fp(120)
			r.SellDate = sp("2024-02-15")
		}, false},
		{"missing ticker", func(r *dto.CreateTradeRequest) { r.Ticker = "" }, true},
		{"blank ticker", func(r *dto.CreateTradeRequest) { r.Ticker = "   " }, true},
		{"zero entry price", func(r *dto.CreateTradeRequest) { r.EntryPrice = 0 }, true},
		{"negative entry price", func(r *dto.CreateTradeRequest) { r.EntryPrice = -5 }, true},
		{"missing entry date", func(r *dto.CreateTradeRequest) { r.EntryDate = "" }, true},
		{"malformed entry date", func(r *dto.CreateTradeRequest) { r.EntryDate = "15/01/2024" }, true},
		{"zero sell price", func(r *dto.CreateTradeRequest) { r.SellPrice = fp(0) }, true},
		{"negative sell price", func(r *dto.CreateTradeRequest) { r.SellPrice = fp(-1) }, true},
		{"malformed sell date", func(r *dto.CreateTradeRequest) { r.SellDate = sp("soon") }, true},
		{"sell date alone is allowed", func(r *dto.CreateTradeRequest) { r.SellDate = sp("2024-02-15") }, false},
		{"sell price alone is allowed", func(r *dto.CreateTradeRequest) { r.SellPrice = fp(120) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeTradeRepo{}
			svc := NewTradeService(repo, logger.NewNop())

			req := valid
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), "user-1", &req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				assert.Empty(t, repo.created)
				return
			}
			require.NoError(t, err)
			require.Len(t, repo.created, 1)
		})
	}
}

func TestTradeServiceCreateNormalizesTicker(t *testing.T) {
	repo := &fakeTradeRepo{}
	svc := NewTradeService(repo, logger.NewNop())

	trade, err := svc.Create(context.Background(), "user-1", &dto.CreateTradeRequest{
		Ticker:     "  aapl ",
		Quantity:   10,
		EntryPrice: 100,
		EntryDate:  "2024-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, "AAPL", trade.Ticker)
}

// Non-positive quantities are floored to 1 at write time so stored rows
// agree with the valuation rules.
func TestTradeServiceCreateQuantityFloor(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 1},
		{"negative", -5, 1},
		{"positive kept", 3, 3},
		{"fractional kept", 0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeTradeRepo{}
			svc := NewTradeService(repo, logger.NewNop())

			trade, err := svc.Create(context.Background(), "user-1", &dto.CreateTradeRequest{
				Ticker:     "AAPL",
				Quantity:   tt.in,
				EntryPrice: 100,
				EntryDate:  "2024-01-15",
			})
			require.NoError(t, err)
			assert.InDelta(t, tt.want, trade.Quantity, 1e-9)
		})
	}
}

func TestTradeServiceUpdate(t *testing.T) {
	repo := &fakeTradeRepo{trades: []entity.Trade{{
		ID:         "t1",
		UserID:     "user-1",
		Ticker:     "AAPL",
		Quantity:   10,
		EntryPrice: 100,
		EntryDate:  day("2024-01-15"),
	}}}
	svc := NewTradeService(repo, logger.NewNop())

	t.Run("closes the trade", func(t *testing.T) {
		trade, err := svc.Update(context.Background(), "t1", &dto.UpdateTradeRequest{
			Ticker:     "AAPL",
			Quantity:   10,
			EntryPrice: 100,
			EntryDate:  "2024-01-15",
			SellPrice:  fp(120),
			SellDate:   sp("2024-02-15"),
		})
		require.NoError(t, err)
		require.NotNil(t, trade.SellPrice)
		assert.InDelta(t, 120, *trade.SellPrice, 1e-9)
		require.NotNil(t, trade.SellDate)
		assert.Equal(t, day("2024-02-15"), *trade.SellDate)
		require.Len(t, repo.updated, 1)
	})

	t.Run("validation error leaves the row untouched", func(t *testing.T) {
		before := len(repo.updated)
		_, err := svc.Update(context.Background(), "t1", &dto.UpdateTradeRequest{
			Ticker:     "",
			EntryPrice: 100,
			EntryDate:  "2024-01-15",
		})
		assert.ErrorIs(t, err, ErrValidation)
		assert.Len(t, repo.updated, before)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Update(context.Background(), "nope", &dto.UpdateTradeRequest{
			Ticker:     "AAPL",
			EntryPrice: 100,
			EntryDate:  "2024-01-15",
		})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
