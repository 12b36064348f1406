package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Trade is a recorded stock holding: entry terms plus optional exit terms.
// A trade with both SellPrice and SellDate set is closed; anything less
// keeps it open.
type Trade struct {
	ID         string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Ticker     string     `gorm:"not null;index" json:"ticker"`
	Quantity   float64    `gorm:"not null;default:1" json:"quantity"`
	EntryPrice float64    `gorm:"not null" json:"entryPrice"`
	EntryDate  time.Time  `gorm:"not null" json:"entryDate"`
	SellPrice  *float64   `json:"sellPrice,omitempty"`
	SellDate   *time.Time `json:"sellDate,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Trade) TableName() string {
	return "trades"
}

// BeforeCreate assigns a fresh ID when the caller did not provide one.
func (t *Trade) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
