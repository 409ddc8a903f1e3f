package models

import (
	"time"

	"github.com/BruksfildServices01/salon-pos/internal/domain/money"
)

// Product is a retail or consumable stock item keyed by name and HSN code.
type Product struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"uniqueIndex:idx_product_identity" json:"salon_id"`

	Name    string `gorm:"size:150;not null;uniqueIndex:idx_product_identity" json:"name"`
	HSNCode string `gorm:"size:20;uniqueIndex:idx_product_identity" json:"hsn_code"`
	Unit    string `gorm:"size:10" json:"unit"`

	Price money.Amount `json:"price"`
	Stock float64      `json:"stock"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
