package models

import (
	"time"

	"github.com/BruksfildServices01/salon-pos/internal/domain/money"
)

// Client has no login and belongs to one salon.
type Client struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	TotalSpent     money.Amount `json:"total_spent"`
	PendingBalance money.Amount `json:"pending_balance"`
	LastVisit      *time.Time   `json:"last_visit"`
	Notes          string       `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
