package models

import (
	"time"

	"github.com/BruksfildServices01/salon-pos/internal/domain/money"
)

type Order struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	ClientID      *uint  `json:"client_id"`
	ClientName    string `gorm:"size:100" json:"client_name"`
	StylistID     *uint  `json:"stylist_id"`
	AppointmentID *uint  `gorm:"index" json:"appointment_id"`
	WalkIn        bool   `json:"walk_in"`

	Items    []OrderItem     `gorm:"constraint:OnDelete:CASCADE;" json:"items"`
	Payments []PaymentDetail `gorm:"constraint:OnDelete:CASCADE;" json:"payments"`

	Subtotal money.Amount `json:"subtotal"`
	Tax      money.Amount `json:"tax"`
	Discount money.Amount `json:"discount"`
	Total    money.Amount `json:"total"`
	Paid     money.Amount `json:"paid"`
	Pending  money.Amount `json:"pending"`

	// PaymentMethod is the first method used, or "split" for mixed checkouts.
	PaymentMethod string `gorm:"size:20" json:"payment_method"`
	Status        string `gorm:"size:20;index" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"index" json:"order_id"`

	RefID     uint         `json:"ref_id"`
	Name      string       `gorm:"size:150" json:"name"`
	UnitPrice money.Amount `json:"unit_price"`
	Quantity  int          `json:"quantity"`
	Type      string       `gorm:"size:10" json:"type"`
}

type PaymentDetail struct {
	ID      uint `gorm:"primaryKey" json:"-"`
	OrderID uint `gorm:"index" json:"order_id"`

	Ref        string       `gorm:"size:36;uniqueIndex" json:"id"`
	Amount     money.Amount `json:"amount"`
	Method     string       `gorm:"size:20" json:"method"`
	Note       string       `gorm:"size:255" json:"note,omitempty"`
	GatewayRef string       `gorm:"size:64" json:"gateway_ref,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
