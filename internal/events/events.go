// Package events publishes domain events to RabbitMQ.
package events

import (
	"context"
	"time"
)

const (
	OrderCompleted    = "order.completed"
	AppointmentBooked = "appointment.booked"
	StockImported     = "stock.imported"
)

type OrderCompletedEvent struct {
	SalonID       uint      `json:"salon_id"`
	OrderID       uint      `json:"order_id"`
	AppointmentID *uint     `json:"appointment_id,omitempty"`
	ClientName    string    `json:"client_name"`
	Total         int64     `json:"total"`
	CompletedAt   time.Time `json:"completed_at"`
}

type AppointmentBookedEvent struct {
	SalonID       uint      `json:"salon_id"`
	AppointmentID uint      `json:"appointment_id"`
	StylistID     uint      `json:"stylist_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
}

type StockImportedEvent struct {
	SalonID  uint   `json:"salon_id"`
	Products int    `json:"products"`
	FileKey  string `json:"file_key,omitempty"`
}

// Publisher failures are logged by implementations and must never fail the
// request that produced the event.
type Publisher interface {
	Publish(ctx context.Context, queue string, event any) error
}

type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }
