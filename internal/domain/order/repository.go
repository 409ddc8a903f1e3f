package order

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-pos/internal/domain/money"
	"github.com/BruksfildServices01/salon-pos/internal/models"
)

// Effects are the side writes that must land in the same transaction as the
// order itself.
type Effects struct {
	// Client is matched by ClientID, or by name (case-insensitive) and
	// created when missing.
	ClientID   *uint
	ClientName string
	Spent      money.Amount
	Owed       money.Amount
	Settled    money.Amount
	VisitedAt  time.Time

	// StockOut maps product id to the quantity sold.
	StockOut map[uint]float64

	CompleteAppointment *uint
}

type ListFilter struct {
	From   *time.Time
	To     *time.Time
	Status Status
	Limit  int
}

type Repository interface {
	GetSalonByID(ctx context.Context, id uint) (*models.Salon, error)

	GetAppointment(ctx context.Context, salonID, appointmentID uint) (*models.Appointment, error)
	FindOrderForAppointment(ctx context.Context, salonID, appointmentID uint) (*models.Order, error)

	GetServices(ctx context.Context, salonID uint, ids []uint) ([]models.Service, error)
	GetProducts(ctx context.Context, salonID uint, ids []uint) ([]models.Product, error)

	// PlaceOrder persists o with its items and payments and applies fx. An
	// appointment that already has a live order fails with order_exists.
	PlaceOrder(ctx context.Context, o *models.Order, fx Effects) error

	// AppendPayment stores p and the recomputed balances of o. o.Paid already
	// includes p; when the stored balance moved since o was read it fails
	// with order_changed and writes nothing.
	AppendPayment(ctx context.Context, o *models.Order, p *models.PaymentDetail, fx Effects) error

	GetOrder(ctx context.Context, salonID, orderID uint) (*models.Order, error)
	UpdateOrder(ctx context.Context, o *models.Order) error
	ListOrders(ctx context.Context, salonID uint, f ListFilter) ([]models.Order, error)
}
