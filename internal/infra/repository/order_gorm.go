package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-pos/internal/domain/order"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/models"
)

var _ domain.Repository = (*OrderGormRepository)(nil)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) GetSalonByID(ctx context.Context, id uint) (*models.Salon, error) {
	return getSalon(ctx, r.db, id)
}

func (r *OrderGormRepository) GetAppointment(
	ctx context.Context,
	salonID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("id = ? AND salon_id = ?", appointmentID, salonID).
		First(&ap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

// FindOrderForAppointment returns nil when the appointment has no live order.
func (r *OrderGormRepository) FindOrderForAppointment(
	ctx context.Context,
	salonID uint,
	appointmentID uint,
) (*models.Order, error) {

	var o models.Order
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND appointment_id = ? AND status <> ?",
			salonID, appointmentID, string(domain.StatusCancelled)).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderGormRepository) GetServices(
	ctx context.Context,
	salonID uint,
	ids []uint,
) ([]models.Service, error) {

	var out []models.Service
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND id IN ?", salonID, ids).
		Find(&out).Error
	return out, err
}

func (r *OrderGormRepository) GetProducts(
	ctx context.Context,
	salonID uint,
	ids []uint,
) ([]models.Product, error) {

	var out []models.Product
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND id IN ?", salonID, ids).
		Find(&out).Error
	return out, err
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *OrderGormRepository) PlaceOrder(
	ctx context.Context,
	o *models.Order,
	fx domain.Effects,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if o.AppointmentID != nil {
			if err := assertNoLiveOrder(tx, o.SalonID, *o.AppointmentID); err != nil {
				return err
			}
		}

		client, err := applyClientEffects(tx, o.SalonID, fx)
		if err != nil {
			return err
		}
		if client != nil {
			o.ClientID = &client.ID
		}

		if err := tx.Create(o).Error; err != nil {
			return err
		}

		for productID, qty := range fx.StockOut {
			if err := tx.Model(&models.Product{}).
				Where("id = ? AND salon_id = ?", productID, o.SalonID).
				Update("stock", gorm.Expr("stock - ?", qty)).Error; err != nil {
				return err
			}
		}

		return completeAppointment(tx, o.SalonID, fx)
	})
}

func (r *OrderGormRepository) AppendPayment(
	ctx context.Context,
	o *models.Order,
	p *models.PaymentDetail,
	fx domain.Effects,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The balance only moves if nobody settled the order since it was
		// read: paid must still be what it was before p.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND salon_id = ? AND status = ? AND paid = ?",
				o.ID, o.SalonID, string(domain.StatusPending), o.Paid-p.Amount).
			Updates(map[string]any{
				"paid":       o.Paid,
				"pending":    o.Pending,
				"status":     o.Status,
				"updated_at": o.UpdatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("order_changed")
		}

		p.OrderID = o.ID
		if err := tx.Create(p).Error; err != nil {
			return err
		}

		if _, err := applyClientEffects(tx, o.SalonID, fx); err != nil {
			return err
		}
		return completeAppointment(tx, o.SalonID, fx)
	})
}

// assertNoLiveOrder locks the appointment row so two checkouts of the same
// appointment cannot both insert an order.
func assertNoLiveOrder(tx *gorm.DB, salonID, appointmentID uint) error {
	var ap models.Appointment
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ? AND salon_id = ?", appointmentID, salonID).
		First(&ap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("appointment_not_found")
		}
		return err
	}

	var live int64
	if err := tx.Model(&models.Order{}).
		Where("salon_id = ? AND appointment_id = ? AND status <> ?",
			salonID, appointmentID, string(domain.StatusCancelled)).
		Count(&live).Error; err != nil {
		return err
	}
	if live > 0 {
		return httperr.ErrBusiness("order_exists")
	}
	return nil
}

func (r *OrderGormRepository) UpdateOrder(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(o).Error
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *OrderGormRepository) GetOrder(
	ctx context.Context,
	salonID uint,
	orderID uint,
) (*models.Order, error) {

	var o models.Order
	err := withOrderChildren(r.db.WithContext(ctx)).
		Where("id = ? AND salon_id = ?", orderID, salonID).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("order_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderGormRepository) ListOrders(
	ctx context.Context,
	salonID uint,
	f domain.ListFilter,
) ([]models.Order, error) {

	q := withOrderChildren(r.db.WithContext(ctx)).Where("salon_id = ?", salonID)
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var list []models.Order
	if err := q.Order("created_at DESC, id DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func withOrderChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Payments", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at ASC, id ASC") })
}

// --------------------------------------------------
// Side effects
// --------------------------------------------------

func applyClientEffects(tx *gorm.DB, salonID uint, fx domain.Effects) (*models.Client, error) {
	if fx.ClientID == nil && strings.TrimSpace(fx.ClientName) == "" {
		return nil, nil
	}

	var client models.Client
	q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("salon_id = ?", salonID)
	if fx.ClientID != nil {
		q = q.Where("id = ?", *fx.ClientID)
	} else {
		q = q.Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(fx.ClientName)))
	}

	err := q.First(&client).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound) && fx.ClientID != nil:
		return nil, httperr.ErrBusiness("client_not_found")
	case errors.Is(err, gorm.ErrRecordNotFound):
		client = models.Client{
			SalonID: salonID,
			Name:    strings.TrimSpace(fx.ClientName),
			Notes:   "Created from order",
		}
	case err != nil:
		return nil, err
	}

	client.TotalSpent += fx.Spent + fx.Settled
	client.PendingBalance += fx.Owed - fx.Settled
	if client.PendingBalance < 0 {
		client.PendingBalance = 0
	}
	if !fx.VisitedAt.IsZero() {
		visited := fx.VisitedAt
		client.LastVisit = &visited
	}

	if err := tx.Save(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func completeAppointment(tx *gorm.DB, salonID uint, fx domain.Effects) error {
	if fx.CompleteAppointment == nil {
		return nil
	}
	return tx.Model(&models.Appointment{}).
		Where("id = ? AND salon_id = ? AND status = ?", *fx.CompleteAppointment, salonID, "scheduled").
		Updates(map[string]any{
			"status":       "completed",
			"completed_at": fx.VisitedAt,
		}).Error
}
