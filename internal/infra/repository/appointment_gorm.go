package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-pos/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/models"
)

var _ domain.Repository = (*AppointmentGormRepository)(nil)

type AppointmentGormRepository struct {
	db       *gorm.DB
	stylists *StylistGormRepository
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{
		db:       db,
		stylists: NewStylistGormRepository(db),
	}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {
	return getSalon(ctx, r.db, id)
}

func getSalon(ctx context.Context, db *gorm.DB, id uint) (*models.Salon, error) {
	var salon models.Salon
	err := db.WithContext(ctx).First(&salon, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("salon_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &salon, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", serviceID, salonID).
		First(&svc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetStylist(
	ctx context.Context,
	salonID uint,
	stylistID uint,
) (*models.Stylist, error) {
	return r.stylists.GetStylist(ctx, salonID, stylistID)
}

func (r *AppointmentGormRepository) ListStylists(
	ctx context.Context,
	salonID uint,
) ([]models.Stylist, error) {

	var list []models.Stylist
	if err := BreaksInOrder(r.db.WithContext(ctx)).
		Where("salon_id = ?", salonID).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	salonID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", clientID, salonID).
		First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("client_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// GetOrCreateClient matches by phone when given, otherwise by name.
func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	salonID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	q := r.db.WithContext(ctx).Where("salon_id = ?", salonID)
	if phone != "" {
		q = q.Where("phone = ?", phone)
	} else {
		q = q.Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	}

	var client models.Client
	err := q.First(&client).Error
	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client = models.Client{
		SalonID: salonID,
		Name:    strings.TrimSpace(name),
		Phone:   phone,
		Email:   email,
	}
	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit("Stylist", "Client", "Service").Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	salonID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Stylist").
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

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit("Stylist", "Client", "Service").Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	salonID uint,
	appointmentID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", appointmentID, salonID).
		Delete(&models.Appointment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("appointment_not_found")
	}
	return nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	salonID uint,
	stylistID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Stylist").
		Where("salon_id = ? AND start_time >= ? AND start_time < ?", salonID, start, end)
	if stylistID != 0 {
		q = q.Where("stylist_id = ?", stylistID)
	}

	var aps []models.Appointment
	if err := q.Order("start_time ASC").Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}
