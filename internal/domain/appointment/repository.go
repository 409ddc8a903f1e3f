package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-pos/internal/models"
)

type Repository interface {
	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	// -------- Catalog --------
	GetService(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.Service, error)

	// GetStylist loads the stylist with breaks in insertion order.
	GetStylist(
		ctx context.Context,
		salonID uint,
		stylistID uint,
	) (*models.Stylist, error)

	ListStylists(
		ctx context.Context,
		salonID uint,
	) ([]models.Stylist, error)

	// -------- Client --------
	GetClient(
		ctx context.Context,
		salonID uint,
		clientID uint,
	) (*models.Client, error)

	GetOrCreateClient(
		ctx context.Context,
		salonID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		salonID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		salonID uint,
		appointmentID uint,
	) error

	// ListAppointmentsForPeriod returns appointments starting in [start, end).
	// A zero stylistID lists every stylist.
	ListAppointmentsForPeriod(
		ctx context.Context,
		salonID uint,
		stylistID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
