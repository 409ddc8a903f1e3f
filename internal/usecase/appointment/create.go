package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-pos/internal/audit"
	domain "github.com/BruksfildServices01/salon-pos/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-pos/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-pos/internal/events"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/lock"
	"github.com/BruksfildServices01/salon-pos/internal/metrics"
	"github.com/BruksfildServices01/salon-pos/internal/models"
	"github.com/BruksfildServices01/salon-pos/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	SalonID   uint
	UserID    uint
	StylistID uint
	ServiceID uint

	ClientID    *uint
	ClientName  string
	ClientPhone string
	ClientEmail string

	Date            string
	Time            string
	Notes           string
	CalendarEventID string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	locker lock.Locker
	hours  schedule.BusinessHours
	audit  *audit.Dispatcher
	events events.Publisher
}

func NewCreateAppointment(
	repo domain.Repository,
	locker lock.Locker,
	hours schedule.BusinessHours,
	audit *audit.Dispatcher,
	publisher events.Publisher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		locker: locker,
		hours:  hours,
		audit:  audit,
		events: publisher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Salon and start time in its timezone
	// --------------------------------------------------
	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	start, err := parseStart(in.Date, in.Time, timezone.Location(salon.Timezone))
	if err != nil {
		return nil, err
	}
	if !domain.IsWithinBusinessHours(uc.hours, start) {
		return nil, httperr.ErrBusiness("outside_business_hours")
	}

	// --------------------------------------------------
	// 2. Service gives the duration
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	duration, err := bookableDuration(service)
	if err != nil {
		return nil, err
	}

	window := schedule.Window{Start: start, End: start.Add(duration)}

	// --------------------------------------------------
	// 3. Break check and insert under the stylist lock
	// --------------------------------------------------
	var ap *models.Appointment
	err = uc.locker.WithLock(ctx, lock.StylistKey(in.SalonID, in.StylistID), func(ctx context.Context) error {
		stylist, err := uc.repo.GetStylist(ctx, in.SalonID, in.StylistID)
		if err != nil {
			return err
		}
		if !stylist.Available {
			return httperr.ErrBusiness("stylist_unavailable")
		}

		if err := domain.AssertNoBreakConflict(window, stylist.Breaks); err != nil {
			metrics.BreakConflicts.Inc()
			return err
		}

		clientID, err := uc.resolveClient(ctx, in)
		if err != nil {
			return err
		}

		ap = &models.Appointment{
			SalonID:         in.SalonID,
			StylistID:       in.StylistID,
			ClientID:        clientID,
			ServiceID:       service.ID,
			StartTime:       window.Start,
			EndTime:         window.End,
			Status:          string(domain.InitialStatus()),
			Notes:           in.Notes,
			CalendarEventID: in.CalendarEventID,
		}
		return uc.repo.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Audit, metrics and event
	// --------------------------------------------------
	metrics.AppointmentsBooked.Inc()

	// Public bookings have no acting user.
	var actor *uint
	if in.UserID != 0 {
		actor = &in.UserID
	}
	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   actor,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	_ = uc.events.Publish(ctx, events.AppointmentBooked, events.AppointmentBookedEvent{
		SalonID:       in.SalonID,
		AppointmentID: ap.ID,
		StylistID:     ap.StylistID,
		StartTime:     ap.StartTime,
		EndTime:       ap.EndTime,
	})

	return ap, nil
}

func (uc *CreateAppointment) resolveClient(ctx context.Context, in CreateAppointmentInput) (*uint, error) {
	if in.ClientID != nil {
		client, err := uc.repo.GetClient(ctx, in.SalonID, *in.ClientID)
		if err != nil {
			return nil, err
		}
		return &client.ID, nil
	}
	if in.ClientName == "" {
		return nil, nil
	}

	client, err := uc.repo.GetOrCreateClient(ctx, in.SalonID, in.ClientName, in.ClientPhone, in.ClientEmail)
	if err != nil {
		return nil, err
	}
	return &client.ID, nil
}
