package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-pos/internal/audit"
	domain "github.com/BruksfildServices01/salon-pos/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-pos/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/lock"
	"github.com/BruksfildServices01/salon-pos/internal/metrics"
	"github.com/BruksfildServices01/salon-pos/internal/models"
	"github.com/BruksfildServices01/salon-pos/internal/timezone"
)

// UpdateAppointmentInput covers both the edit dialog and drag/drop moves.
// Nil fields keep their stored value.
type UpdateAppointmentInput struct {
	SalonID       uint
	UserID        uint
	AppointmentID uint

	StylistID *uint
	ServiceID *uint
	ClientID  *uint

	Date *string
	Time *string

	Notes           *string
	CalendarEventID *string
}

type UpdateAppointment struct {
	repo   domain.Repository
	locker lock.Locker
	hours  schedule.BusinessHours
	audit  *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	locker lock.Locker,
	hours schedule.BusinessHours,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:   repo,
		locker: locker,
		hours:  hours,
		audit:  audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(salon.Timezone)

	ap, err := uc.repo.GetAppointment(ctx, in.SalonID, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Target window
	// --------------------------------------------------
	stylistID := ap.StylistID
	if in.StylistID != nil {
		stylistID = *in.StylistID
	}

	duration := ap.EndTime.Sub(ap.StartTime)
	if in.ServiceID != nil && *in.ServiceID != ap.ServiceID {
		service, err := uc.repo.GetService(ctx, in.SalonID, *in.ServiceID)
		if err != nil {
			return nil, err
		}
		if duration, err = bookableDuration(service); err != nil {
			return nil, err
		}
		ap.ServiceID = service.ID
	}

	current := ap.StartTime.In(loc)
	date := current.Format("2006-01-02")
	clock := current.Format("15:04")
	if in.Date != nil {
		date = *in.Date
	}
	if in.Time != nil {
		clock = *in.Time
	}
	start, err := parseStart(date, clock, loc)
	if err != nil {
		return nil, err
	}
	window := schedule.Window{Start: start, End: start.Add(duration)}

	moved := stylistID != ap.StylistID ||
		!window.Start.Equal(ap.StartTime) ||
		!window.End.Equal(ap.EndTime)

	// --------------------------------------------------
	// Plain field edits
	// --------------------------------------------------
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}
	if in.CalendarEventID != nil {
		ap.CalendarEventID = *in.CalendarEventID
	}
	if in.ClientID != nil {
		client, err := uc.repo.GetClient(ctx, in.SalonID, *in.ClientID)
		if err != nil {
			return nil, err
		}
		ap.ClientID = &client.ID
	}

	if !moved {
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}
		uc.dispatch(in, ap, "appointment_updated")
		return ap, nil
	}

	// --------------------------------------------------
	// Move: re-check the target stylist's breaks
	// --------------------------------------------------
	if !domain.IsWithinBusinessHours(uc.hours, window.Start) {
		return nil, httperr.ErrBusiness("outside_business_hours")
	}

	err = uc.locker.WithLock(ctx, lock.StylistKey(in.SalonID, stylistID), func(ctx context.Context) error {
		stylist, err := uc.repo.GetStylist(ctx, in.SalonID, stylistID)
		if err != nil {
			return err
		}
		if err := domain.AssertNoBreakConflict(window, stylist.Breaks); err != nil {
			metrics.BreakConflicts.Inc()
			return err
		}
		if err := domain.Reschedule(ap, stylistID, window); err != nil {
			return err
		}
		return uc.repo.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(in, ap, "appointment_rescheduled")
	return ap, nil
}

func (uc *UpdateAppointment) dispatch(in UpdateAppointmentInput, ap *models.Appointment, action string) {
	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.UserID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"stylist_id": ap.StylistID,
			"start":      ap.StartTime,
			"end":        ap.EndTime,
		},
	})
}
