package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-pos/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-pos/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	hours schedule.BusinessHours
}

func NewGetAvailability(repo domain.Repository, hours schedule.BusinessHours) *GetAvailability {
	return &GetAvailability{repo: repo, hours: hours}
}

// Execute lists the slot starts on in.Date where the service fits without
// touching a break or another live booking of the stylist.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if service.DurationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_time_range")
	}

	stylist, err := uc.repo.GetStylist(ctx, in.SalonID, in.StylistID)
	if err != nil {
		return nil, err
	}
	if !stylist.Available {
		return []domain.TimeSlot{}, nil
	}

	loc := timezone.Location(salon.Timezone)
	day := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		in.SalonID,
		in.StylistID,
		day,
		day.AddDate(0, 0, 1),
	)
	if err != nil {
		return nil, err
	}

	var booked []schedule.Window
	for i := range appointments {
		if appointments[i].Status == string(domain.StatusCancelled) {
			continue
		}
		booked = append(booked, domain.WindowOf(&appointments[i]))
	}

	breaks := domain.BreakWindows(stylist.Breaks)
	duration := time.Duration(service.DurationMin) * time.Minute

	slots := []domain.TimeSlot{}
	for _, s := range uc.hours.Slots() {
		start := s.On(day)
		w := schedule.Window{Start: start, End: start.Add(duration)}

		if schedule.HasBreakConflict(w, breaks, day) {
			continue
		}
		if overlapsAny(w, booked) {
			continue
		}

		slots = append(slots, domain.TimeSlot{
			Start: w.Start.Format("15:04"),
			End:   w.End.Format("15:04"),
		})
	}

	return slots, nil
}

func overlapsAny(w schedule.Window, others []schedule.Window) bool {
	for _, o := range others {
		if schedule.Overlaps(w, o) {
			return true
		}
	}
	return false
}
