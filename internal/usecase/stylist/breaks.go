package stylist

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-pos/internal/audit"
	"github.com/BruksfildServices01/salon-pos/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/models"
	"github.com/BruksfildServices01/salon-pos/internal/timezone"
)

type AddBreakInput struct {
	SalonID   uint
	UserID    uint
	StylistID uint

	Date   string
	Start  string
	End    string
	Reason string
}

type AddBreak struct {
	repo  Repository
	audit *audit.Dispatcher
}

func NewAddBreak(repo Repository, audit *audit.Dispatcher) *AddBreak {
	return &AddBreak{repo: repo, audit: audit}
}

func (uc *AddBreak) Execute(ctx context.Context, in AddBreakInput) (*models.StylistBreak, error) {
	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(salon.Timezone)

	start, err := clockOn(in.Date, in.Start, loc)
	if err != nil {
		return nil, err
	}
	end, err := clockOn(in.Date, in.End, loc)
	if err != nil {
		return nil, err
	}
	if !(schedule.Window{Start: start, End: end}).Valid() {
		return nil, httperr.ErrBusiness("invalid_time_range")
	}

	br := &models.StylistBreak{
		StartTime: start,
		EndTime:   end,
		Reason:    strings.TrimSpace(in.Reason),
	}
	if err := uc.repo.AddBreak(ctx, in.SalonID, in.StylistID, br); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.UserID,
		Action:   "break_added",
		Entity:   "stylist",
		EntityID: &in.StylistID,
		Metadata: map[string]any{"start": start, "end": end},
	})
	return br, nil
}

type RemoveBreak struct {
	repo  Repository
	audit *audit.Dispatcher
}

func NewRemoveBreak(repo Repository, audit *audit.Dispatcher) *RemoveBreak {
	return &RemoveBreak{repo: repo, audit: audit}
}

// Execute removes the break at index in the stylist's insertion order.
func (uc *RemoveBreak) Execute(ctx context.Context, salonID, userID, stylistID uint, index int) error {
	removed, err := uc.repo.RemoveBreakAt(ctx, salonID, stylistID, index)
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "break_removed",
		Entity:   "stylist",
		EntityID: &stylistID,
		Metadata: map[string]any{"index": index, "start": removed.StartTime},
	})
	return nil
}

func clockOn(date, clock string, loc *time.Location) (time.Time, error) {
	day, err := timezone.ParseDate(date, loc)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date_or_time")
	}
	slot, err := schedule.ParseOption(clock)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date_or_time")
	}
	return slot.On(day), nil
}
