package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-pos/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// Reschedule moves ap to stylistID over w. The caller has already checked
// the target stylist's breaks.
func Reschedule(ap *models.Appointment, stylistID uint, w schedule.Window) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}
	if !w.Valid() {
		return httperr.ErrBusiness("invalid_time_range")
	}

	ap.StylistID = stylistID
	ap.StartTime = w.Start
	ap.EndTime = w.End
	return nil
}

// WindowOf returns the booked interval.
func WindowOf(ap *models.Appointment) schedule.Window {
	return schedule.Window{Start: ap.StartTime, End: ap.EndTime}
}

// BreakWindows converts stored breaks into schedule windows.
func BreakWindows(breaks []models.StylistBreak) []schedule.Window {
	out := make([]schedule.Window, 0, len(breaks))
	for _, b := range breaks {
		out = append(out, schedule.Window{Start: b.StartTime, End: b.EndTime})
	}
	return out
}

// AssertNoBreakConflict rejects w when it intersects one of the stylist's
// breaks on the same calendar day.
func AssertNoBreakConflict(w schedule.Window, breaks []models.StylistBreak) error {
	if schedule.HasBreakConflict(w, BreakWindows(breaks), w.Start) {
		return httperr.ErrBusiness("break_conflict")
	}
	return nil
}
