package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-pos/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/models"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func clock(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, ist)
}

func TestCancelAndComplete(t *testing.T) {
	now := clock(9, 0)

	ap := &models.Appointment{Status: string(StatusScheduled)}
	require.NoError(t, Cancel(ap, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	assert.Equal(t, &now, ap.CancelledAt)

	assert.True(t, httperr.IsBusiness(Complete(ap, now), "invalid_state"))

	ap = &models.Appointment{Status: string(StatusScheduled)}
	require.NoError(t, Complete(ap, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	assert.Error(t, Cancel(ap, now))
}

func TestReschedule(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusScheduled), StylistID: 1}
	w := schedule.Window{Start: clock(15, 0), End: clock(15, 45)}

	require.NoError(t, Reschedule(ap, 2, w))
	assert.Equal(t, uint(2), ap.StylistID)
	assert.Equal(t, w, WindowOf(ap))

	bad := schedule.Window{Start: clock(15, 0), End: clock(14, 0)}
	assert.True(t, httperr.IsBusiness(Reschedule(ap, 2, bad), "invalid_time_range"))

	ap.Status = string(StatusCompleted)
	assert.True(t, httperr.IsBusiness(Reschedule(ap, 2, w), "invalid_state"))
}

func TestAssertNoBreakConflict(t *testing.T) {
	breaks := []models.StylistBreak{{StartTime: clock(13, 0), EndTime: clock(14, 0)}}

	err := AssertNoBreakConflict(schedule.Window{Start: clock(13, 30), End: clock(14, 30)}, breaks)
	assert.True(t, httperr.IsBusiness(err, "break_conflict"))

	assert.NoError(t, AssertNoBreakConflict(schedule.Window{Start: clock(12, 0), End: clock(13, 0)}, breaks))
}

func TestIsWithinBusinessHours(t *testing.T) {
	hours := schedule.DefaultBusinessHours()

	assert.True(t, IsWithinBusinessHours(hours, clock(8, 0)))
	assert.True(t, IsWithinBusinessHours(hours, clock(20, 0)))
	assert.False(t, IsWithinBusinessHours(hours, clock(7, 30)))
	assert.False(t, IsWithinBusinessHours(hours, clock(20, 30)))
}
