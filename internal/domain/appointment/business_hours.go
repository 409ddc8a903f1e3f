package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-pos/internal/domain/schedule"
)

// IsWithinBusinessHours checks that the appointment starts on one of the
// bookable slots of its own day. The last slot may run past closing.
func IsWithinBusinessHours(hours schedule.BusinessHours, start time.Time) bool {
	open := hours.Start(start)
	last := hours.End(start)
	if start.Before(open) || start.After(last) {
		return false
	}
	return true
}
