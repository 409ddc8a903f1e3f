package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-pos/internal/dto"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/models"
)

// parseStart reads "2006-01-02" + "H:MM" in loc.
func parseStart(date, clock string, loc *time.Location) (time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+padClock(clock), loc)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date_or_time")
	}
	return start, nil
}

// bookableDuration is the slot length a service occupies. Inactive services
// cannot be booked or switched to.
func bookableDuration(service *models.Service) (time.Duration, error) {
	if !service.Active {
		return 0, httperr.ErrBusiness("service_inactive")
	}
	if service.DurationMin <= 0 {
		return 0, httperr.ErrBusiness("invalid_service_duration")
	}
	return time.Duration(service.DurationMin) * time.Minute, nil
}

// padClock turns the dropdown form "8:30" into "08:30".
func padClock(clock string) string {
	if len(clock) == 4 && clock[1] == ':' {
		return "0" + clock
	}
	return clock
}

func toListDTO(ap models.Appointment) dto.AppointmentListDTO {
	out := dto.AppointmentListDTO{
		ID:              ap.ID,
		StylistID:       ap.StylistID,
		StylistName:     ap.Stylist.Name,
		StartTime:       ap.StartTime,
		EndTime:         ap.EndTime,
		Status:          ap.Status,
		ServiceName:     ap.Service.Name,
		Notes:           ap.Notes,
		CalendarEventID: ap.CalendarEventID,
	}
	if ap.Client != nil {
		out.ClientName = ap.Client.Name
	}
	return out
}

func invalidDate() error {
	return httperr.ErrBusiness("invalid_date")
}
