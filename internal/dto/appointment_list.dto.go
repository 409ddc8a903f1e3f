package dto

import "time"

type AppointmentListDTO struct {
	ID              uint      `json:"id"`
	StylistID       uint      `json:"stylist_id"`
	StylistName     string    `json:"stylist_name"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Status          string    `json:"status"`
	ClientName      string    `json:"client_name"`
	ServiceName     string    `json:"service_name"`
	Notes           string    `json:"notes,omitempty"`
	CalendarEventID string    `json:"calendar_event_id,omitempty"`
}
