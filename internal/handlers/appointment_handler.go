package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-pos/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-pos/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *ucAppointment.CreateAppointment
	update       *ucAppointment.UpdateAppointment
	cancel       *ucAppointment.CancelAppointment
	complete     *ucAppointment.CompleteAppointment
	delete       *ucAppointment.DeleteAppointment
	listByDate   *ucAppointment.ListAppointmentsByDate
	listByMonth  *ucAppointment.ListAppointmentsByMonth
	dayView      *ucAppointment.GetDayView
	availability *ucAppointment.GetAvailability
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateAppointment,
	cancel *ucAppointment.CancelAppointment,
	complete *ucAppointment.CompleteAppointment,
	del *ucAppointment.DeleteAppointment,
	listByDate *ucAppointment.ListAppointmentsByDate,
	listByMonth *ucAppointment.ListAppointmentsByMonth,
	dayView *ucAppointment.GetDayView,
	availability *ucAppointment.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		update:       update,
		cancel:       cancel,
		complete:     complete,
		delete:       del,
		listByDate:   listByDate,
		listByMonth:  listByMonth,
		dayView:      dayView,
		availability: availability,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	StylistID uint `json:"stylist_id" binding:"required"`
	ServiceID uint `json:"service_id" binding:"required"`

	ClientID    *uint  `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`

	Date            string `json:"date" binding:"required"`
	Time            string `json:"time" binding:"required"`
	Notes           string `json:"notes"`
	CalendarEventID string `json:"calendar_event_id"`
}

type UpdateAppointmentRequest struct {
	StylistID       *uint   `json:"stylist_id"`
	ServiceID       *uint   `json:"service_id"`
	ClientID        *uint   `json:"client_id"`
	Date            *string `json:"date"`
	Time            *string `json:"time"`
	Notes           *string `json:"notes"`
	CalendarEventID *string `json:"calendar_event_id"`
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		SalonID:         middleware.SalonID(c),
		UserID:          middleware.UserID(c),
		StylistID:       req.StylistID,
		ServiceID:       req.ServiceID,
		ClientID:        req.ClientID,
		ClientName:      req.ClientName,
		ClientPhone:     req.ClientPhone,
		ClientEmail:     req.ClientEmail,
		Date:            req.Date,
		Time:            req.Time,
		Notes:           req.Notes,
		CalendarEventID: req.CalendarEventID,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_appointment")
		return
	}
	c.JSON(http.StatusCreated, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		SalonID:         middleware.SalonID(c),
		UserID:          middleware.UserID(c),
		AppointmentID:   id,
		StylistID:       req.StylistID,
		ServiceID:       req.ServiceID,
		ClientID:        req.ClientID,
		Date:            req.Date,
		Time:            req.Time,
		Notes:           req.Notes,
		CalendarEventID: req.CalendarEventID,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_appointment")
		return
	}
	c.JSON(http.StatusOK, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}
	stylistID, ok := queryUint(c, "stylist_id")
	if !ok {
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), middleware.SalonID(c), stylistID, date)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_appointments")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid year or month.")
		return
	}
	stylistID, ok := queryUint(c, "stylist_id")
	if !ok {
		return
	}

	list, err := h.listByMonth.Execute(c.Request.Context(), middleware.SalonID(c), stylistID, year, month)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_appointments")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AppointmentHandler) DayView(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	view, err := h.dayView.Execute(c.Request.Context(), middleware.SalonID(c), date)
	if err != nil {
		httperr.FromError(c, err, "failed_to_build_day_view")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AppointmentHandler) Availability(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}
	stylistID, ok := queryUint(c, "stylist_id")
	if !ok {
		return
	}
	serviceID, ok := queryUint(c, "service_id")
	if !ok {
		return
	}
	if stylistID == 0 || serviceID == 0 {
		httperr.BadRequest(c, "invalid_request", "stylist_id and service_id are required.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		SalonID:   middleware.SalonID(c),
		StylistID: stylistID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_availability")
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": c.Query("date"), "slots": slots})
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), middleware.SalonID(c), middleware.UserID(c), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_cancel_appointment")
		return
	}
	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), middleware.SalonID(c), middleware.UserID(c), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_complete_appointment")
		return
	}
	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.SalonID(c), middleware.UserID(c), id); err != nil {
		httperr.FromError(c, err, "failed_to_delete_appointment")
		return
	}
	c.Status(http.StatusNoContent)
}
