package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-pos/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-pos/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/models"
	"github.com/BruksfildServices01/salon-pos/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/salon-pos/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler is the unauthenticated online-booking surface, addressed by
// salon slug.
type PublicHandler struct {
	db           *gorm.DB
	create       *ucAppointment.CreateAppointment
	availability *ucAppointment.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	create *ucAppointment.CreateAppointment,
	availability *ucAppointment.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		create:       create,
		availability: availability,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	StylistID   uint   `json:"stylist_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // H:MM
	Notes       string `json:"notes"`
}

type publicStylist struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Specialties []string `json:"specialties"`
}

func (h *PublicHandler) salon(c *gin.Context) (*models.Salon, bool) {
	var salon models.Salon
	err := h.db.WithContext(c.Request.Context()).Where("slug = ?", c.Param("slug")).First(&salon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return nil, false
	}
	if err != nil {
		httperr.Internal(c, "failed_to_get_salon", "Internal error.")
		return nil, false
	}
	return &salon, true
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) Catalog(c *gin.Context) {
	salon, ok := h.salon(c)
	if !ok {
		return
	}
	db := h.db.WithContext(c.Request.Context())

	var services []models.Service
	if err := db.Where("salon_id = ? AND active = ?", salon.ID, true).Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Internal error.")
		return
	}

	var stylists []models.Stylist
	if err := db.Where("salon_id = ? AND available = ?", salon.ID, true).Order("id ASC").Find(&stylists).Error; err != nil {
		httperr.Internal(c, "failed_to_list_stylists", "Internal error.")
		return
	}

	public := make([]publicStylist, 0, len(stylists))
	for _, s := range stylists {
		public = append(public, publicStylist{ID: s.ID, Name: s.Name, Specialties: s.Specialties})
	}

	c.JSON(http.StatusOK, gin.H{
		"salon":    gin.H{"name": salon.Name, "slug": salon.Slug, "phone": salon.Phone, "address": salon.Address},
		"services": services,
		"stylists": public,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	salon, ok := h.salon(c)
	if !ok {
		return
	}

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
		httperr.BadRequest(c, "missing_params", "stylist_id and service_id are required.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		SalonID:   salon.ID,
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

////////////////////////////////////////////////////////
// CREATE
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	salon, ok := h.salon(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	if tooSoon(salon, req.Date, req.Time) {
		httperr.BadRequest(c, "too_soon", "Online bookings must be in the future.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		SalonID:     salon.ID,
		StylistID:   req.StylistID,
		ServiceID:   req.ServiceID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_appointment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         ap.ID,
		"status":     ap.Status,
		"start_time": ap.StartTime,
		"end_time":   ap.EndTime,
	})
}

// tooSoon reports a start that already passed in the salon's timezone.
// Unparseable input is left to the booking use case to reject.
func tooSoon(salon *models.Salon, date, clock string) bool {
	loc := timezone.Location(salon.Timezone)
	day, err := timezone.ParseDate(date, loc)
	if err != nil {
		return false
	}
	slot, err := schedule.ParseOption(clock)
	if err != nil {
		return false
	}
	return slot.On(day).Before(timezone.NowIn(salon.Timezone))
}
