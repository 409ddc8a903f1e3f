package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-pos/internal/audit"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/middleware"
	"github.com/BruksfildServices01/salon-pos/internal/models"
	"github.com/BruksfildServices01/salon-pos/internal/timezone"
)

type SalonHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewSalonHandler(db *gorm.DB, audit *audit.Dispatcher) *SalonHandler {
	return &SalonHandler{db: db, audit: audit}
}

type UpdateSalonRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	GSTIN    *string `json:"gstin"`
	Timezone *string `json:"timezone"`
}

func (h *SalonHandler) load(c *gin.Context) (*models.Salon, bool) {
	var salon models.Salon
	if err := h.db.WithContext(c.Request.Context()).First(&salon, middleware.SalonID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "salon_not_found", "Salon not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_salon", "Internal error.")
		return nil, false
	}
	return &salon, true
}

func (h *SalonHandler) GetMeSalon(c *gin.Context) {
	salon, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, salon)
}

func (h *SalonHandler) UpdateMeSalon(c *gin.Context) {
	salon, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateSalonRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			httperr.BadRequest(c, "invalid_name", "Name is required.")
			return
		}
		salon.Name = *req.Name
	}
	if req.Phone != nil {
		salon.Phone = *req.Phone
	}
	if req.Address != nil {
		salon.Address = *req.Address
	}
	if req.GSTIN != nil {
		salon.GSTIN = *req.GSTIN
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		salon.Timezone = *req.Timezone
	}

	if err := h.db.WithContext(c.Request.Context()).Save(salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Internal error.")
		return
	}

	writeAudit(c, h.audit, "salon_updated", "salon", &salon.ID, req)
	c.JSON(http.StatusOK, salon)
}
