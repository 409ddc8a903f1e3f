package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-pos/internal/domain/payment"
	"github.com/BruksfildServices01/salon-pos/internal/domain/schedule"
)

// ScheduleHandler exposes the configured business hours to the day view.
type ScheduleHandler struct {
	hours      schedule.BusinessHours
	grid       schedule.Grid
	gstPercent int64
}

func NewScheduleHandler(grid schedule.Grid, gstPercent int64) *ScheduleHandler {
	return &ScheduleHandler{hours: grid.Hours, grid: grid, gstPercent: gstPercent}
}

func (h *ScheduleHandler) Slots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"start_hour":      h.hours.StartHour,
		"end_hour":        h.hours.EndHour,
		"slot_minutes":    h.hours.SlotMinutes,
		"row_minutes":     h.grid.RowMinutes,
		"row_height_px":   h.grid.RowHeightPx,
		"slots":           h.hours.Options(),
		"payment_methods": payment.Methods(),
		"gst_percent":     h.gstPercent,
	})
}
