package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-pos/internal/audit"
	"github.com/BruksfildServices01/salon-pos/internal/middleware"
)

func writeAudit(
	c *gin.Context,
	d *audit.Dispatcher,
	action string,
	entity string,
	entityID *uint,
	meta any,
) {

	userID := middleware.UserID(c)

	d.Dispatch(audit.Event{
		SalonID:  middleware.SalonID(c),
		UserID:   &userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: meta,
	})
}
