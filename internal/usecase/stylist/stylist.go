// Package stylist holds the stylist sub-resource flows: breaks and avatars.
package stylist

import (
	"context"

	"github.com/BruksfildServices01/salon-pos/internal/models"
)

type Repository interface {
	GetSalonByID(ctx context.Context, id uint) (*models.Salon, error)
	GetStylist(ctx context.Context, salonID, stylistID uint) (*models.Stylist, error)
	AddBreak(ctx context.Context, salonID, stylistID uint, br *models.StylistBreak) error
	RemoveBreakAt(ctx context.Context, salonID, stylistID uint, index int) (*models.StylistBreak, error)
	SetAvatar(ctx context.Context, salonID, stylistID uint, key string) error
}
