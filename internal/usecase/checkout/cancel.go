package checkout

import (
	"context"

	"github.com/BruksfildServices01/salon-pos/internal/audit"
	domain "github.com/BruksfildServices01/salon-pos/internal/domain/order"
	"github.com/BruksfildServices01/salon-pos/internal/models"
	"github.com/BruksfildServices01/salon-pos/internal/timezone"
)

// CancelOrder voids an order. Recorded payments and client totals are left
// as they are; refunds happen outside the system.
type CancelOrder struct {
	deps Deps
}

func NewCancelOrder(deps Deps) *CancelOrder {
	return &CancelOrder{deps: deps}
}

func (uc *CancelOrder) Execute(ctx context.Context, salonID, userID, orderID uint) (*models.Order, error) {
	salon, err := uc.deps.Repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	o, err := uc.deps.Repo.GetOrder(ctx, salonID, orderID)
	if err != nil {
		return nil, err
	}
	if err := domain.CanCancel(domain.Status(o.Status)); err != nil {
		return nil, err
	}

	now := timezone.NowIn(salon.Timezone)
	o.Status = string(domain.StatusCancelled)
	o.CancelledAt = &now

	if err := uc.deps.Repo.UpdateOrder(ctx, o); err != nil {
		return nil, err
	}

	uc.deps.Audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "order_cancelled",
		Entity:   "order",
		EntityID: &o.ID,
	})
	return o, nil
}
