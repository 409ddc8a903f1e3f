package checkout

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-pos/internal/domain/money"
	"github.com/BruksfildServices01/salon-pos/internal/models"
)

type WalkInInput struct {
	SalonID    uint
	UserID     uint
	ClientID   *uint
	ClientName string
	StylistID  *uint
	Lines      []LineInput
	Discount   money.Amount
	Payments   []PaymentInput
}

type WalkInCheckout struct {
	deps Deps
}

func NewWalkInCheckout(deps Deps) *WalkInCheckout {
	return &WalkInCheckout{deps: deps}
}

func (uc *WalkInCheckout) Execute(ctx context.Context, in WalkInInput) (*models.Order, error) {
	lines, err := resolveLines(ctx, uc.deps.Repo, in.SalonID, in.Lines)
	if err != nil {
		return nil, err
	}

	return place(ctx, uc.deps, cart{
		salonID:    in.SalonID,
		userID:     in.UserID,
		clientID:   in.ClientID,
		clientName: strings.TrimSpace(in.ClientName),
		stylistID:  in.StylistID,
		walkIn:     true,
		lines:      lines,
		discount:   in.Discount,
		payments:   in.Payments,
	})
}
