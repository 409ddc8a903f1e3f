package checkout

import (
	"context"

	apdomain "github.com/BruksfildServices01/salon-pos/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-pos/internal/domain/money"
	domain "github.com/BruksfildServices01/salon-pos/internal/domain/order"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/lock"
	"github.com/BruksfildServices01/salon-pos/internal/models"
)

type AppointmentCheckoutInput struct {
	SalonID       uint
	UserID        uint
	AppointmentID uint
	// Extra lines are billed after the appointment's own service.
	Extra    []LineInput
	Discount money.Amount
	Payments []PaymentInput
}

type AppointmentCheckout struct {
	deps Deps
}

func NewAppointmentCheckout(deps Deps) *AppointmentCheckout {
	return &AppointmentCheckout{deps: deps}
}

func (uc *AppointmentCheckout) Execute(ctx context.Context, in AppointmentCheckoutInput) (*models.Order, error) {
	var out *models.Order
	err := serialise(ctx, uc.deps.Locker, lock.AppointmentKey(in.SalonID, in.AppointmentID), func(ctx context.Context) error {
		var err error
		out, err = uc.checkout(ctx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// checkout fails fast on an existing order; PlaceOrder repeats the check
// under a row lock so a racing checkout cannot slip through.
func (uc *AppointmentCheckout) checkout(ctx context.Context, in AppointmentCheckoutInput) (*models.Order, error) {
	ap, err := uc.deps.Repo.GetAppointment(ctx, in.SalonID, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if ap.Status == string(apdomain.StatusCancelled) {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	existing, err := uc.deps.Repo.FindOrderForAppointment(ctx, in.SalonID, ap.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, httperr.ErrBusiness("order_exists")
	}

	inputs := append([]LineInput{{RefID: ap.ServiceID, Type: domain.ItemService, Quantity: 1}}, in.Extra...)
	lines, err := resolveLines(ctx, uc.deps.Repo, in.SalonID, inputs)
	if err != nil {
		return nil, err
	}

	var clientName string
	if ap.Client != nil {
		clientName = ap.Client.Name
	}
	stylistID := ap.StylistID

	return place(ctx, uc.deps, cart{
		salonID:       in.SalonID,
		userID:        in.UserID,
		clientID:      ap.ClientID,
		clientName:    clientName,
		stylistID:     &stylistID,
		appointmentID: &ap.ID,
		lines:         lines,
		discount:      in.Discount,
		payments:      in.Payments,
	})
}
