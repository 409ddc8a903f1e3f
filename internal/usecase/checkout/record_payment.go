package checkout

import (
	"context"

	"github.com/BruksfildServices01/salon-pos/internal/audit"
	domain "github.com/BruksfildServices01/salon-pos/internal/domain/order"
	"github.com/BruksfildServices01/salon-pos/internal/domain/payment"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/lock"
	"github.com/BruksfildServices01/salon-pos/internal/metrics"
	"github.com/BruksfildServices01/salon-pos/internal/models"
	"github.com/BruksfildServices01/salon-pos/internal/timezone"
)

type RecordPaymentInput struct {
	SalonID uint
	UserID  uint
	OrderID uint
	Payment PaymentInput
}

// RecordPayment settles part or all of an open order's balance.
type RecordPayment struct {
	deps Deps
}

func NewRecordPayment(deps Deps) *RecordPayment {
	return &RecordPayment{deps: deps}
}

// Execute holds the order's lock for the whole read-charge-write cycle; the
// repository still rejects a write whose balance moved underneath it.
func (uc *RecordPayment) Execute(ctx context.Context, in RecordPaymentInput) (*models.Order, error) {
	var out *models.Order
	err := serialise(ctx, uc.deps.Locker, lock.OrderKey(in.SalonID, in.OrderID), func(ctx context.Context) error {
		var err error
		out, err = uc.settle(ctx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *RecordPayment) settle(ctx context.Context, in RecordPaymentInput) (*models.Order, error) {
	salon, err := uc.deps.Repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}
	now := timezone.NowIn(salon.Timezone)

	o, err := uc.deps.Repo.GetOrder(ctx, in.SalonID, in.OrderID)
	if err != nil {
		return nil, err
	}
	if err := domain.CanAcceptPayment(domain.Status(o.Status)); err != nil {
		return nil, err
	}

	if !in.Payment.Method.Valid() {
		return nil, invalidMethod()
	}
	if in.Payment.Method.Deferred() {
		return nil, httperr.ErrBusiness("deferred_settlement")
	}

	// --------------------------------------------------
	// Settlement ledger over what was collected so far
	// --------------------------------------------------
	ledger := payment.NewSettlementLedger(o.Total, fromModels(o.Payments))
	det := payment.NewDetail(in.Payment.Amount, in.Payment.Method, in.Payment.Note, now)
	if err := ledger.Add(det); err != nil {
		return nil, err
	}

	ref, err := charge(ctx, uc.deps.Gateway, det, in.Payment, o.ClientName)
	if err != nil {
		return nil, err
	}
	stored := toModel(det, ref)

	o.Paid = ledger.Collected()
	o.Pending = ledger.Pending()
	o.Status = string(domain.AfterPayment(domain.Status(o.Status), ledger))
	o.UpdatedAt = now

	fx := domain.Effects{
		ClientID:   o.ClientID,
		ClientName: o.ClientName,
		Settled:    det.Amount,
	}
	if o.Status == string(domain.StatusCompleted) {
		fx.CompleteAppointment = o.AppointmentID
		fx.VisitedAt = now
	}

	if err := uc.deps.Repo.AppendPayment(ctx, o, &stored, fx); err != nil {
		refundAll(ctx, uc.deps.Gateway, []models.PaymentDetail{stored})
		return nil, err
	}
	o.Payments = append(o.Payments, stored)

	metrics.PaymentsRecorded.WithLabelValues(stored.Method).Inc()

	uc.deps.Audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.UserID,
		Action:   "payment_recorded",
		Entity:   "order",
		EntityID: &o.ID,
		Metadata: map[string]any{
			"amount":  det.Amount.String(),
			"method":  det.Method,
			"pending": o.Pending.String(),
		},
	})

	if o.Status == string(domain.StatusCompleted) {
		publishCompleted(ctx, uc.deps.Events, o, now)
	}

	return o, nil
}
