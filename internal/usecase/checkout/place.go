package checkout

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/BruksfildServices01/salon-pos/internal/audit"
	"github.com/BruksfildServices01/salon-pos/internal/domain/money"
	domain "github.com/BruksfildServices01/salon-pos/internal/domain/order"
	"github.com/BruksfildServices01/salon-pos/internal/domain/payment"
	"github.com/BruksfildServices01/salon-pos/internal/events"
	"github.com/BruksfildServices01/salon-pos/internal/gateway"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/lock"
	"github.com/BruksfildServices01/salon-pos/internal/metrics"
	"github.com/BruksfildServices01/salon-pos/internal/models"
	"github.com/BruksfildServices01/salon-pos/internal/timezone"
)

// Deps are shared by every flow that writes orders.
type Deps struct {
	Repo       domain.Repository
	Locker     lock.Locker
	Gateway    gateway.Gateway
	GSTPercent int64
	Audit      *audit.Dispatcher
	Events     events.Publisher
}

// cart is a fully resolved checkout ready to be priced and paid.
type cart struct {
	salonID       uint
	userID        uint
	clientID      *uint
	clientName    string
	stylistID     *uint
	appointmentID *uint
	walkIn        bool
	lines         []domain.Line
	discount      money.Amount
	payments      []PaymentInput
}

// place prices c, runs the split-payment checks, charges card payments and
// stores the order together with its client and stock effects.
func place(ctx context.Context, d Deps, c cart) (*models.Order, error) {

	salon, err := d.Repo.GetSalonByID(ctx, c.salonID)
	if err != nil {
		return nil, err
	}
	now := timezone.NowIn(salon.Timezone)

	// --------------------------------------------------
	// 1. Totals for the payment mix
	// --------------------------------------------------
	methods := methodsOf(c.payments)
	for _, m := range methods {
		if !m.Valid() {
			return nil, invalidMethod()
		}
	}

	totals, err := domain.Quote(c.lines, c.discount, methods, d.GSTPercent)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Split ledger
	// --------------------------------------------------
	ledger := payment.NewSplitLedger(totals.Total)
	details := make([]payment.Detail, 0, len(c.payments))
	for _, p := range c.payments {
		det := payment.NewDetail(p.Amount, p.Method, p.Note, now)
		if err := ledger.Add(det); err != nil {
			return nil, err
		}
		details = append(details, det)
	}

	// --------------------------------------------------
	// 3. Gateway charges, refunded if anything later fails
	// --------------------------------------------------
	stored := make([]models.PaymentDetail, 0, len(details))
	for i, det := range details {
		ref, err := charge(ctx, d.Gateway, det, c.payments[i], c.clientName)
		if err != nil {
			refundAll(ctx, d.Gateway, stored)
			return nil, err
		}
		stored = append(stored, toModel(det, ref))
	}

	// --------------------------------------------------
	// 4. Order and effects
	// --------------------------------------------------
	status := domain.Initial(ledger.Outstanding(), ledger.HasDeferred())

	o := &models.Order{
		SalonID:       c.salonID,
		ClientID:      c.clientID,
		ClientName:    c.clientName,
		StylistID:     c.stylistID,
		AppointmentID: c.appointmentID,
		WalkIn:        c.walkIn,
		Items:         toItems(c.lines),
		Payments:      stored,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Discount:      totals.Discount,
		Total:         totals.Total,
		Paid:          ledger.Collected(),
		Pending:       ledger.Outstanding(),
		PaymentMethod: methodLabel(methods),
		Status:        string(status),
	}

	fx := domain.Effects{
		ClientID:   c.clientID,
		ClientName: c.clientName,
		Spent:      ledger.Collected(),
		Owed:       ledger.Outstanding(),
		VisitedAt:  now,
		StockOut:   stockOut(c.lines),
	}
	if status == domain.StatusCompleted {
		fx.CompleteAppointment = c.appointmentID
	}

	if err := d.Repo.PlaceOrder(ctx, o, fx); err != nil {
		refundAll(ctx, d.Gateway, stored)
		return nil, err
	}

	// --------------------------------------------------
	// 5. Metrics, audit and event
	// --------------------------------------------------
	metrics.OrdersPlaced.WithLabelValues(o.Status).Inc()
	for _, p := range stored {
		metrics.PaymentsRecorded.WithLabelValues(p.Method).Inc()
	}

	d.Audit.Dispatch(audit.Event{
		SalonID:  c.salonID,
		UserID:   &c.userID,
		Action:   "order_created",
		Entity:   "order",
		EntityID: &o.ID,
		Metadata: map[string]any{
			"total":   o.Total.String(),
			"pending": o.Pending.String(),
			"walk_in": o.WalkIn,
		},
	})

	if status == domain.StatusCompleted {
		publishCompleted(ctx, d.Events, o, now)
	}

	return o, nil
}

func charge(ctx context.Context, g gateway.Gateway, det payment.Detail, in PaymentInput, payer string) (string, error) {
	if g == nil || !det.Method.Card() {
		return "", nil
	}
	res, err := g.Charge(ctx, gateway.Charge{
		OrderRef:    det.ID,
		Amount:      det.Amount,
		Method:      det.Method,
		Description: "Salon order " + payer,
		CardToken:   in.CardToken,
		CardBrand:   in.CardBrand,
		PayerEmail:  in.PayerEmail,
	})
	if err != nil {
		return "", err
	}
	return res.Ref, nil
}

// refundAll returns every captured charge in ps. Refunds run even when the
// request context is already cancelled; failures are logged for manual
// follow-up.
func refundAll(ctx context.Context, g gateway.Gateway, ps []models.PaymentDetail) {
	if g == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for _, p := range ps {
		if p.GatewayRef == "" {
			continue
		}
		if err := g.Refund(ctx, p.GatewayRef); err != nil {
			log.Printf("gateway refund failed ref=%s amount=%s method=%s err=%v", p.GatewayRef, p.Amount, p.Method, err)
		}
	}
}

// serialise runs fn under key, reporting a held lock as order_busy.
func serialise(ctx context.Context, l lock.Locker, key string, fn func(ctx context.Context) error) error {
	if l == nil {
		return fn(ctx)
	}
	err := l.WithLock(ctx, key, fn)
	if errors.Is(err, lock.ErrNotAcquired) {
		return httperr.ErrBusiness("order_busy")
	}
	return err
}

func publishCompleted(ctx context.Context, pub events.Publisher, o *models.Order, at time.Time) {
	if pub == nil {
		return
	}
	_ = pub.Publish(ctx, events.OrderCompleted, events.OrderCompletedEvent{
		SalonID:       o.SalonID,
		OrderID:       o.ID,
		AppointmentID: o.AppointmentID,
		ClientName:    o.ClientName,
		Total:         int64(o.Total),
		CompletedAt:   at,
	})
}

func toItems(lines []domain.Line) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		out = append(out, models.OrderItem{
			RefID:     l.RefID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Type:      string(l.Type),
		})
	}
	return out
}

func toModel(d payment.Detail, gatewayRef string) models.PaymentDetail {
	return models.PaymentDetail{
		Ref:        d.ID,
		Amount:     d.Amount,
		Method:     string(d.Method),
		Note:       d.Note,
		GatewayRef: gatewayRef,
		CreatedAt:  d.CreatedAt,
	}
}

func fromModels(ps []models.PaymentDetail) []payment.Detail {
	out := make([]payment.Detail, 0, len(ps))
	for _, p := range ps {
		out = append(out, payment.Detail{
			ID:        p.Ref,
			Amount:    p.Amount,
			Method:    payment.Method(p.Method),
			CreatedAt: p.CreatedAt,
			Note:      p.Note,
		})
	}
	return out
}

// methodLabel is the single method used, or "split".
func methodLabel(methods []payment.Method) string {
	switch len(methods) {
	case 0:
		return ""
	case 1:
		return string(methods[0])
	default:
		return "split"
	}
}

func invalidMethod() error {
	return httperr.ErrBusiness("invalid_payment_method")
}
