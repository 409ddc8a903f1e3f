package checkout

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-pos/internal/audit"
	"github.com/BruksfildServices01/salon-pos/internal/domain/money"
	domain "github.com/BruksfildServices01/salon-pos/internal/domain/order"
	"github.com/BruksfildServices01/salon-pos/internal/domain/payment"
	"github.com/BruksfildServices01/salon-pos/internal/events"
	"github.com/BruksfildServices01/salon-pos/internal/gateway"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/infra/repository"
	"github.com/BruksfildServices01/salon-pos/internal/lock"
	"github.com/BruksfildServices01/salon-pos/internal/models"
	"github.com/BruksfildServices01/salon-pos/internal/testutil"
)

type declining struct{}

func (declining) Charge(context.Context, gateway.Charge) (gateway.Result, error) {
	return gateway.Result{}, httperr.ErrBusiness("payment_declined")
}

func (declining) Refund(context.Context, string) error { return nil }

// recordingGateway approves charges until the declineAt-th one (1-based)
// and remembers what it captured and refunded.
type recordingGateway struct {
	mu        sync.Mutex
	declineAt int
	charged   []string
	refunded  []string
}

func (g *recordingGateway) Charge(context.Context, gateway.Charge) (gateway.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.declineAt == len(g.charged)+1 {
		return gateway.Result{}, httperr.ErrBusiness("payment_declined")
	}
	ref := fmt.Sprintf("ch-%d", len(g.charged)+1)
	g.charged = append(g.charged, ref)
	return gateway.Result{Ref: ref, Status: "approved"}, nil
}

func (g *recordingGateway) Refund(_ context.Context, ref string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refunded = append(g.refunded, ref)
	return nil
}

// staleRepo hands out copies of one order as it was when the test began.
type staleRepo struct {
	domain.Repository
	snapshot models.Order
}

func (r *staleRepo) GetOrder(context.Context, uint, uint) (*models.Order, error) {
	o := r.snapshot
	o.Payments = append([]models.PaymentDetail(nil), r.snapshot.Payments...)
	return &o, nil
}

// slowRepo parks the first GetOrder until release is closed.
type slowRepo struct {
	domain.Repository
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (r *slowRepo) GetOrder(ctx context.Context, salonID, orderID uint) (*models.Order, error) {
	r.once.Do(func() {
		close(r.entered)
		<-r.release
	})
	return r.Repository.GetOrder(ctx, salonID, orderID)
}

// forgetfulRepo never sees an existing appointment order.
type forgetfulRepo struct {
	domain.Repository
}

func (forgetfulRepo) FindOrderForAppointment(context.Context, uint, uint) (*models.Order, error) {
	return nil, nil
}

type env struct {
	db       *gorm.DB
	deps     Deps
	recorder *events.Recorder
	salonID  uint
	haircut  models.Service
	serum    models.Product
	stylist  models.Stylist
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.NewDB(t)
	salon := testutil.SeedSalon(t, db, "Asia/Kolkata")

	haircut := models.Service{SalonID: salon.ID, Name: "Haircut", DurationMin: 60, Price: money.Rupees(1000), Active: true}
	require.NoError(t, db.Create(&haircut).Error)
	serum := models.Product{SalonID: salon.ID, Name: "Serum", HSNCode: "3305", Price: money.Rupees(250), Stock: 5}
	require.NoError(t, db.Create(&serum).Error)
	stylist := models.Stylist{SalonID: salon.ID, Name: "Asha", Available: true}
	require.NoError(t, db.Create(&stylist).Error)

	d := audit.NewDispatcher(audit.New(db))
	t.Cleanup(d.Close)

	rec := &events.Recorder{}
	return &env{
		db:       db,
		recorder: rec,
		salonID:  salon.ID,
		haircut:  haircut,
		serum:    serum,
		stylist:  stylist,
		deps: Deps{
			Repo:       repository.NewOrderGormRepository(db),
			Gateway:    gateway.Offline{},
			GSTPercent: payment.DefaultGSTPercent,
			Audit:      d,
			Events:     rec,
		},
	}
}

func (e *env) haircutLine() LineInput {
	return LineInput{RefID: e.haircut.ID, Type: domain.ItemService}
}

func TestQuote_TaxFollowsPaymentMix(t *testing.T) {
	e := newEnv(t)
	uc := NewQuoteOrder(e.deps.Repo, e.deps.GSTPercent)
	ctx := context.Background()

	cash, err := uc.Execute(ctx, QuoteInput{
		SalonID:  e.salonID,
		Lines:    []LineInput{e.haircutLine()},
		Discount: money.Rupees(100),
		Methods:  []payment.Method{payment.MethodCash},
	})
	require.NoError(t, err)
	assert.Equal(t, money.Amount(0), cash.Totals.Tax)
	assert.Equal(t, money.Rupees(900), cash.Totals.Total)
	assert.Equal(t, "Haircut", cash.Lines[0].Name)

	mixed, err := uc.Execute(ctx, QuoteInput{
		SalonID: e.salonID,
		Lines:   []LineInput{e.haircutLine()},
		Methods: []payment.Method{payment.MethodCash, payment.MethodUPI},
	})
	require.NoError(t, err)
	assert.Equal(t, money.Rupees(180), mixed.Totals.Tax)
	assert.Equal(t, money.Rupees(1180), mixed.Totals.Total)

	_, err = uc.Execute(ctx, QuoteInput{
		SalonID: e.salonID,
		Lines:   []LineInput{{RefID: 999, Type: domain.ItemProduct}},
	})
	assert.True(t, httperr.IsBusiness(err, "product_not_found"))
}

func TestWalkIn_SplitPaymentCompletes(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	o, err := NewWalkInCheckout(e.deps).Execute(ctx, WalkInInput{
		SalonID:    e.salonID,
		UserID:     1,
		ClientName: "Kiran",
		StylistID:  &e.stylist.ID,
		Lines: []LineInput{
			e.haircutLine(),
			{RefID: e.serum.ID, Type: domain.ItemProduct, Quantity: 2},
		},
		Payments: []PaymentInput{
			{Amount: money.Rupees(400), Method: payment.MethodCash},
			{Amount: money.Rupees(1370), Method: payment.MethodUPI},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, money.Rupees(1500), o.Subtotal)
	assert.Equal(t, money.Rupees(270), o.Tax)
	assert.Equal(t, money.Rupees(1770), o.Total)
	assert.Equal(t, money.Amount(0), o.Pending)
	assert.Equal(t, string(domain.StatusCompleted), o.Status)
	assert.Equal(t, "split", o.PaymentMethod)
	assert.True(t, o.WalkIn)
	assert.Equal(t, []string{events.OrderCompleted}, e.recorder.Queues())

	var serum models.Product
	require.NoError(t, e.db.First(&serum, e.serum.ID).Error)
	assert.Equal(t, 3.0, serum.Stock)

	var client models.Client
	require.NoError(t, e.db.First(&client, *o.ClientID).Error)
	assert.Equal(t, money.Rupees(1770), client.TotalSpent)
	assert.Equal(t, money.Amount(0), client.PendingBalance)
	require.NotNil(t, client.LastVisit)
}

func TestWalkIn_RejectsThirdMethodAndOverpay(t *testing.T) {
	e := newEnv(t)
	uc := NewWalkInCheckout(e.deps)
	ctx := context.Background()

	_, err := uc.Execute(ctx, WalkInInput{
		SalonID: e.salonID,
		Lines:   []LineInput{e.haircutLine()},
		Payments: []PaymentInput{
			{Amount: money.Rupees(400), Method: payment.MethodCash},
			{Amount: money.Rupees(500), Method: payment.MethodUPI},
			{Amount: money.Rupees(100), Method: payment.MethodDebitCard},
		},
	})
	assert.True(t, httperr.IsBusiness(err, "max_payment_methods"))

	_, err = uc.Execute(ctx, WalkInInput{
		SalonID:  e.salonID,
		Lines:    []LineInput{e.haircutLine()},
		Payments: []PaymentInput{{Amount: money.Rupees(1001), Method: payment.MethodCash}},
	})
	assert.True(t, httperr.IsBusiness(err, "amount_exceeds_pending"))

	_, err = uc.Execute(ctx, WalkInInput{
		SalonID:  e.salonID,
		Lines:    []LineInput{e.haircutLine()},
		Payments: []PaymentInput{{Amount: 0, Method: payment.MethodCash}},
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_amount"))

	var count int64
	require.NoError(t, e.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWalkIn_DeclinedCardStoresNothing(t *testing.T) {
	e := newEnv(t)
	e.deps.Gateway = declining{}

	_, err := NewWalkInCheckout(e.deps).Execute(context.Background(), WalkInInput{
		SalonID:  e.salonID,
		Lines:    []LineInput{e.haircutLine()},
		Payments: []PaymentInput{{Amount: money.Rupees(1180), Method: payment.MethodCreditCard}},
	})
	assert.True(t, httperr.IsBusiness(err, "payment_declined"))

	var count int64
	require.NoError(t, e.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWalkIn_DeclinedSecondChargeRefundsFirst(t *testing.T) {
	e := newEnv(t)
	gw := &recordingGateway{declineAt: 2}
	e.deps.Gateway = gw

	_, err := NewWalkInCheckout(e.deps).Execute(context.Background(), WalkInInput{
		SalonID: e.salonID,
		Lines:   []LineInput{e.haircutLine()},
		Payments: []PaymentInput{
			{Amount: money.Rupees(500), Method: payment.MethodCreditCard, CardToken: "tok"},
			{Amount: money.Rupees(680), Method: payment.MethodUPI},
		},
	})
	assert.True(t, httperr.IsBusiness(err, "payment_declined"))
	assert.Equal(t, []string{"ch-1"}, gw.charged)
	assert.Equal(t, []string{"ch-1"}, gw.refunded)

	var count int64
	require.NoError(t, e.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func (e *env) bnplOrder(t *testing.T) *models.Order {
	t.Helper()

	o, err := NewWalkInCheckout(e.deps).Execute(context.Background(), WalkInInput{
		SalonID:    e.salonID,
		ClientName: "Nila",
		Lines:      []LineInput{e.haircutLine()},
		Payments: []PaymentInput{
			{Amount: money.Rupees(590), Method: payment.MethodCash},
			{Amount: money.Rupees(590), Method: payment.MethodBNPL},
		},
	})
	require.NoError(t, err)
	return o
}

func TestRecordPayment_StaleBalanceIsRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	o := e.bnplOrder(t)

	snapshot, err := e.deps.Repo.GetOrder(ctx, e.salonID, o.ID)
	require.NoError(t, err)

	gw := &recordingGateway{}
	deps := e.deps
	deps.Repo = &staleRepo{Repository: e.deps.Repo, snapshot: *snapshot}
	deps.Gateway = gw
	record := NewRecordPayment(deps)

	settle := RecordPaymentInput{
		SalonID: e.salonID, OrderID: o.ID,
		Payment: PaymentInput{Amount: money.Rupees(590), Method: payment.MethodUPI},
	}
	_, err = record.Execute(ctx, settle)
	require.NoError(t, err)

	_, err = record.Execute(ctx, settle)
	assert.True(t, httperr.IsBusiness(err, "order_changed"))
	assert.Equal(t, []string{"ch-1", "ch-2"}, gw.charged)
	assert.Equal(t, []string{"ch-2"}, gw.refunded)

	var payments int64
	require.NoError(t, e.db.Model(&models.PaymentDetail{}).Where("order_id = ?", o.ID).Count(&payments).Error)
	assert.EqualValues(t, 3, payments)

	var stored models.Order
	require.NoError(t, e.db.First(&stored, o.ID).Error)
	assert.Equal(t, money.Rupees(1180), stored.Paid)
	assert.Equal(t, money.Amount(0), stored.Pending)

	var client models.Client
	require.NoError(t, e.db.First(&client, *o.ClientID).Error)
	assert.Equal(t, money.Rupees(1180), client.TotalSpent)
}

func TestRecordPayment_SerialisedPerOrder(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	o := e.bnplOrder(t)

	slow := &slowRepo{
		Repository: e.deps.Repo,
		entered:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	deps := e.deps
	deps.Repo = slow
	deps.Locker = lock.NewLocalLocker()
	record := NewRecordPayment(deps)

	settle := RecordPaymentInput{
		SalonID: e.salonID, OrderID: o.ID,
		Payment: PaymentInput{Amount: money.Rupees(590), Method: payment.MethodCash},
	}

	done := make(chan error, 1)
	go func() {
		_, err := record.Execute(ctx, settle)
		done <- err
	}()
	<-slow.entered

	_, err := record.Execute(ctx, settle)
	assert.True(t, httperr.IsBusiness(err, "order_busy"))

	close(slow.release)
	require.NoError(t, <-done)

	_, err = record.Execute(ctx, settle)
	assert.True(t, httperr.IsBusiness(err, "order_not_pending"))
}

func TestBNPL_ThenSettle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	o, err := NewWalkInCheckout(e.deps).Execute(ctx, WalkInInput{
		SalonID:    e.salonID,
		ClientName: "Nila",
		Lines:      []LineInput{e.haircutLine()},
		Payments: []PaymentInput{
			{Amount: money.Rupees(590), Method: payment.MethodCash},
			{Amount: money.Rupees(590), Method: payment.MethodBNPL},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), o.Status)
	assert.Equal(t, money.Rupees(590), o.Paid)
	assert.Equal(t, money.Rupees(590), o.Pending)
	assert.Empty(t, e.recorder.Queues())

	record := NewRecordPayment(e.deps)

	_, err = record.Execute(ctx, RecordPaymentInput{
		SalonID: e.salonID, OrderID: o.ID,
		Payment: PaymentInput{Amount: money.Rupees(100), Method: payment.MethodBNPL},
	})
	assert.True(t, httperr.IsBusiness(err, "deferred_settlement"))

	_, err = record.Execute(ctx, RecordPaymentInput{
		SalonID: e.salonID, OrderID: o.ID,
		Payment: PaymentInput{Amount: money.Rupees(600), Method: payment.MethodUPI},
	})
	assert.True(t, httperr.IsBusiness(err, "amount_exceeds_pending"))

	settled, err := record.Execute(ctx, RecordPaymentInput{
		SalonID: e.salonID, OrderID: o.ID,
		Payment: PaymentInput{Amount: money.Rupees(590), Method: payment.MethodUPI},
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), settled.Status)
	assert.Equal(t, money.Amount(0), settled.Pending)
	assert.Equal(t, money.Rupees(1180), settled.Paid)
	assert.Equal(t, []string{events.OrderCompleted}, e.recorder.Queues())

	var client models.Client
	require.NoError(t, e.db.First(&client, *o.ClientID).Error)
	assert.Equal(t, money.Rupees(1180), client.TotalSpent)
	assert.Equal(t, money.Amount(0), client.PendingBalance)

	_, err = record.Execute(ctx, RecordPaymentInput{
		SalonID: e.salonID, OrderID: o.ID,
		Payment: PaymentInput{Amount: money.Rupees(1), Method: payment.MethodCash},
	})
	assert.True(t, httperr.IsBusiness(err, "order_not_pending"))
}

func TestAppointmentCheckout(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	client := models.Client{SalonID: e.salonID, Name: "Meera"}
	require.NoError(t, e.db.Create(&client).Error)

	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	ap := models.Appointment{
		SalonID: e.salonID, StylistID: e.stylist.ID, ServiceID: e.haircut.ID, ClientID: &client.ID,
		StartTime: start, EndTime: start.Add(time.Hour), Status: "scheduled",
	}
	require.NoError(t, e.db.Omit("Stylist", "Client", "Service").Create(&ap).Error)

	uc := NewAppointmentCheckout(e.deps)
	o, err := uc.Execute(ctx, AppointmentCheckoutInput{
		SalonID:       e.salonID,
		AppointmentID: ap.ID,
		Payments:      []PaymentInput{{Amount: money.Rupees(1000), Method: payment.MethodCash}},
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), o.Status)
	assert.Equal(t, "Meera", o.ClientName)
	assert.Equal(t, client.ID, *o.ClientID)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Haircut", o.Items[0].Name)

	var stored models.Appointment
	require.NoError(t, e.db.First(&stored, ap.ID).Error)
	assert.Equal(t, "completed", stored.Status)

	_, err = uc.Execute(ctx, AppointmentCheckoutInput{SalonID: e.salonID, AppointmentID: ap.ID})
	assert.True(t, httperr.IsBusiness(err, "order_exists"))
}

func TestCancelOrder(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	o, err := NewWalkInCheckout(e.deps).Execute(ctx, WalkInInput{
		SalonID: e.salonID,
		Lines:   []LineInput{e.haircutLine()},
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), o.Status)
	assert.Equal(t, money.Rupees(1180), o.Pending)

	cancel := NewCancelOrder(e.deps)
	cancelled, err := cancel.Execute(ctx, e.salonID, 1, o.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)

	_, err = cancel.Execute(ctx, e.salonID, 1, o.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestAppointmentCheckout_RacingCheckoutIsRefunded(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	ap := models.Appointment{
		SalonID: e.salonID, StylistID: e.stylist.ID, ServiceID: e.haircut.ID,
		StartTime: start, EndTime: start.Add(time.Hour), Status: "scheduled",
	}
	require.NoError(t, e.db.Omit("Stylist", "Client", "Service").Create(&ap).Error)

	gw := &recordingGateway{}
	deps := e.deps
	deps.Repo = forgetfulRepo{Repository: e.deps.Repo}
	deps.Gateway = gw
	deps.Locker = lock.NewLocalLocker()
	uc := NewAppointmentCheckout(deps)

	in := AppointmentCheckoutInput{
		SalonID:       e.salonID,
		AppointmentID: ap.ID,
		Payments:      []PaymentInput{{Amount: money.Rupees(1180), Method: payment.MethodCreditCard, CardToken: "tok"}},
	}
	_, err := uc.Execute(ctx, in)
	require.NoError(t, err)

	_, err = uc.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "order_exists"))
	assert.Equal(t, []string{"ch-1", "ch-2"}, gw.charged)
	assert.Equal(t, []string{"ch-2"}, gw.refunded)

	var orders int64
	require.NoError(t, e.db.Model(&models.Order{}).Where("appointment_id = ?", ap.ID).Count(&orders).Error)
	assert.EqualValues(t, 1, orders)
}
