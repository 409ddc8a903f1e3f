package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-pos/internal/domain/money"
	domain "github.com/BruksfildServices01/salon-pos/internal/domain/order"
	"github.com/BruksfildServices01/salon-pos/internal/domain/payment"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/httpresp"
	"github.com/BruksfildServices01/salon-pos/internal/middleware"
	"github.com/BruksfildServices01/salon-pos/internal/timezone"
	ucCheckout "github.com/BruksfildServices01/salon-pos/internal/usecase/checkout"
	ucReport "github.com/BruksfildServices01/salon-pos/internal/usecase/report"
)

// ======================================================
// HANDLER
// ======================================================

type OrderHandler struct {
	repo        domain.Repository
	quote       *ucCheckout.QuoteOrder
	walkIn      *ucCheckout.WalkInCheckout
	appointment *ucCheckout.AppointmentCheckout
	pay         *ucCheckout.RecordPayment
	cancel      *ucCheckout.CancelOrder
	export      *ucReport.ExportOrders
}

func NewOrderHandler(
	repo domain.Repository,
	quote *ucCheckout.QuoteOrder,
	walkIn *ucCheckout.WalkInCheckout,
	appointment *ucCheckout.AppointmentCheckout,
	pay *ucCheckout.RecordPayment,
	cancel *ucCheckout.CancelOrder,
	export *ucReport.ExportOrders,
) *OrderHandler {
	return &OrderHandler{
		repo:        repo,
		quote:       quote,
		walkIn:      walkIn,
		appointment: appointment,
		pay:         pay,
		cancel:      cancel,
		export:      export,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// Amounts are rupees on the wire.
type QuoteRequest struct {
	Lines    []ucCheckout.LineInput `json:"lines" binding:"required"`
	Discount money.Amount           `json:"discount"`
	Methods  []payment.Method       `json:"methods"`
}

type WalkInRequest struct {
	ClientID   *uint                     `json:"client_id"`
	ClientName string                    `json:"client_name"`
	StylistID  *uint                     `json:"stylist_id"`
	Lines      []ucCheckout.LineInput    `json:"lines" binding:"required"`
	Discount   money.Amount              `json:"discount"`
	Payments   []ucCheckout.PaymentInput `json:"payments"`
}

type AppointmentCheckoutRequest struct {
	Extra    []ucCheckout.LineInput    `json:"extra"`
	Discount money.Amount              `json:"discount"`
	Payments []ucCheckout.PaymentInput `json:"payments"`
}

// ======================================================
// CHECKOUT
// ======================================================

func (h *OrderHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.quote.Execute(c.Request.Context(), ucCheckout.QuoteInput{
		SalonID:  middleware.SalonID(c),
		Lines:    req.Lines,
		Discount: req.Discount,
		Methods:  req.Methods,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_quote_order")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *OrderHandler) WalkIn(c *gin.Context) {
	var req WalkInRequest
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.walkIn.Execute(c.Request.Context(), ucCheckout.WalkInInput{
		SalonID:    middleware.SalonID(c),
		UserID:     middleware.UserID(c),
		ClientID:   req.ClientID,
		ClientName: req.ClientName,
		StylistID:  req.StylistID,
		Lines:      req.Lines,
		Discount:   req.Discount,
		Payments:   req.Payments,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_order")
		return
	}
	httpresp.Created(c, o)
}

func (h *OrderHandler) CheckoutAppointment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req AppointmentCheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.appointment.Execute(c.Request.Context(), ucCheckout.AppointmentCheckoutInput{
		SalonID:       middleware.SalonID(c),
		UserID:        middleware.UserID(c),
		AppointmentID: id,
		Extra:         req.Extra,
		Discount:      req.Discount,
		Payments:      req.Payments,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_order")
		return
	}
	httpresp.Created(c, o)
}

func (h *OrderHandler) RecordPayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ucCheckout.PaymentInput
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.pay.Execute(c.Request.Context(), ucCheckout.RecordPaymentInput{
		SalonID: middleware.SalonID(c),
		UserID:  middleware.UserID(c),
		OrderID: id,
		Payment: req,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_record_payment")
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	o, err := h.cancel.Execute(c.Request.Context(), middleware.SalonID(c), middleware.UserID(c), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_cancel_order")
		return
	}
	c.JSON(http.StatusOK, o)
}

// ======================================================
// READ
// ======================================================

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	o, err := h.repo.GetOrder(c.Request.Context(), middleware.SalonID(c), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_order")
		return
	}
	c.JSON(http.StatusOK, o)
}

// List filters by ?from=&to= (salon-local dates), ?status= and ?limit=.
func (h *OrderHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	salonID := middleware.SalonID(c)

	filter := domain.ListFilter{Status: domain.Status(c.Query("status"))}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httperr.BadRequest(c, "invalid_limit", "Invalid limit.")
			return
		}
		filter.Limit = n
	}

	if from, to := c.Query("from"), c.Query("to"); from != "" || to != "" {
		salon, err := h.repo.GetSalonByID(ctx, salonID)
		if err != nil {
			httperr.FromError(c, err, "failed_to_list_orders")
			return
		}
		start, end, err := ucReport.Range(from, to, timezone.Location(salon.Timezone), timezone.NowIn(salon.Timezone))
		if err != nil {
			httperr.FromError(c, err, "failed_to_list_orders")
			return
		}
		start, end = start.UTC(), end.UTC()
		filter.From, filter.To = &start, &end
	}

	orders, err := h.repo.ListOrders(ctx, salonID, filter)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_orders")
		return
	}
	httpresp.List(c, orders, filter.Limit)
}

func (h *OrderHandler) Export(c *gin.Context) {
	file, err := h.export.Execute(c.Request.Context(), ucReport.ExportInput{
		SalonID: middleware.SalonID(c),
		Format:  c.DefaultQuery("format", "csv"),
		From:    c.Query("from"),
		To:      c.Query("to"),
		Status:  c.Query("status"),
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_export_orders")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Body)
}
