package httperr

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// conflicts are business codes answered with 409.
var conflicts = map[string]bool{
	"break_conflict":     true,
	"stylist_busy":       true,
	"invalid_state":      true,
	"order_not_pending":  true,
	"email_already_used": true,
	"slug_already_used":  true,
	"duplicate_entry":    true,
	"order_exists":       true,
	"order_changed":      true,
	"order_busy":         true,
}

var messages = map[string]string{
	"break_conflict":           "The selected time overlaps a break for this stylist.",
	"stylist_busy":             "Another booking for this stylist is in progress, try again.",
	"invalid_state":            "The record cannot change from its current status.",
	"order_not_pending":        "The order has no pending balance.",
	"invalid_amount":           "Payment amount must be greater than zero.",
	"amount_exceeds_pending":   "Payment amount exceeds the remaining balance.",
	"max_payment_methods":      "A split payment may use at most 2 methods.",
	"duplicate_payment_method": "Each payment method may be used only once.",
	"invalid_payment_method":   "Unknown payment method.",
	"invalid_time_range":       "End time must be after start time.",
	"service_inactive":         "This service is no longer offered.",
	"invalid_service_duration": "The service has no duration set.",
	"outside_business_hours":   "The selected time is outside business hours.",
	"invalid_date_or_time":     "Invalid date or time.",
	"invalid_discount":         "Discount cannot exceed the order total.",
	"empty_order":              "An order needs at least one item.",
	"payment_declined":         "The payment was declined by the gateway.",
	"order_exists":             "This appointment has already been checked out.",
	"deferred_settlement":      "Buy-now-pay-later cannot settle an open balance.",
	"order_changed":            "The order balance changed, reload and try again.",
	"order_busy":               "Another payment for this order is in progress, try again.",
	"card_token_required":      "Card payments need a card token from the payment form.",
	"payer_email_required":     "Card payments need the payer's email.",
}

// Status maps a business code onto its HTTP status.
func Status(code string) int {
	switch {
	case conflicts[code]:
		return http.StatusConflict
	case strings.HasSuffix(code, "_not_found"):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// Message returns the default user-facing text for a code.
func Message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	if strings.HasSuffix(code, "_not_found") {
		return strings.ReplaceAll(strings.TrimSuffix(code, "_not_found"), "_", " ") + " not found."
	}
	return "Invalid request."
}

// FromError writes err as JSON. Business errors keep their code; anything
// else is logged and answered with fallbackCode as a 500.
func FromError(c *gin.Context, err error, fallbackCode string) {
	if be, ok := AsBusiness(err); ok {
		msg := be.Message
		if msg == "" {
			msg = Message(be.Code)
		}
		Write(c, Status(be.Code), be.Code, msg)
		return
	}

	if IsUniqueViolation(err) {
		Conflict(c, "duplicate_entry", "A record with the same identity already exists.")
		return
	}

	log.Printf("request failed path=%s code=%s err=%v", c.FullPath(), fallbackCode, err)
	Internal(c, fallbackCode, "Internal error.")
}
