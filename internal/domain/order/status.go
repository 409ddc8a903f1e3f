package order

import (
	"github.com/BruksfildServices01/salon-pos/internal/domain/money"
	"github.com/BruksfildServices01/salon-pos/internal/domain/payment"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
)

// ===============================
// Order Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Initial picks the status of a freshly placed order. Any deferred payment
// keeps the order open even when the amounts add up.
func Initial(pending money.Amount, hasDeferred bool) Status {
	if pending > 0 || hasDeferred {
		return StatusPending
	}
	return StatusCompleted
}

// AfterPayment moves a pending order forward once its balance settles.
func AfterPayment(current Status, l *payment.Ledger) Status {
	if current != StatusPending {
		return current
	}
	if l.Pending() == 0 {
		return StatusCompleted
	}
	return StatusPending
}

// CanAcceptPayment only allows settlement of open orders.
func CanAcceptPayment(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("order_not_pending")
	}
	return nil
}

// CanCancel rejects cancelling twice.
func CanCancel(current Status) error {
	if current == StatusCancelled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
