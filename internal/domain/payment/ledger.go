package payment

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-pos/internal/domain/money"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
)

// MaxSplitMethods caps the distinct methods accepted in one checkout.
const MaxSplitMethods = 2

// Detail is a single payment recorded against an order.
type Detail struct {
	ID        string       `json:"id"`
	Amount    money.Amount `json:"amount"`
	Method    Method       `json:"method"`
	CreatedAt time.Time    `json:"created_at"`
	Note      string       `json:"note,omitempty"`
}

// NewDetail stamps a fresh id and timestamp.
func NewDetail(amount money.Amount, method Method, note string, now time.Time) Detail {
	return Detail{
		ID:        uuid.NewString(),
		Amount:    amount,
		Method:    method,
		CreatedAt: now,
		Note:      note,
	}
}

// Ledger accumulates payments against a fixed order total.
//
// Split mode enforces the checkout limits (two distinct methods, no method
// twice). Settlement mode only checks the amount against what is pending.
type Ledger struct {
	total   money.Amount
	details []Detail
	split   bool
}

// NewSplitLedger is used while building a checkout.
func NewSplitLedger(total money.Amount) *Ledger {
	return &Ledger{total: total, split: true}
}

// NewSettlementLedger wraps an existing order's payments for post-hoc
// settlement. Deferred entries are owed, not collected, so they do not
// reduce what is pending.
func NewSettlementLedger(total money.Amount, existing []Detail) *Ledger {
	l := &Ledger{total: total}
	for _, d := range existing {
		if !d.Method.Deferred() {
			l.details = append(l.details, d)
		}
	}
	return l
}

func (l *Ledger) Total() money.Amount { return l.total }

func (l *Ledger) Details() []Detail {
	out := make([]Detail, len(l.details))
	copy(out, l.details)
	return out
}

func (l *Ledger) Paid() money.Amount {
	var paid money.Amount
	for _, d := range l.details {
		paid += d.Amount
	}
	return paid
}

// Pending never goes negative and snaps to zero inside money.Tolerance.
func (l *Ledger) Pending() money.Amount {
	return money.Outstanding(l.total, l.Paid())
}

func (l *Ledger) Methods() []Method {
	var out []Method
	seen := make(map[Method]bool)
	for _, d := range l.details {
		if !seen[d.Method] {
			seen[d.Method] = true
			out = append(out, d.Method)
		}
	}
	return out
}

// Deferred sums the amounts recorded with a deferred method.
func (l *Ledger) Deferred() money.Amount {
	var sum money.Amount
	for _, d := range l.details {
		if d.Method.Deferred() {
			sum += d.Amount
		}
	}
	return sum
}

func (l *Ledger) HasDeferred() bool {
	return l.Deferred() > 0
}

// Collected is the money actually received.
func (l *Ledger) Collected() money.Amount {
	return l.Paid() - l.Deferred()
}

// Outstanding is what the client still owes once deferred amounts are
// counted as unpaid.
func (l *Ledger) Outstanding() money.Amount {
	return money.Outstanding(l.total, l.Collected())
}

// Add validates d against the current balance and appends it.
func (l *Ledger) Add(d Detail) error {
	if d.Amount <= 0 {
		return httperr.ErrBusiness("invalid_amount")
	}
	if !d.Method.Valid() {
		return httperr.ErrBusiness("invalid_payment_method")
	}
	if d.Amount > l.Pending() {
		return httperr.ErrBusiness("amount_exceeds_pending")
	}

	if l.split {
		for _, existing := range l.details {
			if existing.Method == d.Method {
				return httperr.ErrBusiness("duplicate_payment_method")
			}
		}
		if len(l.Methods()) >= MaxSplitMethods {
			return httperr.ErrBusiness("max_payment_methods")
		}
	}

	l.details = append(l.details, d)
	return nil
}

// Remove drops the payment with the given id.
func (l *Ledger) Remove(id string) error {
	for i, d := range l.details {
		if d.ID == id {
			l.details = append(l.details[:i], l.details[i+1:]...)
			return nil
		}
	}
	return httperr.ErrBusiness("payment_not_found")
}
