// Package gateway charges card payments through an external processor and
// refunds them when the order they belong to cannot be stored. Cash and
// deferred payments never reach it; UPI is collected on the salon's own QR
// terminal.
package gateway

import (
	"context"

	"github.com/BruksfildServices01/salon-pos/internal/domain/money"
	"github.com/BruksfildServices01/salon-pos/internal/domain/payment"
)

type Charge struct {
	OrderRef    string
	Amount      money.Amount
	Method      payment.Method
	Description string

	// CardToken and CardBrand come from the processor's client-side card
	// form; the card number never reaches the API.
	CardToken  string
	CardBrand  string
	PayerEmail string
}

type Result struct {
	Ref    string
	Status string
}

type Gateway interface {
	Charge(ctx context.Context, c Charge) (Result, error)
	// Refund returns a captured charge in full. An empty ref is a no-op.
	Refund(ctx context.Context, ref string) error
}

// Offline records the payment as taken on a physical terminal.
type Offline struct{}

func (Offline) Charge(context.Context, Charge) (Result, error) {
	return Result{Status: "offline"}, nil
}

func (Offline) Refund(context.Context, string) error {
	return nil
}
