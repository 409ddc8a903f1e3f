package gateway

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/refund"

	"github.com/BruksfildServices01/salon-pos/internal/domain/payment"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
)

// defaultBrands is used when the card form did not report a brand.
var defaultBrands = map[payment.Method]string{
	payment.MethodCreditCard: "visa",
	payment.MethodDebitCard:  "debvisa",
}

type MercadoPago struct {
	payments mppayment.Client
	refunds  refund.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{
		payments: mppayment.NewClient(cfg),
		refunds:  refund.NewClient(cfg),
	}, nil
}

func (g *MercadoPago) Charge(ctx context.Context, c Charge) (Result, error) {
	if c.Method == payment.MethodUPI {
		return Offline{}.Charge(ctx, c)
	}

	req, err := buildRequest(c)
	if err != nil {
		return Result{}, err
	}

	res, err := g.payments.Create(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("mercadopago create: %w", err)
	}

	return interpret(strconv.Itoa(res.ID), res.Status)
}

func (g *MercadoPago) Refund(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	id, err := strconv.Atoi(ref)
	if err != nil {
		return fmt.Errorf("mercadopago refund %q: %w", ref, err)
	}
	if _, err := g.refunds.Create(ctx, id); err != nil {
		return fmt.Errorf("mercadopago refund %d: %w", id, err)
	}
	return nil
}

// buildRequest turns a card charge into a single-instalment payment.
func buildRequest(c Charge) (mppayment.Request, error) {
	brand := c.CardBrand
	if brand == "" {
		var ok bool
		if brand, ok = defaultBrands[c.Method]; !ok {
			return mppayment.Request{}, httperr.ErrBusiness("invalid_payment_method")
		}
	}
	if c.CardToken == "" {
		return mppayment.Request{}, httperr.ErrBusiness("card_token_required")
	}
	if c.PayerEmail == "" {
		return mppayment.Request{}, httperr.ErrBusiness("payer_email_required")
	}

	amount, _ := c.Amount.Decimal().Float64()
	return mppayment.Request{
		TransactionAmount: amount,
		Token:             c.CardToken,
		PaymentMethodID:   brand,
		Installments:      1,
		Description:       c.Description,
		ExternalReference: c.OrderRef,
		Payer: &mppayment.PayerRequest{
			Email: c.PayerEmail,
		},
	}, nil
}

func interpret(ref, status string) (Result, error) {
	switch status {
	case "rejected", "cancelled":
		return Result{}, httperr.ErrBusiness("payment_declined")
	}
	return Result{Ref: ref, Status: status}, nil
}
