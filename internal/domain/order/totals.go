package order

import (
	"github.com/BruksfildServices01/salon-pos/internal/domain/money"
	"github.com/BruksfildServices01/salon-pos/internal/domain/payment"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
)

type ItemType string

const (
	ItemService ItemType = "service"
	ItemProduct ItemType = "product"
)

func (t ItemType) Valid() bool {
	return t == ItemService || t == ItemProduct
}

// Line is a priced line item before it is persisted.
type Line struct {
	RefID     uint         `json:"ref_id"`
	Name      string       `json:"name"`
	UnitPrice money.Amount `json:"unit_price"`
	Quantity  int          `json:"quantity"`
	Type      ItemType     `json:"type"`
}

func (l Line) Amount() money.Amount {
	q := l.Quantity
	if q <= 0 {
		q = 1
	}
	return l.UnitPrice * money.Amount(q)
}

type Totals struct {
	Subtotal money.Amount `json:"subtotal"`
	Tax      money.Amount `json:"tax"`
	Discount money.Amount `json:"discount"`
	Total    money.Amount `json:"total"`
}

// Quote prices lines for the payment mix. Total = Subtotal + Tax - Discount.
func Quote(lines []Line, discount money.Amount, methods []payment.Method, gstPercent int64) (Totals, error) {
	if len(lines) == 0 {
		return Totals{}, httperr.ErrBusiness("empty_order")
	}
	if discount < 0 {
		return Totals{}, httperr.ErrBusiness("invalid_discount")
	}

	var subtotal money.Amount
	for _, l := range lines {
		if !l.Type.Valid() {
			return Totals{}, httperr.ErrBusiness("invalid_item_type")
		}
		if l.UnitPrice < 0 {
			return Totals{}, httperr.ErrBusiness("invalid_price")
		}
		subtotal += l.Amount()
	}

	tax := payment.TaxFor(subtotal, methods, gstPercent)
	if discount > subtotal+tax {
		return Totals{}, httperr.ErrBusiness("invalid_discount")
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: discount,
		Total:    subtotal + tax - discount,
	}, nil
}
