package checkout

import (
	"context"

	"github.com/BruksfildServices01/salon-pos/internal/domain/money"
	domain "github.com/BruksfildServices01/salon-pos/internal/domain/order"
	"github.com/BruksfildServices01/salon-pos/internal/domain/payment"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
)

// LineInput points at a catalog entry. Prices always come from the catalog.
type LineInput struct {
	RefID    uint            `json:"ref_id"`
	Type     domain.ItemType `json:"type"`
	Quantity int             `json:"quantity"`
}

type PaymentInput struct {
	Amount money.Amount   `json:"amount"`
	Method payment.Method `json:"method"`
	Note   string         `json:"note"`

	// Card payments through the gateway only.
	CardToken  string `json:"card_token,omitempty"`
	CardBrand  string `json:"card_brand,omitempty"`
	PayerEmail string `json:"payer_email,omitempty"`
}

// resolveLines prices every input line from the salon's services and
// products, keeping the input order.
func resolveLines(ctx context.Context, repo domain.Repository, salonID uint, in []LineInput) ([]domain.Line, error) {
	var serviceIDs, productIDs []uint
	for _, l := range in {
		switch l.Type {
		case domain.ItemService:
			serviceIDs = append(serviceIDs, l.RefID)
		case domain.ItemProduct:
			productIDs = append(productIDs, l.RefID)
		default:
			return nil, httperr.ErrBusiness("invalid_item_type")
		}
	}

	services, err := repo.GetServices(ctx, salonID, serviceIDs)
	if err != nil {
		return nil, err
	}
	products, err := repo.GetProducts(ctx, salonID, productIDs)
	if err != nil {
		return nil, err
	}

	type priced struct {
		name  string
		price money.Amount
	}
	catalog := map[domain.ItemType]map[uint]priced{
		domain.ItemService: {},
		domain.ItemProduct: {},
	}
	for _, s := range services {
		catalog[domain.ItemService][s.ID] = priced{s.Name, s.Price}
	}
	for _, p := range products {
		catalog[domain.ItemProduct][p.ID] = priced{p.Name, p.Price}
	}

	lines := make([]domain.Line, 0, len(in))
	for _, l := range in {
		entry, ok := catalog[l.Type][l.RefID]
		if !ok {
			return nil, httperr.ErrBusiness(string(l.Type) + "_not_found")
		}
		qty := l.Quantity
		if qty <= 0 {
			qty = 1
		}
		lines = append(lines, domain.Line{
			RefID:     l.RefID,
			Name:      entry.name,
			UnitPrice: entry.price,
			Quantity:  qty,
			Type:      l.Type,
		})
	}
	return lines, nil
}

// methodsOf keeps the first-seen order of the payment methods.
func methodsOf(payments []PaymentInput) []payment.Method {
	var out []payment.Method
	seen := make(map[payment.Method]bool)
	for _, p := range payments {
		if !seen[p.Method] {
			seen[p.Method] = true
			out = append(out, p.Method)
		}
	}
	return out
}

func stockOut(lines []domain.Line) map[uint]float64 {
	out := make(map[uint]float64)
	for _, l := range lines {
		if l.Type != domain.ItemProduct {
			continue
		}
		qty := l.Quantity
		if qty <= 0 {
			qty = 1
		}
		out[l.RefID] += float64(qty)
	}
	return out
}
