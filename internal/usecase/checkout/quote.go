package checkout

import (
	"context"

	"github.com/BruksfildServices01/salon-pos/internal/domain/money"
	domain "github.com/BruksfildServices01/salon-pos/internal/domain/order"
	"github.com/BruksfildServices01/salon-pos/internal/domain/payment"
)

type QuoteInput struct {
	SalonID  uint
	Lines    []LineInput
	Discount money.Amount
	Methods  []payment.Method
}

type QuoteResult struct {
	Lines  []domain.Line `json:"lines"`
	Totals domain.Totals `json:"totals"`
}

// QuoteOrder prices a cart for a payment mix without persisting anything.
type QuoteOrder struct {
	repo       domain.Repository
	gstPercent int64
}

func NewQuoteOrder(repo domain.Repository, gstPercent int64) *QuoteOrder {
	return &QuoteOrder{repo: repo, gstPercent: gstPercent}
}

func (uc *QuoteOrder) Execute(ctx context.Context, in QuoteInput) (*QuoteResult, error) {
	for _, m := range in.Methods {
		if !m.Valid() {
			return nil, invalidMethod()
		}
	}

	lines, err := resolveLines(ctx, uc.repo, in.SalonID, in.Lines)
	if err != nil {
		return nil, err
	}

	totals, err := domain.Quote(lines, in.Discount, in.Methods, uc.gstPercent)
	if err != nil {
		return nil, err
	}
	return &QuoteResult{Lines: lines, Totals: totals}, nil
}
