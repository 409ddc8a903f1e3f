package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-pos/internal/domain/money"
)

type SalesTotals struct {
	Orders   int64        `json:"orders"`
	Subtotal money.Amount `json:"subtotal"`
	Tax      money.Amount `json:"tax"`
	Discount money.Amount `json:"discount"`
	Total    money.Amount `json:"total"`
	Pending  money.Amount `json:"pending"`
}

type MethodTotal struct {
	Method   string       `json:"method"`
	Payments int64        `json:"payments"`
	Amount   money.Amount `json:"amount"`
}

type SalesReportRepository struct {
	db *gorm.DB
}

func NewSalesReportRepository(db *gorm.DB) *SalesReportRepository {
	return &SalesReportRepository{db: db}
}

// Totals aggregates non-cancelled orders created in [from, to).
func (r *SalesReportRepository) Totals(
	ctx context.Context,
	salonID uint,
	from, to time.Time,
) (SalesTotals, error) {

	query, args, err := sq.
		Select(
			"COUNT(*) AS orders",
			"COALESCE(SUM(subtotal), 0) AS subtotal",
			"COALESCE(SUM(tax), 0) AS tax",
			"COALESCE(SUM(discount), 0) AS discount",
			"COALESCE(SUM(total), 0) AS total",
			"COALESCE(SUM(pending), 0) AS pending",
		).
		From("orders").
		Where(sq.Eq{"salon_id": salonID}).
		Where(sq.NotEq{"status": "cancelled"}).
		Where(sq.GtOrEq{"created_at": from}).
		Where(sq.Lt{"created_at": to}).
		ToSql()
	if err != nil {
		return SalesTotals{}, err
	}

	var out SalesTotals
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&out).Error; err != nil {
		return SalesTotals{}, err
	}
	return out, nil
}

// ByMethod sums payments received in [from, to) per method.
func (r *SalesReportRepository) ByMethod(
	ctx context.Context,
	salonID uint,
	from, to time.Time,
) ([]MethodTotal, error) {

	query, args, err := sq.
		Select(
			"p.method AS method",
			"COUNT(*) AS payments",
			"COALESCE(SUM(p.amount), 0) AS amount",
		).
		From("payment_details p").
		Join("orders o ON o.id = p.order_id").
		Where(sq.Eq{"o.salon_id": salonID}).
		Where(sq.NotEq{"o.status": "cancelled"}).
		Where(sq.GtOrEq{"p.created_at": from}).
		Where(sq.Lt{"p.created_at": to}).
		GroupBy("p.method").
		OrderBy("p.method").
		ToSql()
	if err != nil {
		return nil, err
	}

	var out []MethodTotal
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
