// Package report builds the read-only sales views: totals and exports.
package report

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/infra/repository"
	"github.com/BruksfildServices01/salon-pos/internal/models"
	"github.com/BruksfildServices01/salon-pos/internal/timezone"
)

type SalonReader interface {
	GetSalonByID(ctx context.Context, id uint) (*models.Salon, error)
}

type SalesRepository interface {
	Totals(ctx context.Context, salonID uint, from, to time.Time) (repository.SalesTotals, error)
	ByMethod(ctx context.Context, salonID uint, from, to time.Time) ([]repository.MethodTotal, error)
}

type SalesReport struct {
	From     string                   `json:"from"`
	To       string                   `json:"to"`
	Totals   repository.SalesTotals   `json:"totals"`
	ByMethod []repository.MethodTotal `json:"by_method"`
}

type GetSalesReport struct {
	salons SalonReader
	repo   SalesRepository
}

func NewGetSalesReport(salons SalonReader, repo SalesRepository) *GetSalesReport {
	return &GetSalesReport{salons: salons, repo: repo}
}

// Execute reports the inclusive date range [from, to] in the salon's
// timezone. Empty bounds default to the current month so far.
func (uc *GetSalesReport) Execute(ctx context.Context, salonID uint, from, to string) (*SalesReport, error) {
	salon, err := uc.salons.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	start, end, err := Range(from, to, timezone.Location(salon.Timezone), timezone.NowIn(salon.Timezone))
	if err != nil {
		return nil, err
	}

	// Stored timestamps are UTC.
	totals, err := uc.repo.Totals(ctx, salonID, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	byMethod, err := uc.repo.ByMethod(ctx, salonID, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	if byMethod == nil {
		byMethod = []repository.MethodTotal{}
	}

	return &SalesReport{
		From:     start.Format("2006-01-02"),
		To:       end.AddDate(0, 0, -1).Format("2006-01-02"),
		Totals:   totals,
		ByMethod: byMethod,
	}, nil
}

// Range turns inclusive YYYY-MM-DD bounds into a half-open interval.
func Range(from, to string, loc *time.Location, now time.Time) (time.Time, time.Time, error) {
	today := timezone.StartOfDay(now, loc)

	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
	if from != "" {
		d, err := timezone.ParseDate(from, loc)
		if err != nil {
			return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_date")
		}
		start = d
	}

	last := today
	if to != "" {
		d, err := timezone.ParseDate(to, loc)
		if err != nil {
			return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_date")
		}
		last = d
	}

	if last.Before(start) {
		return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_date_range")
	}
	return start, last.AddDate(0, 0, 1), nil
}
