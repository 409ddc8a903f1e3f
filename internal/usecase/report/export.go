package report

import (
	"context"

	domain "github.com/BruksfildServices01/salon-pos/internal/domain/order"
	"github.com/BruksfildServices01/salon-pos/internal/export"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/timezone"
)

type ExportInput struct {
	SalonID uint
	Format  string
	From    string
	To      string
	Status  string
}

type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

type ExportOrders struct {
	repo domain.Repository
}

func NewExportOrders(repo domain.Repository) *ExportOrders {
	return &ExportOrders{repo: repo}
}

func (uc *ExportOrders) Execute(ctx context.Context, in ExportInput) (*ExportFile, error) {
	format := export.Format(in.Format)
	if format == "" {
		format = export.FormatCSV
	}
	if format != export.FormatCSV && format != export.FormatXLSX {
		return nil, httperr.ErrBusiness("invalid_export_format")
	}

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(salon.Timezone)
	now := timezone.NowIn(salon.Timezone)

	filter := domain.ListFilter{Status: domain.Status(in.Status)}
	if in.From != "" || in.To != "" {
		start, end, err := Range(in.From, in.To, loc, now)
		if err != nil {
			return nil, err
		}
		start, end = start.UTC(), end.UTC()
		filter.From, filter.To = &start, &end
	}

	orders, err := uc.repo.ListOrders(ctx, in.SalonID, filter)
	if err != nil {
		return nil, err
	}

	body, err := export.Render(format, orders, loc)
	if err != nil {
		return nil, err
	}

	return &ExportFile{
		Filename:    export.Filename(format, now),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}
