package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-pos/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-pos/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-pos/internal/dto"
	"github.com/BruksfildServices01/salon-pos/internal/models"
	"github.com/BruksfildServices01/salon-pos/internal/timezone"
)

// GetDayView lays out one day of the calendar: a column per stylist with
// positioned appointment and break blocks.
type GetDayView struct {
	repo domain.Repository
	grid schedule.Grid
}

func NewGetDayView(repo domain.Repository, grid schedule.Grid) *GetDayView {
	return &GetDayView{repo: repo, grid: grid}
}

func (uc *GetDayView) Execute(
	ctx context.Context,
	salonID uint,
	date string,
) (*dto.DayView, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	day, err := timezone.ParseDate(date, timezone.Location(salon.Timezone))
	if err != nil {
		return nil, invalidDate()
	}

	stylists, err := uc.repo.ListStylists(ctx, salonID)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, salonID, 0, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Overlap diagnostics
	// --------------------------------------------------
	bookings := make([]schedule.Booking, 0, len(appointments))
	for _, ap := range appointments {
		bookings = append(bookings, schedule.Booking{
			ID:        ap.ID,
			StylistID: ap.StylistID,
			Window:    schedule.Window{Start: ap.StartTime, End: ap.EndTime},
			Cancelled: ap.Status == string(domain.StatusCancelled),
		})
	}
	overlaps := schedule.FindOverlaps(bookings)
	flagged := schedule.Flagged(overlaps)

	byStylist := make(map[uint][]models.Appointment)
	for _, ap := range appointments {
		byStylist[ap.StylistID] = append(byStylist[ap.StylistID], ap)
	}

	// --------------------------------------------------
	// Columns
	// --------------------------------------------------
	view := &dto.DayView{
		Date:     date,
		Slots:    uc.grid.Hours.Options(),
		Columns:  make([]dto.StylistColumn, 0, len(stylists)),
		Overlaps: overlaps,
	}
	if view.Overlaps == nil {
		view.Overlaps = []schedule.OverlapPair{}
	}

	for _, st := range stylists {
		col := dto.StylistColumn{
			StylistID:    st.ID,
			Name:         st.Name,
			Available:    st.Available,
			Appointments: []dto.Block{},
			Breaks:       []dto.Block{},
			BreakSlots:   []string{},
		}

		for _, ap := range byStylist[st.ID] {
			label := ap.Service.Name
			if ap.Client != nil && ap.Client.Name != "" {
				label = ap.Client.Name + " - " + label
			}
			col.Appointments = append(col.Appointments, dto.Block{
				ID:          ap.ID,
				Kind:        "appointment",
				Start:       ap.StartTime,
				End:         ap.EndTime,
				Top:         uc.grid.PositionOf(ap.StartTime, day),
				Height:      uc.grid.HeightOf(ap.StartTime, ap.EndTime, day),
				Label:       label,
				Status:      ap.Status,
				Overlapping: flagged[ap.ID],
			})
		}

		windows := domain.BreakWindows(st.Breaks)
		for i, b := range st.Breaks {
			if !schedule.SameDay(day, b.StartTime) {
				continue
			}
			col.Breaks = append(col.Breaks, dto.Block{
				ID:     uint(i),
				Kind:   "break",
				Start:  b.StartTime,
				End:    b.EndTime,
				Top:    uc.grid.PositionOf(b.StartTime, day),
				Height: uc.grid.HeightOf(b.StartTime, b.EndTime, day),
				Label:  b.Reason,
			})
		}

		for _, s := range uc.grid.Hours.Slots() {
			if schedule.SlotInBreak(day, s, uc.grid.Hours.SlotMinutes, windows) {
				col.BreakSlots = append(col.BreakSlots, s.Value())
			}
		}

		view.Columns = append(view.Columns, col)
	}

	return view, nil
}
