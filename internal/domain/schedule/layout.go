package schedule

import "time"

// Grid converts clock times into vertical pixel offsets for the day view.
type Grid struct {
	Hours               BusinessHours
	RowMinutes          int
	RowHeightPx         int
	HeaderOffsetMinutes int
}

func DefaultGrid() Grid {
	return Grid{
		Hours:               DefaultBusinessHours(),
		RowMinutes:          15,
		RowHeightPx:         30,
		HeaderOffsetMinutes: 30,
	}
}

// Normalize keeps ts's wall-clock hour and minute and moves it onto
// viewDay's calendar date.
func Normalize(ts, viewDay time.Time) time.Time {
	local := ts.In(viewDay.Location())
	return time.Date(
		viewDay.Year(), viewDay.Month(), viewDay.Day(),
		local.Hour(), local.Minute(), 0, 0,
		viewDay.Location(),
	)
}

func (g Grid) PositionOf(start, viewDay time.Time) float64 {
	t := Normalize(start, viewDay)
	minutes := (t.Hour()-g.Hours.StartHour)*60 + t.Minute() + g.HeaderOffsetMinutes
	return g.scale(float64(minutes))
}

func (g Grid) HeightOf(start, end, viewDay time.Time) float64 {
	s := Normalize(start, viewDay)
	e := Normalize(end, viewDay)
	return g.scale(e.Sub(s).Minutes())
}

func (g Grid) scale(minutes float64) float64 {
	return minutes / float64(g.RowMinutes) * float64(g.RowHeightPx)
}
