package schedule

import "time"

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w Window) Valid() bool {
	return w.End.After(w.Start)
}

func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

func (w Window) contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Overlaps reports whether a and b intersect. Windows that only touch
// (a.End == b.Start) do not overlap.
func Overlaps(a, b Window) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}

	startsInside := b.contains(a.Start)
	endsInside := a.End.After(b.Start) && !a.End.After(b.End)
	covers := !a.Start.After(b.Start) && !a.End.Before(b.End)

	return startsInside || endsInside || covers
}
