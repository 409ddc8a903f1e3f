package schedule

import (
	"sort"
	"time"
)

// SameDay compares calendar dates in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// BreaksOn keeps the breaks that start on day's calendar date.
func BreaksOn(day time.Time, breaks []Window) []Window {
	out := make([]Window, 0, len(breaks))
	for _, b := range breaks {
		if SameDay(day, b.Start) {
			out = append(out, b)
		}
	}
	return out
}

// HasBreakConflict reports whether candidate intersects any of the breaks
// that fall on day.
func HasBreakConflict(candidate Window, breaks []Window, day time.Time) bool {
	for _, b := range BreaksOn(day, breaks) {
		if Overlaps(candidate, b) {
			return true
		}
	}
	return false
}

// SlotInBreak marks a grid cell of slotMinutes starting at slot on day.
func SlotInBreak(day time.Time, slot Slot, slotMinutes int, breaks []Window) bool {
	start := slot.On(day)
	cell := Window{Start: start, End: start.Add(time.Duration(slotMinutes) * time.Minute)}
	return HasBreakConflict(cell, breaks, day)
}

// Booking is the minimal appointment shape needed for overlap diagnostics.
type Booking struct {
	ID        uint
	StylistID uint
	Window    Window
	Cancelled bool
}

type OverlapPair struct {
	StylistID uint `json:"stylist_id"`
	First     uint `json:"first"`
	Second    uint `json:"second"`
}

// FindOverlaps flags every pair of a stylist's bookings whose windows
// intersect. It is advisory and never blocks a booking.
func FindOverlaps(bookings []Booking) []OverlapPair {
	byStylist := make(map[uint][]Booking)
	var stylists []uint

	for _, b := range bookings {
		if b.Cancelled {
			continue
		}
		if _, ok := byStylist[b.StylistID]; !ok {
			stylists = append(stylists, b.StylistID)
		}
		byStylist[b.StylistID] = append(byStylist[b.StylistID], b)
	}

	sort.Slice(stylists, func(i, j int) bool { return stylists[i] < stylists[j] })

	var pairs []OverlapPair
	for _, id := range stylists {
		list := byStylist[id]
		for i := 0; i < len(list); i++ {
			for j := i + 1; j < len(list); j++ {
				if Overlaps(list[i].Window, list[j].Window) {
					pairs = append(pairs, OverlapPair{
						StylistID: id,
						First:     list[i].ID,
						Second:    list[j].ID,
					})
				}
			}
		}
	}
	return pairs
}

// Flagged returns the ids that take part in at least one overlap.
func Flagged(pairs []OverlapPair) map[uint]bool {
	out := make(map[uint]bool, len(pairs)*2)
	for _, p := range pairs {
		out[p.First] = true
		out[p.Second] = true
	}
	return out
}
