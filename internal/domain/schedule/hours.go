package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BusinessHours is the bookable day window. EndHour is inclusive: a slot
// starts at EndHour:00 but never after it.
type BusinessHours struct {
	StartHour   int
	EndHour     int
	SlotMinutes int
}

func DefaultBusinessHours() BusinessHours {
	return BusinessHours{StartHour: 8, EndHour: 20, SlotMinutes: 30}
}

type Slot struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

type TimeOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func (bh BusinessHours) Validate() error {
	if bh.StartHour < 0 || bh.EndHour > 23 || bh.StartHour >= bh.EndHour {
		return fmt.Errorf("invalid business hours %d-%d", bh.StartHour, bh.EndHour)
	}
	if bh.SlotMinutes <= 0 || 60%bh.SlotMinutes != 0 {
		return fmt.Errorf("invalid slot granularity %d", bh.SlotMinutes)
	}
	return nil
}

func (bh BusinessHours) Slots() []Slot {
	step := bh.step()
	slots := make([]Slot, 0, (bh.EndHour-bh.StartHour)*60/step+1)

	for hour := bh.StartHour; hour <= bh.EndHour; hour++ {
		for minute := 0; minute < 60; minute += step {
			if hour == bh.EndHour && minute > 0 {
				break
			}
			slots = append(slots, Slot{Hour: hour, Minute: minute})
		}
	}
	return slots
}

func (bh BusinessHours) Options() []TimeOption {
	slots := bh.Slots()
	out := make([]TimeOption, 0, len(slots))
	for _, s := range slots {
		out = append(out, TimeOption{Value: s.Value(), Label: s.Label()})
	}
	return out
}

// Start returns the opening time on day's calendar date.
func (bh BusinessHours) Start(day time.Time) time.Time {
	return Slot{Hour: bh.StartHour}.On(day)
}

func (bh BusinessHours) End(day time.Time) time.Time {
	return Slot{Hour: bh.EndHour}.On(day)
}

func (bh BusinessHours) step() int {
	if bh.SlotMinutes <= 0 {
		return 30
	}
	return bh.SlotMinutes
}

// Value is the stable "H:MM" key used by time dropdowns.
func (s Slot) Value() string {
	return fmt.Sprintf("%d:%02d", s.Hour, s.Minute)
}

// Label renders the slot as "h:mm AM".
func (s Slot) Label() string {
	period := "AM"
	if s.Hour >= 12 {
		period = "PM"
	}
	hour12 := s.Hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour12, s.Minute, period)
}

// On places the slot on day's calendar date in day's location.
func (s Slot) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), s.Hour, s.Minute, 0, 0, day.Location())
}

// ParseOption parses an option value such as "13:30".
func ParseOption(value string) (Slot, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return Slot{}, fmt.Errorf("invalid time %q", value)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return Slot{}, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return Slot{}, fmt.Errorf("invalid minute in %q", value)
	}
	return Slot{Hour: hour, Minute: minute}, nil
}
