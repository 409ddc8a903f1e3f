package dto

import (
	"time"

	"github.com/BruksfildServices01/salon-pos/internal/domain/schedule"
)

// Block is one positioned rectangle on the day grid.
type Block struct {
	ID          uint      `json:"id"`
	Kind        string    `json:"kind"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Top         float64   `json:"top"`
	Height      float64   `json:"height"`
	Label       string    `json:"label"`
	Status      string    `json:"status,omitempty"`
	Overlapping bool      `json:"overlapping,omitempty"`
}

type StylistColumn struct {
	StylistID    uint     `json:"stylist_id"`
	Name         string   `json:"name"`
	Available    bool     `json:"available"`
	Appointments []Block  `json:"appointments"`
	Breaks       []Block  `json:"breaks"`
	BreakSlots   []string `json:"break_slots"`
}

type DayView struct {
	Date     string                 `json:"date"`
	Slots    []schedule.TimeOption  `json:"slots"`
	Columns  []StylistColumn        `json:"columns"`
	Overlaps []schedule.OverlapPair `json:"overlaps"`
}
