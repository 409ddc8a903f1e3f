package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/BruksfildServices01/salon-pos/internal/domain/schedule"
)

// Rules holds the salon's business rules. They are read from an optional
// TOML file; anything missing keeps its default.
type Rules struct {
	BusinessHours BusinessHoursRules `toml:"business_hours"`
	Layout        LayoutRules        `toml:"layout"`
	Tax           TaxRules           `toml:"tax"`
	Upload        UploadRules        `toml:"upload"`
	Timezone      string             `toml:"timezone"`
}

type BusinessHoursRules struct {
	StartHour   int `toml:"start_hour"`
	EndHour     int `toml:"end_hour"`
	SlotMinutes int `toml:"slot_minutes"`
}

type LayoutRules struct {
	RowMinutes          int `toml:"row_minutes"`
	RowHeightPx         int `toml:"row_height_px"`
	HeaderOffsetMinutes int `toml:"header_offset_minutes"`
}

type TaxRules struct {
	GSTPercent int64 `toml:"gst_percent"`
}

type UploadRules struct {
	MaxSpreadsheetBytes int64 `toml:"max_spreadsheet_bytes"`
	MaxAvatarBytes      int64 `toml:"max_avatar_bytes"`
}

func DefaultRules() Rules {
	return Rules{
		BusinessHours: BusinessHoursRules{StartHour: 8, EndHour: 20, SlotMinutes: 30},
		Layout:        LayoutRules{RowMinutes: 15, RowHeightPx: 30, HeaderOffsetMinutes: 30},
		Tax:           TaxRules{GSTPercent: 18},
		Upload: UploadRules{
			MaxSpreadsheetBytes: 10 << 20,
			MaxAvatarBytes:      5 << 20,
		},
		Timezone: "Asia/Kolkata",
	}
}

// LoadRules decodes path over DefaultRules. A missing file is not an error.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return rules, nil
		}
		return rules, err
	}

	if _, err := toml.DecodeFile(path, &rules); err != nil {
		return rules, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := rules.Validate(); err != nil {
		return rules, err
	}
	return rules, nil
}

func (r Rules) Validate() error {
	bh := r.BusinessHours
	if bh.StartHour < 0 || bh.EndHour > 23 || bh.StartHour >= bh.EndHour {
		return fmt.Errorf("business_hours: invalid range %d-%d", bh.StartHour, bh.EndHour)
	}
	switch bh.SlotMinutes {
	case 15, 30, 60:
	default:
		return fmt.Errorf("business_hours: slot_minutes must be 15, 30 or 60, got %d", bh.SlotMinutes)
	}
	if r.Layout.RowMinutes <= 0 || r.Layout.RowHeightPx <= 0 {
		return errors.New("layout: row_minutes and row_height_px must be positive")
	}
	if r.Tax.GSTPercent < 0 || r.Tax.GSTPercent > 100 {
		return fmt.Errorf("tax: gst_percent out of range: %d", r.Tax.GSTPercent)
	}
	return nil
}

func (r Rules) Hours() schedule.BusinessHours {
	return schedule.BusinessHours{
		StartHour:   r.BusinessHours.StartHour,
		EndHour:     r.BusinessHours.EndHour,
		SlotMinutes: r.BusinessHours.SlotMinutes,
	}
}

func (r Rules) Grid() schedule.Grid {
	return schedule.Grid{
		Hours:               r.Hours(),
		RowMinutes:          r.Layout.RowMinutes,
		RowHeightPx:         r.Layout.RowHeightPx,
		HeaderOffsetMinutes: r.Layout.HeaderOffsetMinutes,
	}
}
