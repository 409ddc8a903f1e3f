package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-pos/internal/domain/schedule"
)

func TestLoadRules_MissingFileKeepsDefaults(t *testing.T) {
	rules, err := LoadRules(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), rules)
}

func TestLoadRules_OverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salon.toml")
	content := `
timezone = "Asia/Dubai"

[business_hours]
end_hour = 22
slot_minutes = 15

[tax]
gst_percent = 12
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)

	assert.Equal(t, 8, rules.BusinessHours.StartHour)
	assert.Equal(t, 22, rules.BusinessHours.EndHour)
	assert.Equal(t, 15, rules.BusinessHours.SlotMinutes)
	assert.Equal(t, int64(12), rules.Tax.GSTPercent)
	assert.Equal(t, "Asia/Dubai", rules.Timezone)
	assert.Equal(t, 30, rules.Layout.RowHeightPx)
}

func TestLoadRules_RejectsBadSlotMinutes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salon.toml")
	require.NoError(t, os.WriteFile(path, []byte("[business_hours]\nslot_minutes = 20\n"), 0o644))

	_, err := LoadRules(path)
	assert.Error(t, err)
}

func TestRules_GridMatchesDefaults(t *testing.T) {
	assert.Equal(t, schedule.DefaultGrid(), DefaultRules().Grid())
	assert.Equal(t, schedule.DefaultBusinessHours(), DefaultRules().Hours())
}
