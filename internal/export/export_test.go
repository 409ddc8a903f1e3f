package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/salon-pos/internal/domain/money"
	"github.com/BruksfildServices01/salon-pos/internal/models"
)

func sampleOrders() []models.Order {
	return []models.Order{{
		ID:            7,
		ClientName:    "Asha",
		CreatedAt:     time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC),
		Items:         []models.OrderItem{{Name: "Haircut"}, {Name: "Serum"}},
		Subtotal:      money.Rupees(1000),
		Tax:           money.Rupees(180),
		Total:         money.Rupees(1180),
		Paid:          money.Rupees(1180),
		PaymentMethod: "split",
		Status:        "completed",
		WalkIn:        true,
	}}
}

func TestRender_CSV(t *testing.T) {
	out, err := Render(FormatCSV, sampleOrders(), time.UTC)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Order ID", records[0][0])
	assert.Equal(t, []string{
		"7", "2026-03-10 06:00", "Asha", "Haircut, Serum",
		"1000.00", "180.00", "0.00", "1180.00", "1180.00", "0.00",
		"split", "completed", "walk-in",
	}, records[1])
}

func TestRender_XLSX(t *testing.T) {
	out, err := Render(FormatXLSX, sampleOrders(), time.UTC)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ordersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Client", rows[0][2])
	assert.Equal(t, "1180.00", rows[1][7])
}

func TestRender_Unsupported(t *testing.T) {
	_, err := Render(Format("pdf"), nil, time.UTC)
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "orders-2026-03-10.xlsx", Filename(FormatXLSX, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)))
}
