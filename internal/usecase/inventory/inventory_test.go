package inventory

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/salon-pos/internal/audit"
	"github.com/BruksfildServices01/salon-pos/internal/domain/money"
	"github.com/BruksfildServices01/salon-pos/internal/events"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/infra/repository"
	"github.com/BruksfildServices01/salon-pos/internal/models"
	"github.com/BruksfildServices01/salon-pos/internal/storage"
	"github.com/BruksfildServices01/salon-pos/internal/testutil"
)

func workbook(t *testing.T, sheet string, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func stockRows() [][]any {
	return [][]any{
		{"PURCHASE - STOCK IN"},
		{"Date", "Product Name", "HSN Code", "Units", "Invoice No.", "Qty."},
		{"2026-03-01", "Serum", "3305", "BTL-BOTTLES", "INV-1", 2, 500.5, 424.15, 0, 424.15, 18, 848.3, 0, 76.35, 76.35, 1001},
		{"2026-03-02", "", "3305", "BTL-BOTTLES"},
		{"SALES TO CUSTOMER - STOCK OUT"},
		{"Date", "Product Name", "HSN Code", "Units", "Invoice No.", "Qty."},
		{46082, "Shampoo", "3305", "PCS-PIECES", "S-1", 1, 200, 18, 200, 0, 18, 18, 236, 350, 296.61, 10, 266.95, 18, 266.95, 0, 24.03, 24.03, 315},
		{46082, "Serum", "3305", "BTL-BOTTLES", "S-2", 1},
		{"SALON CONSUMPTION - STOCK OUT"},
		{"Date", "Product Name", "HSN Code", "Units", "Voucher", "Qty."},
		{"", "Wax", "3406", "JAR-JARS", "RV-1", 0.1 + 0.2, 1e-12},
		{"BALANCE STOCK"},
		{"Product Name", "HSN Code", "Units", "Qty."},
		{"Serum", "3305", "BTL-BOTTLES", 7},
		{"Gel", "3305", "TUBE", 3},
	}
}

func TestParse_Sections(t *testing.T) {
	sheet, err := Parse(bytes.NewReader(workbook(t, SheetName, stockRows())))
	require.NoError(t, err)

	require.Len(t, sheet.Purchases, 1)
	p := sheet.Purchases[0]
	assert.Equal(t, "2026-03-01", p.Date)
	assert.Equal(t, "Serum", p.ProductName)
	assert.Equal(t, "BTL", p.Units)
	assert.Equal(t, 2.0, p.Qty)
	assert.Equal(t, money.Amount(50050), p.PriceInclGST)
	assert.Equal(t, 18.0, p.GSTPercentage)
	assert.Equal(t, money.Rupees(1001), p.InvoiceValue)

	require.Len(t, sheet.Sales, 2)
	s := sheet.Sales[0]
	assert.Equal(t, "2026-03-01", s.Date)
	assert.Equal(t, "PCS", s.Units)
	assert.Equal(t, money.Amount(29661), s.MRPExGST)
	assert.Equal(t, 10.0, s.DiscountPercentage)
	assert.Equal(t, money.Rupees(315), s.InvoiceValue)

	require.Len(t, sheet.Consumption, 1)
	c := sheet.Consumption[0]
	assert.Equal(t, "JAR", c.Units)
	assert.Equal(t, 0.3, c.Qty)
	assert.Equal(t, money.Amount(0), c.PurchaseCostPerUnitExGST)

	require.Len(t, sheet.Balance, 2)
	assert.Equal(t, 7.0, sheet.Balance[0].Qty)
	assert.Equal(t, "TUBE", sheet.Balance[1].Units)

	assert.Equal(t, []ProductRef{
		{ProductName: "Serum", HSNCode: "3305", Units: "BTL"},
		{ProductName: "Shampoo", HSNCode: "3305", Units: "PCS"},
		{ProductName: "Wax", HSNCode: "3406", Units: "JAR"},
	}, sheet.Products)
}

func TestParse_MissingSheet(t *testing.T) {
	_, err := Parse(bytes.NewReader(workbook(t, "Sheet2", stockRows())))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSheet)

	be, ok := httperr.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, `Excel file must contain a sheet named "STOCK DETAILS"`, be.Message)
	assert.Equal(t, 400, httperr.Status(be.Code))
}

func TestParse_MissingSections(t *testing.T) {
	rows := [][]any{
		{"PURCHASE - STOCK IN"},
		{"Date", "Product Name"},
		{"2026-03-01", "Serum"},
		{"BALANCE STOCK"},
	}
	_, err := Parse(bytes.NewReader(workbook(t, SheetName, rows)))
	assert.ErrorIs(t, err, ErrMissingSections)
}

func TestParse_EmptySheet(t *testing.T) {
	_, err := Parse(bytes.NewReader(workbook(t, SheetName, nil)))
	assert.ErrorIs(t, err, ErrEmptySheet)
}

func TestParse_NotAWorkbook(t *testing.T) {
	_, err := Parse(bytes.NewReader([]byte("plain text")))
	require.Error(t, err)
	_, isBusiness := httperr.AsBusiness(err)
	assert.False(t, isBusiness)
}

func TestCheckFilename(t *testing.T) {
	assert.NoError(t, CheckFilename("stock.xlsx"))
	assert.NoError(t, CheckFilename("STOCK.XLS"))
	assert.ErrorIs(t, CheckFilename("stock.csv"), ErrNotExcel)
	assert.ErrorIs(t, CheckFilename("stock"), ErrNotExcel)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "BTL", StandardizeUnit("BTL-BOTTLES"))
	assert.Equal(t, "PKT", StandardizeUnit("10 PKT-PACKETS"))
	assert.Equal(t, "KG", StandardizeUnit("KG"))

	assert.Equal(t, 0.0, FixFloat(1e-11))
	assert.Equal(t, 0.3, FixFloat(0.1+0.2))
	assert.Equal(t, -2.35, FixFloat(-2.345001))
}

func TestImportStock_UpsertsCatalog(t *testing.T) {
	db := testutil.NewDB(t)
	salon := testutil.SeedSalon(t, db, "Asia/Kolkata")
	ctx := context.Background()

	wax := models.Product{SalonID: salon.ID, Name: "Wax", HSNCode: "3406", Unit: "JAR-JARS", Stock: 9}
	require.NoError(t, db.Create(&wax).Error)

	d := audit.NewDispatcher(audit.New(db))
	t.Cleanup(d.Close)
	store := storage.NewMemory()
	rec := &events.Recorder{}

	uc := NewImportStock(repository.NewProductGormRepository(db), store, d, rec)
	res, err := uc.Execute(ctx, ImportStockInput{
		SalonID:  salon.ID,
		Filename: "march.xlsx",
		Body:     workbook(t, SheetName, stockRows()),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, res.Products)
	assert.Equal(t, 1, res.Purchases)
	assert.Equal(t, 2, res.Sales)
	require.NotEmpty(t, res.FileKey)
	_, ok := store.Get(res.FileKey)
	assert.True(t, ok)
	assert.Equal(t, []string{events.StockImported}, rec.Queues())

	var products []models.Product
	require.NoError(t, db.Where("salon_id = ?", salon.ID).Order("name").Find(&products).Error)
	require.Len(t, products, 4)

	byName := map[string]models.Product{}
	for _, p := range products {
		byName[p.Name] = p
	}
	assert.Equal(t, 7.0, byName["Serum"].Stock)
	assert.Equal(t, 3.0, byName["Gel"].Stock)
	assert.Equal(t, 0.0, byName["Shampoo"].Stock)
	assert.Equal(t, 9.0, byName["Wax"].Stock)
	assert.Equal(t, "JAR", byName["Wax"].Unit)
}

func TestImportStock_RejectsNonExcel(t *testing.T) {
	uc := NewImportStock(nil, storage.Disabled{}, nil, events.Noop{})
	_, err := uc.Execute(context.Background(), ImportStockInput{Filename: "stock.csv"})
	assert.ErrorIs(t, err, ErrNotExcel)
}
