// Package inventory reads the "STOCK DETAILS" workbook and loads its
// products into the catalog.
package inventory

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/salon-pos/internal/domain/money"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/metrics"
)

const SheetName = "STOCK DETAILS"

const (
	headerPurchase    = "PURCHASE - STOCK IN"
	headerSales       = "SALES TO CUSTOMER - STOCK OUT"
	headerConsumption = "SALON CONSUMPTION - STOCK OUT"
	headerBalance     = "BALANCE STOCK"
)

var (
	ErrNotExcel        = httperr.ErrBusinessMsg("invalid_file_type", "File must be an Excel file (.xlsx or .xls)")
	ErrMissingSheet    = httperr.ErrBusinessMsg("missing_stock_sheet", `Excel file must contain a sheet named "STOCK DETAILS"`)
	ErrEmptySheet      = httperr.ErrBusinessMsg("empty_stock_sheet", "No data found in the STOCK DETAILS sheet")
	ErrMissingSections = httperr.ErrBusinessMsg("missing_sections", "Invalid Excel format: Missing required sections")
)

var unitCodes = []struct{ long, short string }{
	{"BTL-BOTTLES", "BTL"},
	{"PCS-PIECES", "PCS"},
	{"BOX-BOXES", "BOX"},
	{"JAR-JARS", "JAR"},
	{"PKT-PACKETS", "PKT"},
}

// CheckFilename accepts .xlsx and .xls uploads.
func CheckFilename(name string) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls":
		return nil
	}
	return ErrNotExcel
}

// Parse reads the stock sheet. Format problems come back as business
// errors; anything else means the workbook itself could not be read.
func Parse(r io.Reader) (*StockSheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	defer f.Close()

	if !hasSheet(f.GetSheetList()) {
		return nil, ErrMissingSheet
	}

	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", SheetName, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	// --------------------------------------------------
	// Section headers
	// --------------------------------------------------
	purchaseRow, salesRow, consumptionRow, balanceRow := -1, -1, -1, -1
	for i, row := range rows {
		joined := strings.Join(row, " ")
		switch {
		case strings.Contains(joined, headerPurchase):
			purchaseRow = i
		case strings.Contains(joined, headerSales):
			salesRow = i
		case strings.Contains(joined, headerConsumption):
			consumptionRow = i
		case strings.Contains(joined, headerBalance):
			balanceRow = i
		}
	}
	if purchaseRow == -1 || salesRow == -1 || consumptionRow == -1 {
		return nil, ErrMissingSections
	}

	// Data starts two rows below a header (title, then column labels) and
	// ends right before the next section.
	consumptionEnd := len(rows) - 1
	if balanceRow != -1 {
		consumptionEnd = balanceRow - 1
	}

	sheet := &StockSheet{
		Purchases:   []Purchase{},
		Sales:       []Sale{},
		Consumption: []Consumption{},
		Balance:     []Balance{},
	}

	for _, c := range section(rows, purchaseRow+2, salesRow-1, 1) {
		sheet.Purchases = append(sheet.Purchases, Purchase{
			Date:                     c.date(0),
			ProductName:              c.text(1),
			HSNCode:                  c.text(2),
			Units:                    StandardizeUnit(c.text(3)),
			InvoiceNo:                c.text(4),
			Qty:                      c.num(5),
			PriceInclGST:             c.amount(6),
			PriceExGST:               c.amount(7),
			DiscountPercentage:       c.num(8),
			PurchaseCostPerUnitExGST: c.amount(9),
			GSTPercentage:            c.num(10),
			TaxableValue:             c.amount(11),
			IGST:                     c.amount(12),
			CGST:                     c.amount(13),
			SGST:                     c.amount(14),
			InvoiceValue:             c.amount(15),
		})
	}

	for _, c := range section(rows, salesRow+2, consumptionRow-1, 1) {
		sheet.Sales = append(sheet.Sales, Sale{
			Date:                     c.date(0),
			ProductName:              c.text(1),
			HSNCode:                  c.text(2),
			Units:                    StandardizeUnit(c.text(3)),
			InvoiceNo:                c.text(4),
			Qty:                      c.num(5),
			PurchaseCostPerUnitExGST: c.amount(6),
			PurchaseGSTPercentage:    c.num(7),
			PurchaseTaxableValue:     c.amount(8),
			PurchaseIGST:             c.amount(9),
			PurchaseCGST:             c.amount(10),
			PurchaseSGST:             c.amount(11),
			TotalPurchaseCost:        c.amount(12),
			MRPInclGST:               c.amount(13),
			MRPExGST:                 c.amount(14),
			DiscountPercentage:       c.num(15),
			DiscountedSalesRateExGST: c.amount(16),
			SalesGSTPercentage:       c.num(17),
			SalesTaxableValue:        c.amount(18),
			SalesIGST:                c.amount(19),
			SalesCGST:                c.amount(20),
			SalesSGST:                c.amount(21),
			InvoiceValue:             c.amount(22),
		})
	}

	for _, c := range section(rows, consumptionRow+2, consumptionEnd, 1) {
		sheet.Consumption = append(sheet.Consumption, Consumption{
			Date:                     c.date(0),
			ProductName:              c.text(1),
			HSNCode:                  c.text(2),
			Units:                    StandardizeUnit(c.text(3)),
			RequisitionVoucherNo:     c.text(4),
			Qty:                      c.num(5),
			PurchaseCostPerUnitExGST: c.amount(6),
			PurchaseGSTPercentage:    c.num(7),
			TaxableValue:             c.amount(8),
			IGST:                     c.amount(9),
			CGST:                     c.amount(10),
			SGST:                     c.amount(11),
			TotalPurchaseCost:        c.amount(12),
		})
	}

	if balanceRow != -1 {
		// Balance rows carry the product name in the first column.
		for _, c := range section(rows, balanceRow+2, len(rows)-1, 0) {
			sheet.Balance = append(sheet.Balance, Balance{
				ProductName:  c.text(0),
				HSNCode:      c.text(1),
				Units:        StandardizeUnit(c.text(2)),
				Qty:          c.num(3),
				TaxableValue: c.amount(4),
				IGST:         c.amount(5),
				CGST:         c.amount(6),
				SGST:         c.amount(7),
				InvoiceValue: c.amount(8),
			})
		}
	}

	sheet.Products = uniqueProducts(sheet)

	metrics.StockRowsParsed.WithLabelValues("purchase").Add(float64(len(sheet.Purchases)))
	metrics.StockRowsParsed.WithLabelValues("sales").Add(float64(len(sheet.Sales)))
	metrics.StockRowsParsed.WithLabelValues("consumption").Add(float64(len(sheet.Consumption)))
	metrics.StockRowsParsed.WithLabelValues("balance").Add(float64(len(sheet.Balance)))

	return sheet, nil
}

// StandardizeUnit shortens the long unit labels used by the accounting
// export. Unknown labels pass through.
func StandardizeUnit(unit string) string {
	for _, u := range unitCodes {
		if strings.Contains(unit, u.long) {
			return u.short
		}
	}
	return unit
}

// FixFloat rounds to two decimals and clears values that are zero in all
// but floating point noise.
func FixFloat(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) < 1e-10 {
		return 0
	}
	return math.Round(v*100) / 100
}

// uniqueProducts keeps the first (name, HSN) pair seen across purchases,
// sales and consumption, in that order.
func uniqueProducts(s *StockSheet) []ProductRef {
	seen := make(map[[2]string]bool)
	out := []ProductRef{}

	add := func(name, hsn, units string) {
		key := [2]string{name, hsn}
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, ProductRef{ProductName: name, HSNCode: hsn, Units: units})
	}

	for _, p := range s.Purchases {
		add(p.ProductName, p.HSNCode, p.Units)
	}
	for _, p := range s.Sales {
		add(p.ProductName, p.HSNCode, p.Units)
	}
	for _, p := range s.Consumption {
		add(p.ProductName, p.HSNCode, p.Units)
	}
	return out
}

func hasSheet(names []string) bool {
	for _, n := range names {
		if n == SheetName {
			return true
		}
	}
	return false
}

// ======================================================
// Row access
// ======================================================

type cells []string

// section returns the rows in [from, to] whose key column is non-empty.
func section(rows [][]string, from, to, keyCol int) []cells {
	var out []cells
	for i := from; i <= to && i < len(rows); i++ {
		if i < 0 {
			continue
		}
		c := cells(rows[i])
		if c.text(keyCol) == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (c cells) text(i int) string {
	if i >= len(c) {
		return ""
	}
	return strings.TrimSpace(c[i])
}

func (c cells) num(i int) float64 {
	v, err := strconv.ParseFloat(c.text(i), 64)
	if err != nil {
		return 0
	}
	return FixFloat(v)
}

func (c cells) amount(i int) money.Amount {
	return money.FromFloat(c.num(i))
}

// date renders serial dates as YYYY-MM-DD and keeps text dates as typed.
func (c cells) date(i int) string {
	raw := c.text(i)
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil || serial <= 0 {
		return raw
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02")
}
