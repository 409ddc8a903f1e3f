// Package export renders order lists as CSV or XLSX downloads.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/salon-pos/internal/models"
)

// Column maps a field of the order row onto a header label.
type Column struct {
	Key   string
	Label string
}

var OrderColumns = []Column{
	{Key: "id", Label: "Order ID"},
	{Key: "created_at", Label: "Date"},
	{Key: "client_name", Label: "Client"},
	{Key: "items", Label: "Items"},
	{Key: "subtotal", Label: "Subtotal"},
	{Key: "tax", Label: "Tax"},
	{Key: "discount", Label: "Discount"},
	{Key: "total", Label: "Total"},
	{Key: "paid", Label: "Paid"},
	{Key: "pending", Label: "Pending"},
	{Key: "payment_method", Label: "Payment Method"},
	{Key: "status", Label: "Status"},
	{Key: "type", Label: "Type"},
}

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

func Filename(f Format, now time.Time) string {
	return fmt.Sprintf("orders-%s.%s", now.Format("2006-01-02"), f)
}

func orderValue(o models.Order, key string, loc *time.Location) string {
	switch key {
	case "id":
		return strconv.FormatUint(uint64(o.ID), 10)
	case "created_at":
		return o.CreatedAt.In(loc).Format("2006-01-02 15:04")
	case "client_name":
		return o.ClientName
	case "items":
		names := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			names = append(names, it.Name)
		}
		return strings.Join(names, ", ")
	case "subtotal":
		return o.Subtotal.String()
	case "tax":
		return o.Tax.String()
	case "discount":
		return o.Discount.String()
	case "total":
		return o.Total.String()
	case "paid":
		return o.Paid.String()
	case "pending":
		return o.Pending.String()
	case "payment_method":
		return o.PaymentMethod
	case "status":
		return o.Status
	case "type":
		if o.WalkIn {
			return "walk-in"
		}
		return "appointment"
	}
	return ""
}

// Rows flattens orders into string rows in column order, header first.
func Rows(orders []models.Order, cols []Column, loc *time.Location) [][]string {
	rows := make([][]string, 0, len(orders)+1)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Label
	}
	rows = append(rows, header)

	for _, o := range orders {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = orderValue(o, c.Key, loc)
		}
		rows = append(rows, row)
	}
	return rows
}

func Render(f Format, orders []models.Order, loc *time.Location) ([]byte, error) {
	rows := Rows(orders, OrderColumns, loc)
	switch f {
	case FormatCSV:
		return renderCSV(rows)
	case FormatXLSX:
		return renderXLSX(rows)
	}
	return nil, fmt.Errorf("unsupported export format %q", f)
}

func renderCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const ordersSheet = "Orders"

func renderXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(ordersSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
