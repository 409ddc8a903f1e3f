package inventory

import (
	"bytes"
	"context"
	"log"
	"path/filepath"
	"strings"

	"github.com/BruksfildServices01/salon-pos/internal/audit"
	"github.com/BruksfildServices01/salon-pos/internal/events"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/models"
	"github.com/BruksfildServices01/salon-pos/internal/storage"
)

type ProductRepository interface {
	UpsertProducts(ctx context.Context, salonID uint, products []models.Product, withStock bool) (int, error)
}

type ImportStockInput struct {
	SalonID  uint
	UserID   uint
	Filename string
	Body     []byte
}

type ImportResult struct {
	Products    int    `json:"products"`
	Purchases   int    `json:"purchases"`
	Sales       int    `json:"sales"`
	Consumption int    `json:"consumption"`
	Balance     int    `json:"balance"`
	FileKey     string `json:"file_key,omitempty"`
}

// ImportStock parses the workbook, upserts its products into the catalog
// and archives the original file.
type ImportStock struct {
	repo   ProductRepository
	store  storage.Store
	audit  *audit.Dispatcher
	events events.Publisher
}

func NewImportStock(
	repo ProductRepository,
	store storage.Store,
	audit *audit.Dispatcher,
	publisher events.Publisher,
) *ImportStock {
	return &ImportStock{
		repo:   repo,
		store:  store,
		audit:  audit,
		events: publisher,
	}
}

func (uc *ImportStock) Execute(ctx context.Context, in ImportStockInput) (*ImportResult, error) {
	if err := CheckFilename(in.Filename); err != nil {
		return nil, err
	}

	sheet, err := Parse(bytes.NewReader(in.Body))
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Catalog upsert; stock only where a balance row exists
	// --------------------------------------------------
	withStock, withoutStock := catalogRows(sheet)

	if _, err := uc.repo.UpsertProducts(ctx, in.SalonID, withStock, true); err != nil {
		return nil, err
	}
	if _, err := uc.repo.UpsertProducts(ctx, in.SalonID, withoutStock, false); err != nil {
		return nil, err
	}

	res := &ImportResult{
		Products:    len(withStock) + len(withoutStock),
		Purchases:   len(sheet.Purchases),
		Sales:       len(sheet.Sales),
		Consumption: len(sheet.Consumption),
		Balance:     len(sheet.Balance),
	}

	// --------------------------------------------------
	// Archive
	// --------------------------------------------------
	key := storage.StockSheetKey(in.SalonID, in.Filename)
	err = uc.store.Put(ctx, key, contentType(in.Filename), in.Body)
	switch {
	case err == nil:
		res.FileKey = key
	case httperr.IsBusiness(err, "storage_disabled"):
	default:
		log.Printf("stock sheet archive failed salon=%d err=%v", in.SalonID, err)
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.UserID,
		Action:   "stock_imported",
		Entity:   "product",
		Metadata: res,
	})

	_ = uc.events.Publish(ctx, events.StockImported, events.StockImportedEvent{
		SalonID:  in.SalonID,
		Products: res.Products,
		FileKey:  res.FileKey,
	})

	return res, nil
}

// catalogRows splits the sheet's products by whether the balance section
// reports a quantity for them. Balance-only products are included.
func catalogRows(sheet *StockSheet) (withStock, withoutStock []models.Product) {
	type key struct{ name, hsn string }

	balance := make(map[key]Balance, len(sheet.Balance))
	for _, b := range sheet.Balance {
		balance[key{b.ProductName, b.HSNCode}] = b
	}

	seen := make(map[key]bool)
	for _, p := range sheet.Products {
		k := key{p.ProductName, p.HSNCode}
		seen[k] = true
		row := models.Product{Name: p.ProductName, HSNCode: p.HSNCode, Unit: p.Units}
		if b, ok := balance[k]; ok {
			row.Stock = b.Qty
			withStock = append(withStock, row)
			continue
		}
		withoutStock = append(withoutStock, row)
	}

	for _, b := range sheet.Balance {
		k := key{b.ProductName, b.HSNCode}
		if seen[k] {
			continue
		}
		seen[k] = true
		withStock = append(withStock, models.Product{
			Name:    b.ProductName,
			HSNCode: b.HSNCode,
			Unit:    b.Units,
			Stock:   b.Qty,
		})
	}
	return withStock, withoutStock
}

func contentType(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), ".xls") {
		return "application/vnd.ms-excel"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
