package handlers

import (
	"bytes"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/middleware"
	"github.com/BruksfildServices01/salon-pos/internal/usecase/inventory"
)

type InventoryHandler struct {
	importStock *inventory.ImportStock
	maxBytes    int64
}

func NewInventoryHandler(importStock *inventory.ImportStock, maxBytes int64) *InventoryHandler {
	return &InventoryHandler{importStock: importStock, maxBytes: maxBytes}
}

// Parse returns the STOCK DETAILS sections of the uploaded workbook
// without touching the catalog.
func (h *InventoryHandler) Parse(c *gin.Context) {
	name, raw, ok := readUpload(c, h.maxBytes)
	if !ok {
		return
	}
	if err := inventory.CheckFilename(name); err != nil {
		httperr.FromError(c, err, "invalid_file_type")
		return
	}

	sheet, err := inventory.Parse(bytes.NewReader(raw))
	if err != nil {
		writeParseError(c, err)
		return
	}
	c.JSON(http.StatusOK, sheet)
}

func (h *InventoryHandler) Import(c *gin.Context) {
	name, raw, ok := readUpload(c, h.maxBytes)
	if !ok {
		return
	}

	res, err := h.importStock.Execute(c.Request.Context(), inventory.ImportStockInput{
		SalonID:  middleware.SalonID(c),
		UserID:   middleware.UserID(c),
		Filename: name,
		Body:     raw,
	})
	if err != nil {
		writeParseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// writeParseError keeps the reader's message on 500s so the uploader can
// see what was wrong with the file.
func writeParseError(c *gin.Context, err error) {
	if _, ok := httperr.AsBusiness(err); ok {
		httperr.FromError(c, err, "failed_to_process_file")
		return
	}
	log.Printf("stock sheet failed path=%s err=%v", c.FullPath(), err)
	httperr.Internal(c, "failed_to_process_file", "Error processing Excel file: "+err.Error())
}
