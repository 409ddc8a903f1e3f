package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/middleware"
	ucReport "github.com/BruksfildServices01/salon-pos/internal/usecase/report"
)

type ReportHandler struct {
	sales *ucReport.GetSalesReport
}

func NewReportHandler(sales *ucReport.GetSalesReport) *ReportHandler {
	return &ReportHandler{sales: sales}
}

func (h *ReportHandler) Sales(c *gin.Context) {
	rep, err := h.sales.Execute(c.Request.Context(), middleware.SalonID(c), c.Query("from"), c.Query("to"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_build_report")
		return
	}
	c.JSON(http.StatusOK, rep)
}
