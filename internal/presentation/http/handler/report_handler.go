package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-pos/internal/application/service"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/response"
)

// ReportHandler handles report requests
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Financial handles the financial report. ?format=text returns the printable form.
func (h *ReportHandler) Financial(c *gin.Context) {
	report, err := h.reports.Financial(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	if c.Query("format") == "text" {
		c.String(http.StatusOK, service.RenderFinancialReport(report))
		return
	}
	response.OK(c, "Financial report generated successfully", report)
}
