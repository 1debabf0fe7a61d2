package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-pos/internal/application/service"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus(c.Request.Context())
	response.OK(c, "Printer status retrieved", status)
}

// PrintReceipt sends a committed receipt to the printer.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	number, ok := receiptNumberParam(c)
	if !ok {
		return
	}

	receipt, err := h.printerService.PrintReceipt(c.Request.Context(), number)
	if err != nil {
		// the receipt exists but the printer failed
		if receipt != nil {
			response.OK(c, "Receipt found but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sent to printer", gin.H{"receipt": receipt})
}
