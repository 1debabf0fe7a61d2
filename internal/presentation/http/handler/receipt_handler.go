package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-pos/internal/application/service"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/retail-pos/pkg/pagination"
)

// ReceiptHandler serves issued receipts from the ledger
type ReceiptHandler struct {
	ledger *service.ReceiptLedger
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(ledger *service.ReceiptLedger) *ReceiptHandler {
	return &ReceiptHandler{ledger: ledger}
}

// List handles listing receipts in issue order, page by page
func (h *ReceiptHandler) List(c *gin.Context) {
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	receipts, page := h.ledger.Page(params)
	response.SuccessWithPagination(c, http.StatusOK, "Receipts retrieved successfully", receipts, page)
}

// NextNumber reports the number the next issued receipt will get
func (h *ReceiptHandler) NextNumber(c *gin.Context) {
	response.OK(c, "Next receipt number", gin.H{"next_number": h.ledger.NextNumber()})
}

func (h *ReceiptHandler) Get(c *gin.Context) {
	number, ok := receiptNumberParam(c)
	if !ok {
		return
	}
	receipt, err := h.ledger.Receipt(number)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt retrieved successfully", receipt)
}

// Rendered returns the stored plain-text form of a receipt
func (h *ReceiptHandler) Rendered(c *gin.Context) {
	number, ok := receiptNumberParam(c)
	if !ok {
		return
	}
	text, err := h.ledger.ReadRendered(c.Request.Context(), number)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.String(http.StatusOK, text)
}
