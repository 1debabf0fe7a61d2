package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-pos/internal/application/service"
	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/response"
)

// SaleHandler handles sale requests
type SaleHandler struct {
	sales *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(sales *service.SaleService) *SaleHandler {
	return &SaleHandler{sales: sales}
}

// Execute handles a sale. The response carries the issued receipt.
func (h *SaleHandler) Execute(c *gin.Context) {
	var req request.ExecuteSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	receipt, err := h.sales.ExecuteSale(c.Request.Context(), req.CashierID, entity.Basket(req.Basket), req.Payment)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed successfully", receipt)
}
