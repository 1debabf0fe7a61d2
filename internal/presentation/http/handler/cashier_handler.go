package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-pos/internal/application/service"
	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/response"
)

// CashierHandler handles cashier-related HTTP requests
type CashierHandler struct {
	cashiers *service.CashierService
}

// NewCashierHandler creates a new cashier handler
func NewCashierHandler(cashiers *service.CashierService) *CashierHandler {
	return &CashierHandler{cashiers: cashiers}
}

func (h *CashierHandler) List(c *gin.Context) {
	cashiers, err := h.cashiers.ListCashiers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cashiers retrieved successfully", cashiers)
}

func (h *CashierHandler) Get(c *gin.Context) {
	cashier, err := h.cashiers.Lookup(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cashier retrieved successfully", cashier)
}

// Create handles registering a cashier
func (h *CashierHandler) Create(c *gin.Context) {
	var req request.CreateCashierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cashier := &entity.Cashier{ID: req.ID, Name: req.Name, MonthlySalary: req.MonthlySalary}
	if err := h.cashiers.AddCashier(c.Request.Context(), cashier); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Cashier created successfully", cashier)
}
