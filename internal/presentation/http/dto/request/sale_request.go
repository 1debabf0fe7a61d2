package request

import "github.com/shopspring/decimal"

// ExecuteSaleRequest represents the request body for a sale.
// Basket maps product IDs to requested quantities.
type ExecuteSaleRequest struct {
	CashierID string          `json:"cashier_id" binding:"required"`
	Basket    map[string]int  `json:"basket" binding:"required"`
	Payment   decimal.Decimal `json:"payment"`
}
