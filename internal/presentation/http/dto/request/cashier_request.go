package request

import "github.com/shopspring/decimal"

// CreateCashierRequest represents the request body for adding a cashier
type CreateCashierRequest struct {
	ID            string          `json:"id" binding:"required,max=64"`
	Name          string          `json:"name" binding:"required,max=255"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
}
