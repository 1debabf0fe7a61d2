package request

import "github.com/shopspring/decimal"

// CreateProductRequest represents the request body for adding a product.
// ExpirationDate uses the 2006-01-02 layout.
type CreateProductRequest struct {
	ID              string          `json:"id" binding:"required,max=64"`
	Name            string          `json:"name" binding:"required,max=255"`
	PurchaseCost    decimal.Decimal `json:"purchase_cost"`
	Category        string          `json:"category" binding:"required,oneof=FOOD NON_FOOD"`
	ExpirationDate  string          `json:"expiration_date" binding:"required"`
	MarkupPercent   decimal.Decimal `json:"markup_percent"`
	QuantityInStock int             `json:"quantity_in_stock" binding:"min=0"`
}

// RestockRequest represents the request body for restocking a product
type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}
