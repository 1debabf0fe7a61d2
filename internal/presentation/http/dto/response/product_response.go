package response

import (
	"time"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// ProductResponse is a product together with its current selling price
type ProductResponse struct {
	ID                  string               `json:"id"`
	Name                string               `json:"name"`
	Category            enum.ProductCategory `json:"category"`
	PurchaseCost        decimal.Decimal      `json:"purchase_cost"`
	MarkupPercent       decimal.Decimal      `json:"markup_percent"`
	ExpirationDate      string               `json:"expiration_date"`
	QuantityInStock     int                  `json:"quantity_in_stock"`
	DaysUntilExpiration int                  `json:"days_until_expiration"`
	Expired             bool                 `json:"expired"`
	Discounted          bool                 `json:"discounted"`
	UnitPrice           decimal.Decimal      `json:"unit_price"`
}

// NewProductResponse describes p as of asOf
func NewProductResponse(p *entity.Product, unitPrice decimal.Decimal, discounted bool, asOf time.Time) ProductResponse {
	return ProductResponse{
		ID:                  p.ID,
		Name:                p.Name,
		Category:            p.Category,
		PurchaseCost:        p.PurchaseCost,
		MarkupPercent:       p.MarkupPercent,
		ExpirationDate:      p.ExpirationDate.Format(time.DateOnly),
		QuantityInStock:     p.QuantityInStock,
		DaysUntilExpiration: p.DaysUntilExpiration(asOf),
		Expired:             p.IsExpired(asOf),
		Discounted:          discounted,
		UnitPrice:           unitPrice,
	}
}
