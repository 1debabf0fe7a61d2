package entity

import (
	"time"

	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PricingPolicy computes the selling price of a product at a point in time
type PricingPolicy interface {
	UnitPrice(p *Product, thresholdDays int, discountPercent decimal.Decimal, asOf time.Time) decimal.Decimal
}

type foodPricing struct{}

func (foodPricing) UnitPrice(p *Product, thresholdDays int, discountPercent decimal.Decimal, asOf time.Time) decimal.Decimal {
	return markupThenDiscount(p, thresholdDays, discountPercent, asOf)
}

type nonFoodPricing struct{}

func (nonFoodPricing) UnitPrice(p *Product, thresholdDays int, discountPercent decimal.Decimal, asOf time.Time) decimal.Decimal {
	return markupThenDiscount(p, thresholdDays, discountPercent, asOf)
}

// PricingPolicyFor returns the pricing policy of a category
func PricingPolicyFor(c enum.ProductCategory) PricingPolicy {
	if c == enum.ProductCategoryNonFood {
		return nonFoodPricing{}
	}
	return foodPricing{}
}

// BasePrice is the purchase cost with the markup applied
func (p *Product) BasePrice() decimal.Decimal {
	return p.PurchaseCost.Mul(decimal.NewFromInt(1).Add(p.MarkupPercent.Div(hundred)))
}

// DiscountApplies reports whether asOf falls inside the pre-expiration discount window.
// Products on or past their expiration day get no discount.
func DiscountApplies(daysLeft, thresholdDays int) bool {
	return daysLeft > 0 && daysLeft <= thresholdDays
}

func markupThenDiscount(p *Product, thresholdDays int, discountPercent decimal.Decimal, asOf time.Time) decimal.Decimal {
	price := p.BasePrice()
	if DiscountApplies(p.DaysUntilExpiration(asOf), thresholdDays) {
		price = price.Mul(decimal.NewFromInt(1).Sub(discountPercent.Div(hundred)))
	}
	return price.Round(2)
}
