package service

import (
	"time"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// PricingService prices products with the store-wide expiration discount
type PricingService struct {
	thresholdDays   int
	discountPercent decimal.Decimal
	clock           Clock
}

// NewPricingService validates the discount settings.
// thresholdDays must not be negative and discountPercent must lie in 0..100.
func NewPricingService(thresholdDays int, discountPercent decimal.Decimal, clock Clock) (*PricingService, error) {
	if thresholdDays < 0 {
		return nil, apperror.NewInvalidArgumentError("Expiration threshold must not be negative")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, apperror.NewInvalidArgumentError("Discount percent must be between 0 and 100")
	}
	return &PricingService{
		thresholdDays:   thresholdDays,
		discountPercent: discountPercent,
		clock:           clock,
	}, nil
}

// ThresholdDays is the expiry window in days that triggers the discount
func (s *PricingService) ThresholdDays() int {
	return s.thresholdDays
}

// DiscountPercent is the markdown applied to products near expiry
func (s *PricingService) DiscountPercent() decimal.Decimal {
	return s.discountPercent
}

// UnitPrice prices a product as of now
func (s *PricingService) UnitPrice(product *entity.Product) decimal.Decimal {
	return s.UnitPriceAt(product, s.clock())
}

// UnitPriceAt prices a product as of a given moment
func (s *PricingService) UnitPriceAt(product *entity.Product, asOf time.Time) decimal.Decimal {
	return ComputeUnitPrice(product, s.thresholdDays, s.discountPercent, asOf)
}

// HasDiscount reports whether the expiration discount applies at asOf
func (s *PricingService) HasDiscount(product *entity.Product, asOf time.Time) bool {
	return entity.DiscountApplies(product.DaysUntilExpiration(asOf), s.thresholdDays)
}

// ComputeUnitPrice applies the markup, then the discount when 0 < days left <= thresholdDays.
// The result is rounded to cents, half away from zero.
func ComputeUnitPrice(product *entity.Product, thresholdDays int, discountPercent decimal.Decimal, asOf time.Time) decimal.Decimal {
	return entity.PricingPolicyFor(product.Category).UnitPrice(product, thresholdDays, discountPercent, asOf)
}
