package service

import (
	"testing"

	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingService_MilkWithoutDiscount(t *testing.T) {
	svc, err := NewPricingService(5, decimal.NewFromInt(20), FixedClock(today))
	require.NoError(t, err)

	milk := newTestProduct("P001", "Milk", "2.50", "30", enum.ProductCategoryFood, 10, 50)
	assert.Equal(t, "3.25", svc.UnitPrice(milk).StringFixed(2))
	assert.False(t, svc.HasDiscount(milk, today))
}

func TestPricingService_BreadDiscounted(t *testing.T) {
	svc, err := NewPricingService(5, decimal.NewFromInt(20), FixedClock(today))
	require.NoError(t, err)

	bread := newTestProduct("P002", "Bread", "1.20", "25", enum.ProductCategoryFood, 3, 100)
	assert.Equal(t, "1.50", bread.BasePrice().StringFixed(2))
	assert.Equal(t, "1.20", svc.UnitPrice(bread).StringFixed(2))
	assert.True(t, svc.HasDiscount(bread, today))
}

func TestComputeUnitPrice_ThresholdBoundary(t *testing.T) {
	discount := decimal.NewFromInt(20)
	for _, threshold := range []int{1, 5, 14} {
		atThreshold := newTestProduct("X", "X", "10.00", "0", enum.ProductCategoryNonFood, threshold, 1)
		pastThreshold := newTestProduct("Y", "Y", "10.00", "0", enum.ProductCategoryNonFood, threshold+1, 1)

		assert.Equal(t, "8.00", ComputeUnitPrice(atThreshold, threshold, discount, today).StringFixed(2), "threshold %d", threshold)
		assert.Equal(t, "10.00", ComputeUnitPrice(pastThreshold, threshold, discount, today).StringFixed(2), "threshold %d", threshold)
	}
}

func TestComputeUnitPrice_ExpiredGetsNoDiscount(t *testing.T) {
	expired := newTestProduct("P008", "Expired Ham", "4.20", "28", enum.ProductCategoryFood, -5, 12)
	sameDay := newTestProduct("P009", "Fish", "4.20", "28", enum.ProductCategoryFood, 0, 12)

	assert.Equal(t, "5.38", ComputeUnitPrice(expired, 5, decimal.NewFromInt(20), today).StringFixed(2))
	assert.Equal(t, "5.38", ComputeUnitPrice(sameDay, 5, decimal.NewFromInt(20), today).StringFixed(2))
}

func TestNewPricingService_RejectsBadSettings(t *testing.T) {
	_, err := NewPricingService(-1, decimal.NewFromInt(20), FixedClock(today))
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = NewPricingService(5, decimal.NewFromInt(101), FixedClock(today))
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = NewPricingService(5, decimal.NewFromInt(-3), FixedClock(today))
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	svc, err := NewPricingService(0, decimal.NewFromInt(100), FixedClock(today))
	require.NoError(t, err)
	assert.Equal(t, 0, svc.ThresholdDays())
	assert.True(t, svc.DiscountPercent().Equal(decimal.NewFromInt(100)))
}
