package entity

import (
	"testing"
	"time"

	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func newProduct(expiresIn int) *Product {
	return &Product{
		ID:              "P001",
		Name:            "Milk",
		PurchaseCost:    decimal.RequireFromString("2.50"),
		Category:        enum.ProductCategoryFood,
		ExpirationDate:  today.AddDate(0, 0, expiresIn),
		MarkupPercent:   decimal.NewFromInt(30),
		QuantityInStock: 50,
	}
}

func TestProduct_DaysUntilExpiration(t *testing.T) {
	tests := []struct {
		name      string
		expiresIn int
		want      int
		expired   bool
	}{
		{"future", 10, 10, false},
		{"same day", 0, 0, false},
		{"yesterday", -1, -1, true},
		{"long gone", -30, -30, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProduct(tt.expiresIn)
			assert.Equal(t, tt.want, p.DaysUntilExpiration(today))
			assert.Equal(t, tt.expired, p.IsExpired(today))
		})
	}
}

func TestProduct_DaysIgnoreTimeOfDay(t *testing.T) {
	p := newProduct(0)
	p.ExpirationDate = time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	lateEvening := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, 1, p.DaysUntilExpiration(lateEvening))
}

func TestProduct_Validate(t *testing.T) {
	require.NoError(t, newProduct(5).Validate())

	p := newProduct(5)
	p.ID = ""
	p.PurchaseCost = decimal.NewFromInt(-1)
	p.QuantityInStock = -3
	err := p.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	assert.Len(t, apperror.GetAppError(err).Errors, 3)

	p = newProduct(5)
	p.Category = enum.ProductCategory(9)
	assert.ErrorIs(t, p.Validate(), apperror.ErrInvalidArgument)
}

func TestProduct_SnapshotAndStockValue(t *testing.T) {
	p := newProduct(3)
	snap := p.Snapshot()
	assert.Equal(t, "P001", snap.ID)
	assert.Equal(t, "Milk", snap.Name)
	assert.Equal(t, enum.ProductCategoryFood, snap.Category)
	assert.True(t, decimal.RequireFromString("125").Equal(p.StockValue()))
}

func TestBasket_ProductIDsSorted(t *testing.T) {
	b := Basket{"P003": 1, "P001": 2, "P002": 5}
	assert.Equal(t, []string{"P001", "P002", "P003"}, b.ProductIDs())
	assert.Equal(t, 8, b.TotalUnits())
}

func TestCashier_ValidateAndEqual(t *testing.T) {
	c := Cashier{ID: "C001", Name: "Ivan Ivanov", MonthlySalary: decimal.NewFromInt(1500)}
	require.NoError(t, c.Validate())
	assert.True(t, c.Equal(Cashier{ID: "C001"}))
	assert.False(t, c.Equal(Cashier{ID: "C002", Name: "Ivan Ivanov"}))

	bad := Cashier{ID: "C009", MonthlySalary: decimal.NewFromInt(-5)}
	err := bad.Validate()
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	assert.Len(t, apperror.GetAppError(err).Errors, 2)
}
