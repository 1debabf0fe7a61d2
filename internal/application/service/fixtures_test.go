package service

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/sangkips/retail-pos/internal/domain/repository"
	"github.com/sangkips/retail-pos/internal/infrastructure/logging"
	"github.com/sangkips/retail-pos/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestProduct(id, name, cost, markup string, category enum.ProductCategory, expiresIn, stock int) *entity.Product {
	return &entity.Product{
		ID:              id,
		Name:            name,
		PurchaseCost:    dec(cost),
		MarkupPercent:   dec(markup),
		Category:        category,
		ExpirationDate:  today.AddDate(0, 0, expiresIn),
		QuantityInStock: stock,
	}
}

type fixture struct {
	products repository.ProductRepository
	receipts repository.ReceiptRepository
	catalog  *CatalogService
	cashiers *CashierService
	pricing  *PricingService
	ledger   *ReceiptLedger
	sales    *SaleService
}

func newFixture(t *testing.T, policy CommitPolicy) *fixture {
	return newFixtureWithReceipts(t, policy, memory.NewReceiptStore())
}

func newFixtureWithReceipts(t *testing.T, policy CommitPolicy, receipts repository.ReceiptRepository) *fixture {
	t.Helper()
	ctx := context.Background()
	clock := FixedClock(today)
	logger := logging.Discard()

	f := &fixture{
		products: memory.NewProductStore(),
		receipts: receipts,
	}
	f.catalog = NewCatalogService(f.products, clock)
	f.cashiers = NewCashierService(memory.NewCashierStore())
	pricing, err := NewPricingService(5, decimal.NewFromInt(20), clock)
	require.NoError(t, err)
	f.pricing = pricing
	f.ledger = NewReceiptLedger(receipts, "Test Store", logger)
	f.sales = NewSaleService(f.catalog, f.cashiers, f.pricing, f.ledger, policy, clock, logger)

	require.NoError(t, f.cashiers.AddCashier(ctx, &entity.Cashier{ID: "C001", Name: "Ivan Ivanov", MonthlySalary: dec("1500")}))
	for _, p := range []*entity.Product{
		newTestProduct("P001", "Milk", "2.50", "30", enum.ProductCategoryFood, 10, 50),
		newTestProduct("P002", "Bread", "1.20", "25", enum.ProductCategoryFood, 3, 100),
		newTestProduct("P004", "Soap", "3.00", "50", enum.ProductCategoryNonFood, 365, 40),
		newTestProduct("P008", "Expired Ham", "4.20", "28", enum.ProductCategoryFood, -5, 12),
	} {
		require.NoError(t, f.catalog.AddProduct(ctx, p))
	}
	return f
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.catalog.GetProduct(context.Background(), id)
	require.NoError(t, err)
	return p.QuantityInStock
}

type mockReceiptRepository struct {
	mock.Mock
}

func (m *mockReceiptRepository) Save(ctx context.Context, record *entity.ReceiptRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockReceiptRepository) GetRendered(ctx context.Context, number int) (string, error) {
	args := m.Called(ctx, number)
	return args.String(0), args.Error(1)
}

func (m *mockReceiptRepository) GetPayload(ctx context.Context, number int) ([]byte, error) {
	args := m.Called(ctx, number)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *mockReceiptRepository) List(ctx context.Context) ([]entity.ReceiptRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]entity.ReceiptRecord)
	return records, args.Error(1)
}
