package seed

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sangkips/retail-pos/internal/application/service"
	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/shopspring/decimal"
)

type demoProduct struct {
	id, name  string
	cost      string
	category  enum.ProductCategory
	days      int
	months    int
	stock     int
	markupPct string
}

// Expiration dates are relative to the day the data is loaded
var demoProducts = []demoProduct{
	{"P001", "Milk", "2.50", enum.ProductCategoryFood, 10, 0, 50, "30"},
	{"P002", "Bread", "1.20", enum.ProductCategoryFood, 3, 0, 100, "25"},
	{"P003", "Yogurt", "1.80", enum.ProductCategoryFood, 15, 0, 30, "30"},
	{"P006", "Cheese", "5.50", enum.ProductCategoryFood, 2, 0, 20, "35"},
	{"P008", "Expired Ham", "4.20", enum.ProductCategoryFood, -5, 0, 12, "28"},
	{"P004", "Soap", "3.00", enum.ProductCategoryNonFood, 0, 12, 40, "50"},
	{"P005", "Shampoo", "8.00", enum.ProductCategoryNonFood, 0, 18, 25, "45"},
	{"P007", "Toothpaste", "4.50", enum.ProductCategoryNonFood, 0, 24, 35, "40"},
}

var demoCashiers = []entity.Cashier{
	{ID: "C001", Name: "Ivan Ivanov", MonthlySalary: decimal.NewFromInt(1500)},
	{ID: "C002", Name: "Mariya Popova", MonthlySalary: decimal.NewFromInt(1600)},
}

// Demo loads two cashiers and eight products, one of them already expired.
// Records that already exist are left untouched, so loading twice is harmless.
func Demo(ctx context.Context, catalog *service.CatalogService, cashiers *service.CashierService, today time.Time, logger *slog.Logger) error {
	added := 0
	for i := range demoCashiers {
		c := demoCashiers[i]
		if err := cashiers.AddCashier(ctx, &c); err != nil {
			if errors.Is(err, apperror.ErrDuplicateID) {
				continue
			}
			return err
		}
		added++
	}

	for _, d := range demoProducts {
		p := &entity.Product{
			ID:              d.id,
			Name:            d.name,
			PurchaseCost:    decimal.RequireFromString(d.cost),
			Category:        d.category,
			ExpirationDate:  today.AddDate(0, d.months, d.days),
			MarkupPercent:   decimal.RequireFromString(d.markupPct),
			QuantityInStock: d.stock,
		}
		if err := catalog.AddProduct(ctx, p); err != nil {
			if errors.Is(err, apperror.ErrDuplicateID) {
				continue
			}
			return err
		}
		added++
	}

	logger.InfoContext(ctx, "demo data loaded", slog.Int("records", added))
	return nil
}
