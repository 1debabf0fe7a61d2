package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FinancialReport summarises expenses, revenue and profit of the store
type FinancialReport struct {
	StoreName      string          `json:"store_name"`
	SalaryExpenses decimal.Decimal `json:"salary_expenses"`
	SupplyExpenses decimal.Decimal `json:"supply_expenses"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	Revenue        decimal.Decimal `json:"revenue"`
	Profit         decimal.Decimal `json:"profit"`
	ReceiptCount   int             `json:"receipt_count"`
	ProductCount   int64           `json:"product_count"`
	CashierCount   int             `json:"cashier_count"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// ReportService builds financial reports from the catalog, cashiers and ledger
type ReportService struct {
	storeName string
	catalog   *CatalogService
	cashiers  *CashierService
	ledger    *ReceiptLedger
	clock     Clock
}

// NewReportService creates a new report service
func NewReportService(storeName string, catalog *CatalogService, cashiers *CashierService, ledger *ReceiptLedger, clock Clock) *ReportService {
	return &ReportService{
		storeName: storeName,
		catalog:   catalog,
		cashiers:  cashiers,
		ledger:    ledger,
		clock:     clock,
	}
}

// Financial computes the current report.
// Supply expenses are the purchase value of the stock on hand.
func (s *ReportService) Financial(ctx context.Context) (*FinancialReport, error) {
	salaries, err := s.cashiers.TotalSalaries(ctx)
	if err != nil {
		return nil, err
	}
	cashiers, err := s.cashiers.ListCashiers(ctx)
	if err != nil {
		return nil, err
	}
	supply, err := s.catalog.TotalPurchaseValue(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.catalog.ProductCount(ctx)
	if err != nil {
		return nil, err
	}

	revenue := s.ledger.TotalRevenue()
	expenses := salaries.Add(supply)
	return &FinancialReport{
		StoreName:      s.storeName,
		SalaryExpenses: salaries,
		SupplyExpenses: supply,
		TotalExpenses:  expenses,
		Revenue:        revenue,
		Profit:         revenue.Sub(expenses),
		ReceiptCount:   s.ledger.ReceiptCount(),
		ProductCount:   products,
		CashierCount:   len(cashiers),
		GeneratedAt:    s.clock(),
	}, nil
}

// RenderFinancialReport formats a report as plain text
func RenderFinancialReport(r *FinancialReport) string {
	var sb strings.Builder
	heavy := strings.Repeat("=", 60)
	light := strings.Repeat("-", 60)

	sb.WriteString(heavy + "\n")
	sb.WriteString("FINANCIAL REPORT - " + r.StoreName + "\n")
	sb.WriteString(heavy + "\n")
	fmt.Fprintf(&sb, "Salary expenses: %s %s\n", r.SalaryExpenses.StringFixed(2), currency)
	fmt.Fprintf(&sb, "Supply expenses: %s %s\n", r.SupplyExpenses.StringFixed(2), currency)
	fmt.Fprintf(&sb, "Total expenses: %s %s\n", r.TotalExpenses.StringFixed(2), currency)
	sb.WriteString(light + "\n")
	fmt.Fprintf(&sb, "Revenue from sales: %s %s\n", r.Revenue.StringFixed(2), currency)
	sb.WriteString(light + "\n")
	fmt.Fprintf(&sb, "PROFIT: %s %s\n", r.Profit.StringFixed(2), currency)
	sb.WriteString(heavy + "\n")
	fmt.Fprintf(&sb, "Number of issued receipts: %d\n", r.ReceiptCount)
	sb.WriteString(heavy + "\n")
	return sb.String()
}
