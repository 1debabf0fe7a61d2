package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-pos/internal/application/service"
	"github.com/sangkips/retail-pos/internal/config"
	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/sangkips/retail-pos/internal/infrastructure/logging"
	"github.com/sangkips/retail-pos/internal/infrastructure/memory"
	"github.com/sangkips/retail-pos/internal/presentation/http/handler"
	"github.com/sangkips/retail-pos/pkg/printer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Kind    string          `json:"kind"`
	Data    json.RawMessage `json:"data"`
	Details json.RawMessage `json:"details"`
}

type testServer struct {
	router  *gin.Engine
	ledger  *service.ReceiptLedger
	printer *printer.Recorder
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	clock := service.FixedClock(today)
	logger := logging.Discard()

	catalog := service.NewCatalogService(memory.NewProductStore(), clock)
	cashiers := service.NewCashierService(memory.NewCashierStore())
	pricing, err := service.NewPricingService(5, decimal.NewFromInt(20), clock)
	require.NoError(t, err)
	ledger := service.NewReceiptLedger(memory.NewReceiptStore(), "Test Store", logger)
	sales := service.NewSaleService(catalog, cashiers, pricing, ledger, service.CommitTwoPhase, clock, logger)
	reports := service.NewReportService("Test Store", catalog, cashiers, ledger, clock)
	rec := &printer.Recorder{}
	printerService := service.NewPrinterService(rec, ledger, "Test Store", "usb", logger)

	require.NoError(t, cashiers.AddCashier(ctx, &entity.Cashier{ID: "C001", Name: "Ivan Ivanov", MonthlySalary: decimal.NewFromInt(1500)}))
	require.NoError(t, catalog.AddProduct(ctx, &entity.Product{
		ID: "P001", Name: "Milk", PurchaseCost: decimal.RequireFromString("2.50"), MarkupPercent: decimal.NewFromInt(30),
		Category: enum.ProductCategoryFood, ExpirationDate: today.AddDate(0, 0, 10), QuantityInStock: 50,
	}))
	require.NoError(t, catalog.AddProduct(ctx, &entity.Product{
		ID: "P008", Name: "Expired Ham", PurchaseCost: decimal.RequireFromString("4.20"), MarkupPercent: decimal.NewFromInt(28),
		Category: enum.ProductCategoryFood, ExpirationDate: today.AddDate(0, 0, -5), QuantityInStock: 12,
	}))

	cfg := &config.Config{
		App:       config.AppConfig{Name: "retail-pos"},
		Store:     config.StoreConfig{Name: "Test Store"},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
	}
	router := Setup(ctx, &Handlers{
		Product: handler.NewProductHandler(catalog, pricing, clock),
		Cashier: handler.NewCashierHandler(cashiers),
		Sale:    handler.NewSaleHandler(sales),
		Receipt: handler.NewReceiptHandler(ledger),
		Report:  handler.NewReportHandler(reports),
		Printer: handler.NewPrinterHandler(printerService),
	}, &Deps{
		Cfg:             cfg,
		Logger:          logger,
		IdempotencyRepo: memory.NewIdempotencyStore(),
		Now:             clock,
	})
	return &testServer{router: router, ledger: ledger, printer: rec}
}

func (s *testServer) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestSale_IssuesReceipt(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/sales", `{"cashier_id":"C001","basket":{"P001":2},"payment":"10"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	env := decode(t, w)
	assert.True(t, env.Success)
	var receipt struct {
		Number int             `json:"number"`
		Total  decimal.Decimal `json:"total_amount"`
		Change decimal.Decimal `json:"change"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &receipt))
	assert.Equal(t, 1, receipt.Number)
	assert.Equal(t, "6.50", receipt.Total.StringFixed(2))
	assert.Equal(t, "3.50", receipt.Change.StringFixed(2))

	w = s.do(t, http.MethodGet, "/api/v1/receipts/1/rendered", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Milk x 2 @ 3.25 EUR = 6.50 EUR")

	w = s.do(t, http.MethodGet, "/api/v1/receipts/next-number", "", nil)
	assert.Contains(t, w.Body.String(), `"next_number":2`)
}

func TestSale_ErrorsCarryKindAndDetails(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/sales", `{"cashier_id":"C001","basket":{"P001":100},"payment":"1000"}`, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "insufficient_stock", env.Kind)
	assert.JSONEq(t, `{"product_id":"P001","product_name":"Milk","requested":100,"available":50,"shortage":50}`, string(env.Details))

	w = s.do(t, http.MethodPost, "/api/v1/sales", `{"cashier_id":"C001","basket":{"P008":1},"payment":"10"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "expired_product", decode(t, w).Kind)

	w = s.do(t, http.MethodPost, "/api/v1/sales", `{"cashier_id":"C404","basket":{"P001":1},"payment":"10"}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/sales", `{"cashier_id":"C001","basket":{"P001":2},"payment":"1"}`, nil)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/sales", `{"basket":{"P001":2}}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, 1, s.ledger.NextNumber())
}

func TestSale_IdempotentRetry(t *testing.T) {
	s := newTestServer(t)
	body := `{"cashier_id":"C001","basket":{"P001":1},"payment":"5"}`
	key := map[string]string{"Idempotency-Key": "till-1-0001"}

	first := s.do(t, http.MethodPost, "/api/v1/sales", body, key)
	require.Equal(t, http.StatusCreated, first.Code)

	replay := s.do(t, http.MethodPost, "/api/v1/sales", body, key)
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), replay.Body.String())
	assert.Equal(t, 2, s.ledger.NextNumber())

	conflict := s.do(t, http.MethodPost, "/api/v1/sales", `{"cashier_id":"C001","basket":{"P001":2},"payment":"10"}`, key)
	assert.Equal(t, http.StatusUnprocessableEntity, conflict.Code)
	assert.Equal(t, 2, s.ledger.NextNumber())
}

func TestProducts(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/products/available", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var products []struct {
		ID        string          `json:"id"`
		UnitPrice decimal.Decimal `json:"unit_price"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "P001", products[0].ID)
	assert.Equal(t, "3.25", products[0].UnitPrice.StringFixed(2))

	w = s.do(t, http.MethodPost, "/api/v1/products",
		`{"id":"P002","name":"Bread","purchase_cost":"1.20","category":"FOOD","expiration_date":"2026-03-13","markup_percent":"25","quantity_in_stock":100}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"unit_price":"1.2"`)
	assert.Contains(t, w.Body.String(), `"discounted":true`)

	w = s.do(t, http.MethodPost, "/api/v1/products",
		`{"id":"P002","name":"Bread","purchase_cost":"1.20","category":"FOOD","expiration_date":"2026-03-13","markup_percent":"25","quantity_in_stock":1}`, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "duplicate_id", decode(t, w).Kind)

	w = s.do(t, http.MethodPost, "/api/v1/products/P002/restock", `{"quantity":5}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"quantity_in_stock":105`)

	w = s.do(t, http.MethodGet, "/api/v1/products/P404", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReceipts_ListAndPrint(t *testing.T) {
	s := newTestServer(t)
	for i := 0; i < 3; i++ {
		w := s.do(t, http.MethodPost, "/api/v1/sales", `{"cashier_id":"C001","basket":{"P001":1},"payment":"5"}`, nil)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := s.do(t, http.MethodGet, "/api/v1/receipts?page=2&per_page=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items []struct {
			Number int `json:"number"`
		} `json:"items"`
		Pagination struct {
			Total      int `json:"total"`
			TotalPages int `json:"total_pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, 3, page.Items[0].Number)
	assert.Equal(t, 3, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	w = s.do(t, http.MethodPost, "/api/v1/receipts/2/print", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, s.printer.Jobs(), 1)

	w = s.do(t, http.MethodGet, "/api/v1/receipts/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodGet, "/api/v1/receipts/9", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFinancialReport(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/v1/sales", `{"cashier_id":"C001","basket":{"P001":2},"payment":"10"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/reports/financial?format=text", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Revenue from sales: 6.50 EUR")
	assert.Contains(t, w.Body.String(), "Number of issued receipts: 1")

	w = s.do(t, http.MethodGet, "/api/v1/reports/financial", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"receipt_count":1`)
}
