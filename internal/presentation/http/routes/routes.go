package routes

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-pos/internal/config"
	domainRepo "github.com/sangkips/retail-pos/internal/domain/repository"
	"github.com/sangkips/retail-pos/internal/presentation/http/handler"
	"github.com/sangkips/retail-pos/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Product *handler.ProductHandler
	Cashier *handler.CashierHandler
	Sale    *handler.SaleHandler
	Receipt *handler.ReceiptHandler
	Report  *handler.ReportHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Logger          *slog.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
	Now             func() time.Time
}

// Setup creates the Gin router and registers all routes.
// ctx bounds background work such as rate limiter cleanup.
func Setup(ctx context.Context, h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
			"store":   deps.Cfg.Store.Name,
		})
	})

	v1 := router.Group("/api/v1")
	if deps.Cfg.RateLimit.Requests > 0 && deps.Cfg.RateLimit.Duration > 0 {
		rateLimiter := middleware.NewClientRateLimiter(ctx, middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())
	}

	registerProductRoutes(v1, h)
	registerCashierRoutes(v1, h)
	registerSaleRoutes(v1, h, deps)
	registerReceiptRoutes(v1, h)
	registerReportRoutes(v1, h)
	registerPrinterRoutes(v1, h)

	return router
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/available", h.Product.ListAvailable)
		products.GET("/:id", h.Product.Get)
		products.POST("/:id/restock", h.Product.Restock)
	}
}

func registerCashierRoutes(v1 *gin.RouterGroup, h *Handlers) {
	cashiers := v1.Group("/cashiers")
	{
		cashiers.GET("", h.Cashier.List)
		cashiers.POST("", h.Cashier.Create)
		cashiers.GET("/:id", h.Cashier.Get)
	}
}

func registerSaleRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := v1.Group("/sales")
	sales.Use(middleware.Idempotency(middleware.IdempotencyConfig{
		Repo:   deps.IdempotencyRepo,
		Logger: deps.Logger,
		Now:    deps.Now,
	}))
	{
		sales.POST("", h.Sale.Execute)
	}
}

func registerReceiptRoutes(v1 *gin.RouterGroup, h *Handlers) {
	receipts := v1.Group("/receipts")
	{
		receipts.GET("", h.Receipt.List)
		receipts.GET("/next-number", h.Receipt.NextNumber)
		receipts.GET("/:number", h.Receipt.Get)
		receipts.GET("/:number/rendered", h.Receipt.Rendered)
		receipts.POST("/:number/print", h.Printer.PrintReceipt)
	}
}

func registerReportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	reports := v1.Group("/reports")
	{
		reports.GET("/financial", h.Report.Financial)
	}
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	printerGroup := v1.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
	}
}
