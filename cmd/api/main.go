package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-pos/internal/application/service"
	"github.com/sangkips/retail-pos/internal/config"
	domainRepo "github.com/sangkips/retail-pos/internal/domain/repository"
	"github.com/sangkips/retail-pos/internal/infrastructure/database"
	"github.com/sangkips/retail-pos/internal/infrastructure/filestore"
	"github.com/sangkips/retail-pos/internal/infrastructure/logging"
	"github.com/sangkips/retail-pos/internal/infrastructure/memory"
	"github.com/sangkips/retail-pos/internal/infrastructure/repository"
	"github.com/sangkips/retail-pos/internal/infrastructure/seed"
	"github.com/sangkips/retail-pos/internal/presentation/http/handler"
	"github.com/sangkips/retail-pos/internal/presentation/http/routes"
	"github.com/sangkips/retail-pos/pkg/printer"
	"gorm.io/gorm"
)

type repositories struct {
	products    domainRepo.ProductRepository
	cashiers    domainRepo.CashierRepository
	receipts    domainRepo.ReceiptRepository
	idempotency domainRepo.IdempotencyRepository
}

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Store.Validate(); err != nil {
		log.Fatalf("Invalid store configuration: %v", err)
	}
	if err := cfg.Receipts.Validate(); err != nil {
		log.Fatalf("Invalid receipts configuration: %v", err)
	}

	logger, err := logging.New(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	slog.SetDefault(logger)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}

	loc, _ := cfg.Store.Location()
	clock := service.SystemClock(loc)
	policy, err := service.ParseCommitPolicy(cfg.Store.CommitPolicy)
	if err != nil {
		log.Fatalf("Invalid commit policy: %v", err)
	}

	// Initialize services
	catalog := service.NewCatalogService(repos.products, clock)
	cashiers := service.NewCashierService(repos.cashiers)
	pricing, err := service.NewPricingService(cfg.Store.ExpirationThresholdDays, cfg.Store.ExpirationDiscountPercent, clock)
	if err != nil {
		log.Fatalf("Invalid pricing configuration: %v", err)
	}
	ledger := service.NewReceiptLedger(repos.receipts, cfg.Store.Name, logger)
	if err := ledger.Restore(ctx); err != nil {
		log.Fatalf("Failed to restore receipts: %v", err)
	}
	sales := service.NewSaleService(catalog, cashiers, pricing, ledger, policy, clock, logger)
	reports := service.NewReportService(cfg.Store.Name, catalog, cashiers, ledger, clock)

	if cfg.Store.SeedDemo {
		if err := seed.Demo(ctx, catalog, cashiers, clock(), logger); err != nil {
			logger.Warn("failed to load demo data", slog.String("error", err.Error()))
		}
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
		Timeout: 5 * time.Second,
	})
	if err != nil {
		logger.Warn("failed to initialize printer", slog.String("error", err.Error()))
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()
	printerService := service.NewPrinterService(thermalPrinter, ledger, cfg.Store.Name, cfg.Printer.Type, logger)
	if cfg.Printer.AutoPrint {
		sales.OnIssued(printerService.AutoPrint)
	}

	handlers := &routes.Handlers{
		Product: handler.NewProductHandler(catalog, pricing, clock),
		Cashier: handler.NewCashierHandler(cashiers),
		Sale:    handler.NewSaleHandler(sales),
		Receipt: handler.NewReceiptHandler(ledger),
		Report:  handler.NewReportHandler(reports),
		Printer: handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(ctx, handlers, &routes.Deps{
		Cfg:             cfg,
		Logger:          logger,
		IdempotencyRepo: repos.idempotency,
		Now:             clock,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
		}
	}()

	logger.Info("starting server",
		slog.String("app", cfg.App.Name),
		slog.String("store", cfg.Store.Name),
		slog.String("port", port),
		slog.String("env", cfg.App.Env),
		slog.String("store_backend", cfg.Store.Backend),
		slog.String("receipts_backend", cfg.Receipts.Backend),
		slog.String("commit_policy", string(policy)),
		slog.Int("next_receipt", ledger.NextNumber()))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}

// openRepositories wires the configured store and receipt backends.
// The database is only opened when one of them needs it.
func openRepositories(cfg *config.Config, logger *slog.Logger) (*repositories, error) {
	var db *gorm.DB
	if cfg.Store.Backend == "postgres" || cfg.Receipts.Backend == "postgres" {
		var err error
		db, err = database.NewPostgresDB(&cfg.Database, logger, cfg.App.Debug)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db, logger); err != nil {
			return nil, err
		}
	}

	repos := &repositories{}
	switch cfg.Store.Backend {
	case "postgres":
		repos.products = repository.NewProductRepository(db)
		repos.cashiers = repository.NewCashierRepository(db)
		repos.idempotency = repository.NewIdempotencyRepository(db)
	default:
		repos.products = memory.NewProductStore()
		repos.cashiers = memory.NewCashierStore()
		repos.idempotency = memory.NewIdempotencyStore()
	}

	switch cfg.Receipts.Backend {
	case "postgres":
		repos.receipts = repository.NewReceiptRepository(db)
	case "memory":
		repos.receipts = memory.NewReceiptStore()
	default:
		store, err := filestore.NewReceiptStore(cfg.Receipts.Dir)
		if err != nil {
			return nil, err
		}
		repos.receipts = store
	}
	return repos, nil
}
