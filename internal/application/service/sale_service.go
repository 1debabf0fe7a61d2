package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// CommitPolicy decides when stock leaves the shelf during a sale
type CommitPolicy string

const (
	// CommitTwoPhase validates the whole basket and the payment before any stock changes
	CommitTwoPhase CommitPolicy = "two_phase"
	// CommitPerLine decrements stock as each line is processed.
	// Lines already taken are not returned when a later line or the payment check fails.
	CommitPerLine CommitPolicy = "per_line"
)

// ParseCommitPolicy accepts the configured policy names
func ParseCommitPolicy(s string) (CommitPolicy, error) {
	switch CommitPolicy(s) {
	case CommitTwoPhase, CommitPerLine:
		return CommitPolicy(s), nil
	case "":
		return CommitTwoPhase, nil
	}
	return "", apperror.NewInvalidArgumentError(fmt.Sprintf("Unknown commit policy %q", s))
}

// SaleFailure reports the state a sale was in when it failed
type SaleFailure struct {
	State enum.SaleState
	Err   error
}

func (f *SaleFailure) Error() string {
	return fmt.Sprintf("sale failed while %s: %v", f.State, f.Err)
}

func (f *SaleFailure) Unwrap() error {
	return f.Err
}

// ReceiptHook runs after a receipt has been issued
type ReceiptHook func(ctx context.Context, receipt *entity.Receipt)

// SaleService executes sales. One sale runs at a time.
type SaleService struct {
	mu       sync.Mutex
	catalog  *CatalogService
	cashiers *CashierService
	pricing  *PricingService
	ledger   *ReceiptLedger
	policy   CommitPolicy
	clock    Clock
	logger   *slog.Logger
	hooks    []ReceiptHook
}

// NewSaleService creates a new sale service
func NewSaleService(
	catalog *CatalogService,
	cashiers *CashierService,
	pricing *PricingService,
	ledger *ReceiptLedger,
	policy CommitPolicy,
	clock Clock,
	logger *slog.Logger,
) *SaleService {
	return &SaleService{
		catalog:  catalog,
		cashiers: cashiers,
		pricing:  pricing,
		ledger:   ledger,
		policy:   policy,
		clock:    clock,
		logger:   logger,
	}
}

// OnIssued registers a hook called after every issued receipt
func (s *SaleService) OnIssued(hook ReceiptHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook)
}

// Policy returns the configured commit policy
func (s *SaleService) Policy() CommitPolicy {
	return s.policy
}

// saleRun tracks one sale through its states
type saleRun struct {
	svc     *SaleService
	ctx     context.Context
	state   enum.SaleState
	cashier string
	asOf    time.Time
}

func (r *saleRun) enter(state enum.SaleState) {
	r.state = state
	r.svc.logger.DebugContext(r.ctx, "sale state",
		slog.String("cashier_id", r.cashier), slog.String("state", state.String()))
}

func (r *saleRun) fail(err error) error {
	r.svc.logger.WarnContext(r.ctx, "sale failed",
		slog.String("cashier_id", r.cashier),
		slog.String("state", r.state.String()),
		slog.String("kind", string(apperror.KindOf(err))),
		slog.String("error", err.Error()))
	failure := &SaleFailure{State: r.state, Err: err}
	r.state = enum.SaleStateFailed
	return failure
}

// ExecuteSale sells the basket to the cashier's customer for the tendered payment.
// Lines are processed in ascending product id order. A receipt is returned only
// once stock has been committed and the receipt persisted.
func (s *SaleService) ExecuteSale(ctx context.Context, cashierID string, basket entity.Basket, payment decimal.Decimal) (*entity.Receipt, error) {
	receipt, hooks, err := s.execute(ctx, cashierID, basket, payment)
	if err != nil {
		return nil, err
	}
	for _, hook := range hooks {
		hook(ctx, receipt)
	}
	return receipt, nil
}

func (s *SaleService) execute(ctx context.Context, cashierID string, basket entity.Basket, payment decimal.Decimal) (*entity.Receipt, []ReceiptHook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run := &saleRun{svc: s, ctx: ctx, cashier: cashierID, asOf: s.clock()}
	run.enter(enum.SaleStateValidatingCashier)

	if err := validateSaleInput(basket, payment); err != nil {
		return nil, nil, run.fail(err)
	}
	cashier, err := s.cashiers.Lookup(ctx, cashierID)
	if err != nil {
		return nil, nil, run.fail(err)
	}

	draft := entity.NewReceiptBuilder().Cashier(*cashier).IssuedAt(run.asOf)

	var receipt *entity.Receipt
	switch s.policy {
	case CommitPerLine:
		receipt, err = s.sellPerLine(run, basket, payment, draft)
	default:
		receipt, err = s.sellTwoPhase(run, basket, payment, draft)
	}
	if err != nil {
		return nil, nil, err
	}

	run.enter(enum.SaleStateIssued)
	s.logger.InfoContext(ctx, "sale issued",
		slog.Int("receipt", receipt.Number()),
		slog.String("cashier_id", cashierID),
		slog.Int("lines", len(receipt.Lines())),
		slog.String("total", receipt.TotalAmount().StringFixed(2)),
		slog.String("policy", string(s.policy)))

	hooks := make([]ReceiptHook, len(s.hooks))
	copy(hooks, s.hooks)
	return receipt, hooks, nil
}

func validateSaleInput(basket entity.Basket, payment decimal.Decimal) error {
	if len(basket) == 0 {
		return apperror.NewInvalidArgumentError("Basket must contain at least one product")
	}
	for _, id := range basket.ProductIDs() {
		if basket[id] <= 0 {
			return apperror.NewInvalidArgumentError(fmt.Sprintf("Quantity for product %s must be positive", id))
		}
	}
	if payment.IsNegative() {
		return apperror.NewInvalidArgumentError("Payment must not be negative")
	}
	return nil
}

func checkPayment(draft *entity.ReceiptBuilder, payment decimal.Decimal) error {
	total := draft.Total()
	if payment.LessThan(total) {
		return apperror.NewInsufficientPaymentError(total, payment)
	}
	draft.Payment(payment)
	return nil
}

// sellTwoPhase validates and prices every line, checks the payment and only then
// takes the stock in one step. Stock is handed back if the receipt cannot be recorded.
func (s *SaleService) sellTwoPhase(run *saleRun, basket entity.Basket, payment decimal.Decimal, draft *entity.ReceiptBuilder) (*entity.Receipt, error) {
	ctx, asOf := run.ctx, run.asOf

	run.enter(enum.SaleStatePricingAndReserving)
	for _, id := range basket.ProductIDs() {
		product, err := s.catalog.ValidateLine(ctx, id, basket[id], asOf)
		if err != nil {
			return nil, run.fail(err)
		}
		line, err := entity.NewReceiptLine(product.Snapshot(), basket[id], s.pricing.UnitPriceAt(product, asOf))
		if err != nil {
			return nil, run.fail(err)
		}
		draft.AddLine(line)
	}

	run.enter(enum.SaleStateVerifyingPayment)
	if err := checkPayment(draft, payment); err != nil {
		return nil, run.fail(err)
	}

	run.enter(enum.SaleStateCommitting)
	reservations := map[string]int(basket)
	if err := s.catalog.CommitReservations(ctx, reservations); err != nil {
		return nil, run.fail(err)
	}
	receipt, err := s.ledger.Commit(ctx, draft)
	if err != nil {
		if releaseErr := s.catalog.ReleaseReservations(ctx, reservations); releaseErr != nil {
			s.logger.ErrorContext(ctx, "failed to release stock after ledger failure",
				slog.String("error", releaseErr.Error()))
		}
		return nil, run.fail(err)
	}
	return receipt, nil
}

// sellPerLine prices each line and takes its stock before moving to the next.
// Nothing taken is returned on a later failure.
func (s *SaleService) sellPerLine(run *saleRun, basket entity.Basket, payment decimal.Decimal, draft *entity.ReceiptBuilder) (*entity.Receipt, error) {
	ctx, asOf := run.ctx, run.asOf

	run.enter(enum.SaleStatePricingAndReserving)
	for _, id := range basket.ProductIDs() {
		product, err := s.catalog.GetProduct(ctx, id)
		if err != nil {
			return nil, run.fail(err)
		}
		price := s.pricing.UnitPriceAt(product, asOf)

		snapshot, err := s.catalog.reserveAndCommitAt(ctx, id, basket[id], asOf)
		if err != nil {
			return nil, run.fail(err)
		}
		line, err := entity.NewReceiptLine(snapshot, basket[id], price)
		if err != nil {
			return nil, run.fail(err)
		}
		draft.AddLine(line)
	}

	run.enter(enum.SaleStateVerifyingPayment)
	if err := checkPayment(draft, payment); err != nil {
		return nil, run.fail(err)
	}

	run.enter(enum.SaleStateCommitting)
	receipt, err := s.ledger.Commit(ctx, draft)
	if err != nil {
		return nil, run.fail(err)
	}
	return receipt, nil
}

// FailedState extracts the state a failed sale stopped in
func FailedState(err error) (enum.SaleState, bool) {
	var failure *SaleFailure
	if errors.As(err, &failure) {
		return failure.State, true
	}
	return 0, false
}
