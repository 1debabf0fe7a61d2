package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/repository"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/sangkips/retail-pos/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ReceiptLedger numbers, records and totals issued receipts.
// The counter only advances once a receipt has been persisted.
type ReceiptLedger struct {
	mu         sync.RWMutex
	repo       repository.ReceiptRepository
	storeName  string
	logger     *slog.Logger
	nextNumber int
	receipts   []*entity.Receipt
	revenue    decimal.Decimal
}

// NewReceiptLedger creates an empty ledger whose first receipt is #1
func NewReceiptLedger(repo repository.ReceiptRepository, storeName string, logger *slog.Logger) *ReceiptLedger {
	return &ReceiptLedger{
		repo:       repo,
		storeName:  storeName,
		logger:     logger,
		nextNumber: 1,
		revenue:    decimal.Zero,
	}
}

// NextNumber returns the number the next committed receipt will get
func (l *ReceiptLedger) NextNumber() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.nextNumber
}

// Commit numbers the draft, persists it and records it.
// On any failure the ledger is left unchanged.
func (l *ReceiptLedger) Commit(ctx context.Context, draft *entity.ReceiptBuilder) (*entity.Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	number := l.nextNumber
	receipt, err := draft.Number(number).Build()
	if err != nil {
		return nil, err
	}

	record, err := entity.NewReceiptRecord(receipt, RenderReceipt(l.storeName, receipt))
	if err != nil {
		return nil, apperror.NewPersistenceError(fmt.Sprintf("Failed to serialize receipt #%d", number), err)
	}
	if err := l.repo.Save(ctx, record); err != nil {
		return nil, apperror.NewPersistenceError(fmt.Sprintf("Failed to persist receipt #%d", number), err)
	}

	l.nextNumber++
	l.receipts = append(l.receipts, receipt)
	l.revenue = l.revenue.Add(receipt.TotalAmount())

	l.logger.InfoContext(ctx, "receipt committed",
		slog.Int("number", number),
		slog.String("cashier_id", receipt.Cashier().ID),
		slog.String("total", receipt.TotalAmount().StringFixed(2)))
	return receipt, nil
}

// TotalRevenue is the sum of every committed receipt total
func (l *ReceiptLedger) TotalRevenue() decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.revenue
}

// ReceiptCount is the number of receipts committed so far
func (l *ReceiptLedger) ReceiptCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.receipts)
}

// Receipts returns the committed receipts in issue order
func (l *ReceiptLedger) Receipts() []*entity.Receipt {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*entity.Receipt, len(l.receipts))
	copy(out, l.receipts)
	return out
}

// Receipt finds a committed receipt by number
func (l *ReceiptLedger) Receipt(number int) (*entity.Receipt, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, r := range l.receipts {
		if r.Number() == number {
			return r, nil
		}
	}
	return nil, apperror.NewNotFoundError(fmt.Sprintf("Receipt #%d", number))
}

// Page returns one page of committed receipts in issue order
func (l *ReceiptLedger) Page(params *pagination.PaginationParams) ([]*entity.Receipt, *pagination.Pagination) {
	return pagination.Slice(l.Receipts(), params)
}

// ReadRendered loads the stored text form of a receipt
func (l *ReceiptLedger) ReadRendered(ctx context.Context, number int) (string, error) {
	text, err := l.repo.GetRendered(ctx, number)
	if err != nil {
		return "", l.readError(number, err)
	}
	return text, nil
}

// ReadSerialized loads the stored JSON form of a receipt
func (l *ReceiptLedger) ReadSerialized(ctx context.Context, number int) ([]byte, error) {
	data, err := l.repo.GetPayload(ctx, number)
	if err != nil {
		return nil, l.readError(number, err)
	}
	return data, nil
}

func (l *ReceiptLedger) readError(number int, err error) error {
	if errors.Is(err, repository.ErrRecordNotFound) {
		return apperror.NewNotFoundError(fmt.Sprintf("Receipt #%d", number))
	}
	return apperror.NewPersistenceError(fmt.Sprintf("Failed to read receipt #%d", number), err)
}

// Restore reloads previously persisted receipts so numbering continues after a restart
func (l *ReceiptLedger) Restore(ctx context.Context) error {
	records, err := l.repo.List(ctx)
	if err != nil {
		return apperror.NewPersistenceError("Failed to list stored receipts", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	receipts := make([]*entity.Receipt, 0, len(records))
	revenue := decimal.Zero
	next := 1
	for i := range records {
		receipt, err := records[i].Receipt()
		if err != nil {
			return apperror.NewPersistenceError(fmt.Sprintf("Failed to decode receipt #%d", records[i].Number), err)
		}
		receipts = append(receipts, receipt)
		revenue = revenue.Add(receipt.TotalAmount())
		if receipt.Number() >= next {
			next = receipt.Number() + 1
		}
	}

	l.receipts = receipts
	l.revenue = revenue
	l.nextNumber = next
	l.logger.InfoContext(ctx, "receipt ledger restored",
		slog.Int("receipts", len(receipts)), slog.Int("next_number", next))
	return nil
}
