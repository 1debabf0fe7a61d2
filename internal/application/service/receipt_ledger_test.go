package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/sangkips/retail-pos/internal/domain/repository"
	"github.com/sangkips/retail-pos/internal/infrastructure/logging"
	"github.com/sangkips/retail-pos/internal/infrastructure/memory"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/sangkips/retail-pos/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var ivan = entity.Cashier{ID: "C001", Name: "Ivan Ivanov", MonthlySalary: dec("1500")}

func draftReceipt(t *testing.T, qty int, price, payment string) *entity.ReceiptBuilder {
	t.Helper()
	line, err := entity.NewReceiptLine(entity.ProductSnapshot{
		ID:             "P001",
		Name:           "Milk",
		Category:       enum.ProductCategoryFood,
		ExpirationDate: entity.DateOnly(today.AddDate(0, 0, 10)),
	}, qty, dec(price))
	require.NoError(t, err)
	return entity.NewReceiptBuilder().Cashier(ivan).IssuedAt(today).AddLine(line).Payment(dec(payment))
}

func TestReceiptLedger_Commit(t *testing.T) {
	ledger := NewReceiptLedger(memory.NewReceiptStore(), "Test Store", logging.Discard())
	ctx := context.Background()

	assert.Equal(t, 1, ledger.NextNumber())
	assert.True(t, ledger.TotalRevenue().IsZero())

	r1, err := ledger.Commit(ctx, draftReceipt(t, 2, "3.25", "10"))
	require.NoError(t, err)
	r2, err := ledger.Commit(ctx, draftReceipt(t, 1, "3.25", "3.25"))
	require.NoError(t, err)

	assert.Equal(t, 1, r1.Number())
	assert.Equal(t, 2, r2.Number())
	assert.Equal(t, 3, ledger.NextNumber())
	assert.Equal(t, 2, ledger.ReceiptCount())
	assert.Equal(t, "9.75", ledger.TotalRevenue().StringFixed(2))

	found, err := ledger.Receipt(2)
	require.NoError(t, err)
	assert.Same(t, r2, found)

	_, err = ledger.Receipt(3)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestReceiptLedger_CommitRejectsShortPayment(t *testing.T) {
	ledger := NewReceiptLedger(memory.NewReceiptStore(), "Test Store", logging.Discard())

	_, err := ledger.Commit(context.Background(), draftReceipt(t, 2, "3.25", "6"))
	assert.ErrorIs(t, err, apperror.ErrInsufficientPayment)
	assert.Equal(t, 1, ledger.NextNumber())
}

func TestReceiptLedger_SaveFailureKeepsCounter(t *testing.T) {
	repo := new(mockReceiptRepository)
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("read-only file system"))

	ledger := NewReceiptLedger(repo, "Test Store", logging.Discard())
	_, err := ledger.Commit(context.Background(), draftReceipt(t, 1, "3.25", "5"))

	require.ErrorIs(t, err, apperror.ErrPersistence)
	assert.Contains(t, err.Error(), "read-only file system")
	assert.Equal(t, 1, ledger.NextNumber())
	assert.Equal(t, 0, ledger.ReceiptCount())
	assert.True(t, ledger.TotalRevenue().IsZero())
	repo.AssertNumberOfCalls(t, "Save", 1)
}

func TestReceiptLedger_ReadStoredForms(t *testing.T) {
	ledger := NewReceiptLedger(memory.NewReceiptStore(), "Test Store", logging.Discard())
	ctx := context.Background()

	r, err := ledger.Commit(ctx, draftReceipt(t, 2, "3.25", "10"))
	require.NoError(t, err)

	text, err := ledger.ReadRendered(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, RenderReceipt("Test Store", r), text)

	data, err := ledger.ReadSerialized(ctx, 1)
	require.NoError(t, err)
	var decoded entity.Receipt
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 1, decoded.Number())
	assert.True(t, decoded.TotalAmount().Equal(r.TotalAmount()))
	assert.True(t, decoded.Change().Equal(r.Change()))

	_, err = ledger.ReadRendered(ctx, 7)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = ledger.ReadSerialized(ctx, 7)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestReceiptLedger_ReadFailure(t *testing.T) {
	repo := new(mockReceiptRepository)
	repo.On("GetRendered", mock.Anything, 4).Return("", errors.New("permission denied"))
	repo.On("GetPayload", mock.Anything, 4).Return(nil, repository.ErrRecordNotFound)

	ledger := NewReceiptLedger(repo, "Test Store", logging.Discard())
	_, err := ledger.ReadRendered(context.Background(), 4)
	assert.ErrorIs(t, err, apperror.ErrPersistence)
	_, err = ledger.ReadSerialized(context.Background(), 4)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestReceiptLedger_Restore(t *testing.T) {
	store := memory.NewReceiptStore()
	ctx := context.Background()

	first := NewReceiptLedger(store, "Test Store", logging.Discard())
	for i := 0; i < 3; i++ {
		_, err := first.Commit(ctx, draftReceipt(t, 1, "3.25", "5"))
		require.NoError(t, err)
	}

	restarted := NewReceiptLedger(store, "Test Store", logging.Discard())
	require.NoError(t, restarted.Restore(ctx))
	assert.Equal(t, 4, restarted.NextNumber())
	assert.Equal(t, 3, restarted.ReceiptCount())
	assert.Equal(t, "9.75", restarted.TotalRevenue().StringFixed(2))

	r, err := restarted.Commit(ctx, draftReceipt(t, 1, "3.25", "5"))
	require.NoError(t, err)
	assert.Equal(t, 4, r.Number())
}

func TestReceiptLedger_RestoreFailure(t *testing.T) {
	repo := new(mockReceiptRepository)
	repo.On("List", mock.Anything).Return(nil, errors.New("connection refused"))

	ledger := NewReceiptLedger(repo, "Test Store", logging.Discard())
	assert.ErrorIs(t, ledger.Restore(context.Background()), apperror.ErrPersistence)
	assert.Equal(t, 1, ledger.NextNumber())
}

func TestReceiptLedger_Page(t *testing.T) {
	ledger := NewReceiptLedger(memory.NewReceiptStore(), "Test Store", logging.Discard())
	for i := 0; i < 5; i++ {
		_, err := ledger.Commit(context.Background(), draftReceipt(t, 1, "1.00", "1"))
		require.NoError(t, err)
	}

	page, meta := ledger.Page(&pagination.PaginationParams{Page: 2, PerPage: 2})
	require.Len(t, page, 2)
	assert.Equal(t, 3, page[0].Number())
	assert.Equal(t, 4, page[1].Number())
	assert.EqualValues(t, 5, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}

func TestRenderReceipt(t *testing.T) {
	r, err := draftReceipt(t, 2, "3.25", "10").Number(12).Build()
	require.NoError(t, err)

	want := "==================================================\n" +
		"Test Store\n" +
		"RECEIPT #12\n" +
		"==================================================\n" +
		"Cashier: Ivan Ivanov (C001)\n" +
		"Date and time: 10.03.2026 12:00:00\n" +
		"--------------------------------------------------\n" +
		"ARTICLES:\n" +
		"--------------------------------------------------\n" +
		"Milk x 2 @ 3.25 EUR = 6.50 EUR\n" +
		"--------------------------------------------------\n" +
		"SUM: 6.50 EUR\n" +
		"PAID: 10.00 EUR\n" +
		"CHANGE: 3.50 EUR\n" +
		"==================================================\n"
	assert.Equal(t, want, RenderReceipt("Test Store", r))
	assert.Equal(t, RenderReceipt("Test Store", r), RenderReceipt("Test Store", r))
}
