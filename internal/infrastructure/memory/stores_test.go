package memory

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/retail-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCashierStore(t *testing.T) {
	ctx := context.Background()
	store := NewCashierStore()

	require.NoError(t, store.Create(ctx, &entity.Cashier{ID: "C002", Name: "Mariya Popova", MonthlySalary: decimal.NewFromInt(1600)}))
	require.NoError(t, store.Create(ctx, &entity.Cashier{ID: "C001", Name: "Ivan Ivanov", MonthlySalary: decimal.NewFromInt(1500)}))
	assert.ErrorIs(t, store.Create(ctx, &entity.Cashier{ID: "C001", Name: "Other"}), domainRepo.ErrDuplicate)

	c, err := store.GetByID(ctx, "C001")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Ivan Ivanov", c.Name)

	missing, err := store.GetByID(ctx, "C999")
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "C002", list[0].ID)
}

func TestIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	store := NewIdempotencyStore()
	now := time.Now()

	key := &entity.IdempotencyKey{Key: "abc", ClientID: "10.0.0.1", ResponseCode: 201, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, store.Create(ctx, key))
	assert.ErrorIs(t, store.Create(ctx, key), domainRepo.ErrDuplicate)

	got, err := store.GetByKey(ctx, "abc", "10.0.0.1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 201, got.ResponseCode)

	other, err := store.GetByKey(ctx, "abc", "10.0.0.2")
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, store.DeleteExpired(ctx, now.Add(2*time.Hour)))
	gone, err := store.GetByKey(ctx, "abc", "10.0.0.1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestReceiptStore(t *testing.T) {
	ctx := context.Background()
	store := NewReceiptStore()

	require.NoError(t, store.Save(ctx, &entity.ReceiptRecord{Number: 2, Rendered: "two", Payload: `{"number":2}`}))
	require.NoError(t, store.Save(ctx, &entity.ReceiptRecord{Number: 1, Rendered: "one", Payload: `{"number":1}`}))
	assert.ErrorIs(t, store.Save(ctx, &entity.ReceiptRecord{Number: 1}), domainRepo.ErrDuplicate)

	text, err := store.GetRendered(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "two", text)

	payload, err := store.GetPayload(ctx, 1)
	require.NoError(t, err)
	assert.JSONEq(t, `{"number":1}`, string(payload))

	_, err = store.GetRendered(ctx, 3)
	assert.ErrorIs(t, err, domainRepo.ErrRecordNotFound)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].Number)
}
