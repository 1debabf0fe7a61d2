package repository

import (
	"context"

	"github.com/sangkips/retail-pos/internal/domain/entity"
)

// ReceiptRepository persists issued receipts in rendered and serialized form
type ReceiptRepository interface {
	// Save stores a receipt record. Returns ErrDuplicate when the number is taken.
	Save(ctx context.Context, record *entity.ReceiptRecord) error
	// GetRendered returns the human-readable text. Returns ErrRecordNotFound for an unknown number.
	GetRendered(ctx context.Context, number int) (string, error)
	// GetPayload returns the serialized receipt. Returns ErrRecordNotFound for an unknown number.
	GetPayload(ctx context.Context, number int) ([]byte, error)
	// List returns every stored record ordered by number
	List(ctx context.Context) ([]entity.ReceiptRecord, error)
}
