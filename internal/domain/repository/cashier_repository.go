package repository

import (
	"context"

	"github.com/sangkips/retail-pos/internal/domain/entity"
)

// CashierRepository defines the interface for cashier data operations
type CashierRepository interface {
	// Create stores a new cashier. Returns ErrDuplicate when the id is taken.
	Create(ctx context.Context, cashier *entity.Cashier) error
	// GetByID returns (nil, nil) when the cashier does not exist
	GetByID(ctx context.Context, id string) (*entity.Cashier, error)
	List(ctx context.Context) ([]entity.Cashier, error)
}
