package repository

import (
	"context"

	"github.com/sangkips/retail-pos/internal/domain/entity"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	// Create stores a new product. Returns ErrDuplicate when the id is taken.
	Create(ctx context.Context, product *entity.Product) error
	// GetByID returns (nil, nil) when the product does not exist
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// List returns every product in insertion order
	List(ctx context.Context) ([]entity.Product, error)
	Count(ctx context.Context) (int64, error)
	// IncrementQuantity adds to the stock of one product. Returns ErrRecordNotFound for an unknown id
	// and ErrQuantityOverflow when the new stock would not fit in an int.
	IncrementQuantity(ctx context.Context, id string, amount int) error
	// AtomicDecrementQuantity atomically decrements stock only if sufficient.
	// Returns (true, nil) if successful, (false, nil) if insufficient stock, (false, err) on error.
	AtomicDecrementQuantity(ctx context.Context, id string, amount int) (bool, error)
	// AtomicDecrementBatch atomically decrements stock for multiple products.
	// Returns the product IDs that failed (insufficient stock), sorted ascending.
	// If any product fails, nothing is decremented.
	AtomicDecrementBatch(ctx context.Context, decrements map[string]int) (failedIDs []string, err error)
	// AtomicIncrementBatch atomically increments stock for multiple products (for releases).
	// Nothing is applied when any product is missing or would overflow.
	AtomicIncrementBatch(ctx context.Context, increments map[string]int) error
}
