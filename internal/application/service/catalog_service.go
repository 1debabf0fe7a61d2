package service

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/repository"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// CatalogService owns products and their stock counters
type CatalogService struct {
	productRepo repository.ProductRepository
	clock       Clock
}

// NewCatalogService creates a new catalog service
func NewCatalogService(productRepo repository.ProductRepository, clock Clock) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		clock:       clock,
	}
}

func productNotFound(id string) error {
	return apperror.NewNotFoundError("Product " + id)
}

// AddProduct registers a new product. The expiration date is kept as a calendar date.
func (s *CatalogService) AddProduct(ctx context.Context, product *entity.Product) error {
	if product == nil {
		return apperror.NewInvalidArgumentError("Product is required")
	}
	if err := product.Validate(); err != nil {
		return err
	}

	product.ExpirationDate = entity.DateOnly(product.ExpirationDate)
	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return apperror.NewDuplicateIDError("Product", product.ID)
		}
		return apperror.NewPersistenceError("Failed to store product", err)
	}
	return nil
}

// GetProduct retrieves a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load product", err)
	}
	if product == nil {
		return nil, productNotFound(id)
	}
	return product, nil
}

// ListProducts returns every product, expired ones included, in insertion order
func (s *CatalogService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to list products", err)
	}
	return products, nil
}

// ListAvailable returns the products that have not expired, in insertion order.
// Expired products stay in the catalog.
func (s *CatalogService) ListAvailable(ctx context.Context) ([]entity.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	asOf := s.clock()
	available := make([]entity.Product, 0, len(products))
	for i := range products {
		if !products[i].IsExpired(asOf) {
			available = append(available, products[i])
		}
	}
	return available, nil
}

// Restock adds qty units to a product
func (s *CatalogService) Restock(ctx context.Context, id string, qty int) (*entity.Product, error) {
	if qty <= 0 {
		return nil, apperror.NewInvalidArgumentError("Restock quantity must be positive")
	}
	if err := s.productRepo.IncrementQuantity(ctx, id, qty); err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, productNotFound(id)
		case errors.Is(err, repository.ErrQuantityOverflow):
			return nil, apperror.NewInvalidArgumentError("Restock quantity exceeds the maximum stock level")
		}
		return nil, apperror.NewPersistenceError("Failed to restock product", err)
	}
	return s.GetProduct(ctx, id)
}

// ValidateLine checks that qty units of a product can be sold at asOf without changing stock
func (s *CatalogService) ValidateLine(ctx context.Context, id string, qty int, asOf time.Time) (*entity.Product, error) {
	if qty <= 0 {
		return nil, apperror.NewInvalidArgumentError("Quantity for product " + id + " must be positive")
	}
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.IsExpired(asOf) {
		return nil, apperror.NewExpiredProductError(product.ID, product.Name, product.ExpirationDate)
	}
	if qty > product.QuantityInStock {
		return nil, apperror.NewInsufficientStockError(product.ID, product.Name, qty, product.QuantityInStock)
	}
	return product, nil
}

// ReserveAndCommit validates one line and decrements its stock immediately
func (s *CatalogService) ReserveAndCommit(ctx context.Context, id string, qty int) (entity.ProductSnapshot, error) {
	return s.reserveAndCommitAt(ctx, id, qty, s.clock())
}

func (s *CatalogService) reserveAndCommitAt(ctx context.Context, id string, qty int, asOf time.Time) (entity.ProductSnapshot, error) {
	product, err := s.ValidateLine(ctx, id, qty, asOf)
	if err != nil {
		return entity.ProductSnapshot{}, err
	}

	ok, err := s.productRepo.AtomicDecrementQuantity(ctx, id, qty)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return entity.ProductSnapshot{}, productNotFound(id)
		}
		return entity.ProductSnapshot{}, apperror.NewPersistenceError("Failed to update stock", err)
	}
	if !ok {
		// stock moved between the check and the update
		return entity.ProductSnapshot{}, s.shortage(ctx, id, qty)
	}
	return product.Snapshot(), nil
}

// CommitReservations decrements stock for every line, or for none of them
func (s *CatalogService) CommitReservations(ctx context.Context, reservations map[string]int) error {
	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, reservations)
	if err != nil {
		return apperror.NewPersistenceError("Failed to update stock", err)
	}
	if len(failedIDs) > 0 {
		return s.shortage(ctx, failedIDs[0], reservations[failedIDs[0]])
	}
	return nil
}

// ReleaseReservations returns stock taken by CommitReservations
func (s *CatalogService) ReleaseReservations(ctx context.Context, reservations map[string]int) error {
	if err := s.productRepo.AtomicIncrementBatch(ctx, reservations); err != nil {
		return apperror.NewPersistenceError("Failed to restore stock", err)
	}
	return nil
}

func (s *CatalogService) shortage(ctx context.Context, id string, requested int) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	return apperror.NewInsufficientStockError(product.ID, product.Name, requested, product.QuantityInStock)
}

// IsAvailable reports whether qty units of a product could be sold now
func (s *CatalogService) IsAvailable(ctx context.Context, id string, qty int) (bool, error) {
	_, err := s.ValidateLine(ctx, id, qty, s.clock())
	if err == nil {
		return true, nil
	}
	switch apperror.KindOf(err) {
	case apperror.KindExpiredProduct, apperror.KindInsufficientStock, apperror.KindInvalidArgument:
		return false, nil
	}
	return false, err
}

// ProductCount returns the number of catalogued products
func (s *CatalogService) ProductCount(ctx context.Context) (int64, error) {
	n, err := s.productRepo.Count(ctx)
	if err != nil {
		return 0, apperror.NewPersistenceError("Failed to count products", err)
	}
	return n, nil
}

// TotalPurchaseValue sums purchase cost times stock over the whole catalog
func (s *CatalogService) TotalPurchaseValue(ctx context.Context) (decimal.Decimal, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range products {
		total = total.Add(products[i].StockValue())
	}
	return total, nil
}

// DaysUntilExpiration returns whole days from asOf to the product's expiration date
func (s *CatalogService) DaysUntilExpiration(product *entity.Product, asOf time.Time) int {
	return product.DaysUntilExpiration(asOf)
}
