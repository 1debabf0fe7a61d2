package repository

import (
	"context"
	"errors"
	"math"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/retail-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return translateCreateError(r.db.WithContext(ctx).Create(product).Error)
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) List(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).Scopes(InsertionOrder).Find(&products).Error
	return products, err
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Product{}).Count(&total).Error
	return total, err
}

func (r *productRepository) IncrementQuantity(ctx context.Context, id string, amount int) error {
	result := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ? AND quantity_in_stock <= ?", id, math.MaxInt-amount).
		Update("quantity_in_stock", gorm.Expr("quantity_in_stock + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingOrOverflow(r.db.WithContext(ctx), id)
	}
	return nil
}

// missingOrOverflow explains an increment that matched no row
func (r *productRepository) missingOrOverflow(db *gorm.DB, id string) error {
	var count int64
	if err := db.Model(&entity.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainRepo.ErrRecordNotFound
	}
	return domainRepo.ErrQuantityOverflow
}

// AtomicDecrementQuantity atomically decrements stock only if sufficient quantity exists.
// Uses: UPDATE products SET quantity_in_stock = quantity_in_stock - amount WHERE id = ? AND quantity_in_stock >= amount
func (r *productRepository) AtomicDecrementQuantity(ctx context.Context, id string, amount int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ? AND quantity_in_stock >= ?", id, amount).
		Update("quantity_in_stock", gorm.Expr("quantity_in_stock - ?", amount))

	if result.Error != nil {
		return false, result.Error
	}

	// If no rows were affected, insufficient stock
	return result.RowsAffected > 0, nil
}

// errStockShortage rolls back a batch decrement without surfacing as a failure
var errStockShortage = errors.New("stock shortage")

// AtomicDecrementBatch atomically decrements stock for multiple products in a single transaction.
// If any product has insufficient stock, the entire transaction is rolled back.
func (r *productRepository) AtomicDecrementBatch(ctx context.Context, decrements map[string]int) ([]string, error) {
	if len(decrements) == 0 {
		return nil, nil
	}

	var failedIDs []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range sortedKeys(decrements) {
			result := tx.Model(&entity.Product{}).
				Where("id = ? AND quantity_in_stock >= ?", id, decrements[id]).
				Update("quantity_in_stock", gorm.Expr("quantity_in_stock - ?", decrements[id]))

			if result.Error != nil {
				return result.Error
			}

			if result.RowsAffected == 0 {
				failedIDs = append(failedIDs, id)
			}
		}

		if len(failedIDs) > 0 {
			return errStockShortage
		}

		return nil
	})

	if errors.Is(err, errStockShortage) {
		return failedIDs, nil
	}
	return nil, err
}

// AtomicIncrementBatch atomically increments stock for multiple products (for releases).
func (r *productRepository) AtomicIncrementBatch(ctx context.Context, increments map[string]int) error {
	if len(increments) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range sortedKeys(increments) {
			result := tx.Model(&entity.Product{}).
				Where("id = ? AND quantity_in_stock <= ?", id, math.MaxInt-increments[id]).
				Update("quantity_in_stock", gorm.Expr("quantity_in_stock + ?", increments[id]))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return r.missingOrOverflow(tx, id)
			}
		}
		return nil
	})
}
