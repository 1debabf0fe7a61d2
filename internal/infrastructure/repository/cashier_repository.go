package repository

import (
	"context"
	"errors"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/retail-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type cashierRepository struct {
	db *gorm.DB
}

// NewCashierRepository creates a new cashier repository
func NewCashierRepository(db *gorm.DB) domainRepo.CashierRepository {
	return &cashierRepository{db: db}
}

func (r *cashierRepository) Create(ctx context.Context, cashier *entity.Cashier) error {
	return translateCreateError(r.db.WithContext(ctx).Create(cashier).Error)
}

func (r *cashierRepository) GetByID(ctx context.Context, id string) (*entity.Cashier, error) {
	var cashier entity.Cashier
	err := r.db.WithContext(ctx).First(&cashier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cashier, err
}

func (r *cashierRepository) List(ctx context.Context) ([]entity.Cashier, error) {
	var cashiers []entity.Cashier
	err := r.db.WithContext(ctx).Scopes(InsertionOrder).Find(&cashiers).Error
	return cashiers, err
}
