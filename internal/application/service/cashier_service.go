package service

import (
	"context"
	"errors"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/repository"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// CashierService is the directory of cashiers allowed to ring up sales
type CashierService struct {
	cashierRepo repository.CashierRepository
}

// NewCashierService creates a new cashier service
func NewCashierService(cashierRepo repository.CashierRepository) *CashierService {
	return &CashierService{cashierRepo: cashierRepo}
}

// AddCashier registers a cashier
func (s *CashierService) AddCashier(ctx context.Context, cashier *entity.Cashier) error {
	if cashier == nil {
		return apperror.NewInvalidArgumentError("Cashier is required")
	}
	if err := cashier.Validate(); err != nil {
		return err
	}
	if err := s.cashierRepo.Create(ctx, cashier); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return apperror.NewDuplicateIDError("Cashier", cashier.ID)
		}
		return apperror.NewPersistenceError("Failed to store cashier", err)
	}
	return nil
}

// Lookup resolves a cashier by ID
func (s *CashierService) Lookup(ctx context.Context, id string) (*entity.Cashier, error) {
	cashier, err := s.cashierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load cashier", err)
	}
	if cashier == nil {
		return nil, apperror.NewNotFoundError("Cashier " + id)
	}
	return cashier, nil
}

func (s *CashierService) ListCashiers(ctx context.Context) ([]entity.Cashier, error) {
	cashiers, err := s.cashierRepo.List(ctx)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to list cashiers", err)
	}
	return cashiers, nil
}

// TotalSalaries sums the monthly salaries of every cashier
func (s *CashierService) TotalSalaries(ctx context.Context) (decimal.Decimal, error) {
	cashiers, err := s.ListCashiers(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, c := range cashiers {
		total = total.Add(c.MonthlySalary)
	}
	return total, nil
}
