package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/retail-pos/internal/domain/repository"
)

type cashierStore struct {
	mu       sync.RWMutex
	cashiers map[string]entity.Cashier
	order    []string
}

// NewCashierStore creates an in-memory cashier repository
func NewCashierStore() domainRepo.CashierRepository {
	return &cashierStore{cashiers: make(map[string]entity.Cashier)}
}

func (s *cashierStore) Create(ctx context.Context, cashier *entity.Cashier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.cashiers[cashier.ID]; exists {
		return domainRepo.ErrDuplicate
	}
	stored := *cashier
	stored.CreatedAt = time.Now()
	s.cashiers[cashier.ID] = stored
	s.order = append(s.order, cashier.ID)
	return nil
}

func (s *cashierStore) GetByID(ctx context.Context, id string) (*entity.Cashier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cashiers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *cashierStore) List(ctx context.Context) ([]entity.Cashier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cashiers := make([]entity.Cashier, 0, len(s.order))
	for _, id := range s.order {
		cashiers = append(cashiers, s.cashiers[id])
	}
	return cashiers, nil
}
