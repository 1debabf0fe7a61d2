package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/retail-pos/internal/domain/repository"
)

type productStore struct {
	mu       sync.RWMutex
	products map[string]*entity.Product
	order    []string
}

// NewProductStore creates an in-memory product repository that keeps insertion order
func NewProductStore() domainRepo.ProductRepository {
	return &productStore{products: make(map[string]*entity.Product)}
}

func (s *productStore) Create(ctx context.Context, product *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ID]; exists {
		return domainRepo.ErrDuplicate
	}
	now := time.Now()
	stored := *product
	stored.CreatedAt, stored.UpdatedAt = now, now
	s.products[product.ID] = &stored
	s.order = append(s.order, product.ID)
	return nil
}

func (s *productStore) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	out := *p
	return &out, nil
}

func (s *productStore) List(ctx context.Context) ([]entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]entity.Product, 0, len(s.order))
	for _, id := range s.order {
		products = append(products, *s.products[id])
	}
	return products, nil
}

func (s *productStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.order)), nil
}

func (s *productStore) IncrementQuantity(ctx context.Context, id string, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return domainRepo.ErrRecordNotFound
	}
	if !fitsIncrement(p.QuantityInStock, amount) {
		return domainRepo.ErrQuantityOverflow
	}
	p.QuantityInStock += amount
	p.UpdatedAt = time.Now()
	return nil
}

func (s *productStore) AtomicDecrementQuantity(ctx context.Context, id string, amount int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return false, domainRepo.ErrRecordNotFound
	}
	if p.QuantityInStock < amount {
		return false, nil
	}
	p.QuantityInStock -= amount
	p.UpdatedAt = time.Now()
	return true, nil
}

// AtomicDecrementBatch checks every product before touching any of them
func (s *productStore) AtomicDecrementBatch(ctx context.Context, decrements map[string]int) ([]string, error) {
	if len(decrements) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var failedIDs []string
	for id, amount := range decrements {
		p, ok := s.products[id]
		if !ok || p.QuantityInStock < amount {
			failedIDs = append(failedIDs, id)
		}
	}
	if len(failedIDs) > 0 {
		sort.Strings(failedIDs)
		return failedIDs, nil
	}

	now := time.Now()
	for id, amount := range decrements {
		p := s.products[id]
		p.QuantityInStock -= amount
		p.UpdatedAt = now
	}
	return nil, nil
}

func (s *productStore) AtomicIncrementBatch(ctx context.Context, increments map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, amount := range increments {
		p, ok := s.products[id]
		if !ok {
			return domainRepo.ErrRecordNotFound
		}
		if !fitsIncrement(p.QuantityInStock, amount) {
			return domainRepo.ErrQuantityOverflow
		}
	}
	now := time.Now()
	for id, amount := range increments {
		p := s.products[id]
		p.QuantityInStock += amount
		p.UpdatedAt = now
	}
	return nil
}

// fitsIncrement reports whether stock+amount stays within [0, MaxInt]
func fitsIncrement(stock, amount int) bool {
	if amount < 0 {
		return stock+amount >= 0
	}
	return amount <= math.MaxInt-stock
}
