package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/retail-pos/internal/domain/repository"
)

type idempotencyStore struct {
	mu   sync.Mutex
	keys map[string]entity.IdempotencyKey
}

// NewIdempotencyStore creates an in-memory idempotency key repository
func NewIdempotencyStore() domainRepo.IdempotencyRepository {
	return &idempotencyStore{keys: make(map[string]entity.IdempotencyKey)}
}

func idempotencyMapKey(key, clientID string) string {
	return clientID + "\x00" + key
}

func (s *idempotencyStore) GetByKey(ctx context.Context, key, clientID string) (*entity.IdempotencyKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ikey, ok := s.keys[idempotencyMapKey(key, clientID)]
	if !ok {
		return nil, nil
	}
	return &ikey, nil
}

func (s *idempotencyStore) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := idempotencyMapKey(ikey.Key, ikey.ClientID)
	if _, exists := s.keys[k]; exists {
		return domainRepo.ErrDuplicate
	}
	stored := *ikey
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.keys[k] = stored
	return nil
}

func (s *idempotencyStore) DeleteExpired(ctx context.Context, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ikey := range s.keys {
		if ikey.IsExpiredAt(now) {
			delete(s.keys, k)
		}
	}
	return nil
}
