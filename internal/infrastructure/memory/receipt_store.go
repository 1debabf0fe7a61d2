package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/retail-pos/internal/domain/repository"
)

type receiptStore struct {
	mu      sync.RWMutex
	records map[int]entity.ReceiptRecord
}

// NewReceiptStore creates a receipt repository that keeps records in memory only
func NewReceiptStore() domainRepo.ReceiptRepository {
	return &receiptStore{records: make(map[int]entity.ReceiptRecord)}
}

func (s *receiptStore) Save(ctx context.Context, record *entity.ReceiptRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[record.Number]; exists {
		return domainRepo.ErrDuplicate
	}
	s.records[record.Number] = *record
	return nil
}

func (s *receiptStore) GetRendered(ctx context.Context, number int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[number]
	if !ok {
		return "", domainRepo.ErrRecordNotFound
	}
	return rec.Rendered, nil
}

func (s *receiptStore) GetPayload(ctx context.Context, number int) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[number]
	if !ok {
		return nil, domainRepo.ErrRecordNotFound
	}
	return []byte(rec.Payload), nil
}

func (s *receiptStore) List(ctx context.Context) ([]entity.ReceiptRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]entity.ReceiptRecord, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Number < records[j].Number })
	return records, nil
}
