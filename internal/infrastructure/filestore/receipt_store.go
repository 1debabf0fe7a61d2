package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sangkips/retail-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/retail-pos/internal/domain/repository"
)

const (
	filePrefix    = "receipt_"
	renderedExt   = ".txt"
	serializedExt = ".json"
)

// ReceiptStore keeps each receipt as a text file plus a JSON file in one directory
type ReceiptStore struct {
	dir string
	mu  sync.Mutex
}

// NewReceiptStore creates the receipts directory if needed
func NewReceiptStore(dir string) (*ReceiptStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create receipts directory %s", dir)
	}
	return &ReceiptStore{dir: dir}, nil
}

var _ domainRepo.ReceiptRepository = (*ReceiptStore)(nil)

func (s *ReceiptStore) path(number int, ext string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s%d%s", filePrefix, number, ext))
}

// Save writes the text form first so a receipt is only listed once both files exist
func (s *ReceiptStore) Save(ctx context.Context, record *entity.ReceiptRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jsonPath := s.path(record.Number, serializedExt)
	if _, err := os.Stat(jsonPath); err == nil {
		return domainRepo.ErrDuplicate
	}

	if err := writeFileAtomic(s.path(record.Number, renderedExt), []byte(record.Rendered)); err != nil {
		return errors.Wrapf(err, "write rendered receipt %d", record.Number)
	}
	if err := writeFileAtomic(jsonPath, []byte(record.Payload)); err != nil {
		_ = os.Remove(s.path(record.Number, renderedExt))
		return errors.Wrapf(err, "write serialized receipt %d", record.Number)
	}
	return nil
}

func (s *ReceiptStore) GetRendered(ctx context.Context, number int) (string, error) {
	data, err := s.read(number, renderedExt)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *ReceiptStore) GetPayload(ctx context.Context, number int) ([]byte, error) {
	return s.read(number, serializedExt)
}

func (s *ReceiptStore) read(number int, ext string) ([]byte, error) {
	data, err := os.ReadFile(s.path(number, ext))
	if os.IsNotExist(err) {
		return nil, domainRepo.ErrRecordNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read receipt %d", number)
	}
	return data, nil
}

// List loads every receipt in the directory ordered by number
func (s *ReceiptStore) List(ctx context.Context) ([]entity.ReceiptRecord, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, filePrefix+"*"+serializedExt))
	if err != nil {
		return nil, errors.Wrap(err, "scan receipts directory")
	}

	numbers := make([]int, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(m), filePrefix), serializedExt)
		n, err := strconv.Atoi(name)
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	records := make([]entity.ReceiptRecord, 0, len(numbers))
	for _, n := range numbers {
		payload, err := s.read(n, serializedExt)
		if err != nil {
			return nil, err
		}
		rendered, err := s.read(n, renderedExt)
		if err != nil {
			return nil, err
		}
		rec := entity.ReceiptRecord{Number: n, Rendered: string(rendered), Payload: string(payload)}
		receipt, err := rec.Receipt()
		if err != nil {
			return nil, errors.Wrapf(err, "decode receipt %d", n)
		}
		rec.CashierID = receipt.Cashier().ID
		rec.IssuedAt = receipt.IssuedAt()
		rec.Total = receipt.TotalAmount()
		records = append(records, rec)
	}
	return records, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
