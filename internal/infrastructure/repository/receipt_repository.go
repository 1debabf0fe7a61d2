package repository

import (
	"context"
	"errors"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/retail-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a receipt repository backed by the receipts table
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Save(ctx context.Context, record *entity.ReceiptRecord) error {
	return translateCreateError(r.db.WithContext(ctx).Create(record).Error)
}

func (r *receiptRepository) get(ctx context.Context, number int, column string) (*entity.ReceiptRecord, error) {
	var record entity.ReceiptRecord
	err := r.db.WithContext(ctx).Select("number", column).First(&record, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainRepo.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *receiptRepository) GetRendered(ctx context.Context, number int) (string, error) {
	record, err := r.get(ctx, number, "rendered")
	if err != nil {
		return "", err
	}
	return record.Rendered, nil
}

func (r *receiptRepository) GetPayload(ctx context.Context, number int) ([]byte, error) {
	record, err := r.get(ctx, number, "payload")
	if err != nil {
		return nil, err
	}
	return []byte(record.Payload), nil
}

func (r *receiptRepository) List(ctx context.Context) ([]entity.ReceiptRecord, error) {
	var records []entity.ReceiptRecord
	err := r.db.WithContext(ctx).Scopes(ByReceiptNumber).Find(&records).Error
	return records, err
}
