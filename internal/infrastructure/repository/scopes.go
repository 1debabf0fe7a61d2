package repository

import (
	"errors"
	"sort"

	domainRepo "github.com/sangkips/retail-pos/internal/domain/repository"
	"gorm.io/gorm"
)

// InsertionOrder sorts catalog rows the way they were added
func InsertionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}

// ByReceiptNumber sorts receipts by their issue number
func ByReceiptNumber(db *gorm.DB) *gorm.DB {
	return db.Order("number ASC")
}

// translateCreateError maps driver duplicate key errors to the domain sentinel
func translateCreateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainRepo.ErrDuplicate
	}
	return err
}

// sortedKeys keeps lock acquisition order stable across concurrent transactions
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
