package entity

import (
	"time"

	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Product represents a stocked product in the catalog
type Product struct {
	ID              string               `gorm:"size:64;primaryKey" json:"id"`
	Name            string               `gorm:"size:255;not null" json:"name"`
	PurchaseCost    decimal.Decimal      `gorm:"type:decimal(12,2);not null" json:"purchase_cost"`
	Category        enum.ProductCategory `gorm:"default:0" json:"category"`
	ExpirationDate  time.Time            `gorm:"type:date;not null" json:"expiration_date"`
	MarkupPercent   decimal.Decimal      `gorm:"type:decimal(7,2);not null" json:"markup_percent"`
	QuantityInStock int                  `gorm:"default:0;check:quantity_in_stock >= 0" json:"quantity_in_stock"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// ProductSnapshot is the part of a product frozen onto a receipt line
type ProductSnapshot struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Category       enum.ProductCategory `json:"category"`
	ExpirationDate time.Time            `json:"expiration_date"`
}

// Validate checks the fields a product must carry before it can be catalogued
func (p *Product) Validate() error {
	var fieldErrors []apperror.FieldError
	if p.ID == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "id", Message: "is required"})
	}
	if p.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if p.PurchaseCost.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "purchase_cost", Message: "must not be negative"})
	}
	if p.MarkupPercent.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "markup_percent", Message: "must not be negative"})
	}
	if p.QuantityInStock < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "quantity_in_stock", Message: "must not be negative"})
	}
	if p.ExpirationDate.IsZero() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "expiration_date", Message: "is required"})
	}
	if !p.Category.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "category", Message: "is not a known category"})
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	err := apperror.NewInvalidArgumentError("Invalid product")
	err.Errors = fieldErrors
	return err
}

// DaysUntilExpiration returns the whole days from asOf to the expiration date.
// The result is negative once the product has expired.
func (p *Product) DaysUntilExpiration(asOf time.Time) int {
	return DaysBetween(asOf, p.ExpirationDate)
}

// IsExpired reports whether asOf falls on a date strictly after the expiration date
func (p *Product) IsExpired(asOf time.Time) bool {
	return p.DaysUntilExpiration(asOf) < 0
}

// Snapshot freezes the identifying fields used on receipts
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ID:             p.ID,
		Name:           p.Name,
		Category:       p.Category,
		ExpirationDate: p.ExpirationDate,
	}
}

// StockValue is the purchase cost of everything on hand
func (p *Product) StockValue() decimal.Decimal {
	return p.PurchaseCost.Mul(decimal.NewFromInt(int64(p.QuantityInStock)))
}

// DaysBetween counts calendar days from one date to another, ignoring the time of day.
// Each side is read in its own location.
func DaysBetween(from, to time.Time) int {
	return int(civilDate(to).Sub(civilDate(from)).Hours() / 24)
}

// DateOnly drops the time of day, keeping the calendar date of t
func DateOnly(t time.Time) time.Time {
	return civilDate(t)
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
