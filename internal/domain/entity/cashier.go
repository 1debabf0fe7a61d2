package entity

import (
	"time"

	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Cashier represents a cashier who can ring up sales
type Cashier struct {
	ID            string          `gorm:"size:64;primaryKey" json:"id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	MonthlySalary decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"monthly_salary"`
	CreatedAt     time.Time       `json:"-"`
}

// TableName returns the table name for the Cashier model
func (Cashier) TableName() string {
	return "cashiers"
}

// Equal compares cashiers by identity
func (c Cashier) Equal(other Cashier) bool {
	return c.ID == other.ID
}

// Validate checks the fields a cashier must carry
func (c *Cashier) Validate() error {
	var fieldErrors []apperror.FieldError
	if c.ID == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "id", Message: "is required"})
	}
	if c.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if c.MonthlySalary.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "monthly_salary", Message: "must not be negative"})
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	err := apperror.NewInvalidArgumentError("Invalid cashier")
	err.Errors = fieldErrors
	return err
}
