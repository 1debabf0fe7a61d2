package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies an application error independently of its message
type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindDuplicateID         Kind = "duplicate_id"
	KindInvalidArgument     Kind = "invalid_argument"
	KindExpiredProduct      Kind = "expired_product"
	KindInsufficientStock   Kind = "insufficient_stock"
	KindInsufficientPayment Kind = "insufficient_payment"
	KindPersistence         Kind = "persistence_error"
	KindInternal            Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Details any          `json:"details,omitempty"`
	cause   error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause, if any
func (e *AppError) Unwrap() error {
	return e.cause
}

// Is matches another AppError by kind so the sentinels below work with errors.Is
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind != "" && t.Kind == e.Kind
}

// Sentinels for errors.Is checks
var (
	ErrNotFound            = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrDuplicateID         = &AppError{Code: http.StatusConflict, Kind: KindDuplicateID, Message: "Resource already exists"}
	ErrInvalidArgument     = &AppError{Code: http.StatusBadRequest, Kind: KindInvalidArgument, Message: "Invalid argument"}
	ErrExpiredProduct      = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindExpiredProduct, Message: "Product has expired"}
	ErrInsufficientStock   = &AppError{Code: http.StatusConflict, Kind: KindInsufficientStock, Message: "Insufficient stock"}
	ErrInsufficientPayment = &AppError{Code: http.StatusPaymentRequired, Kind: KindInsufficientPayment, Message: "Insufficient payment"}
	ErrPersistence         = &AppError{Code: http.StatusInternalServerError, Kind: KindPersistence, Message: "Persistence failure"}
)

// ExpiredProductDetails carries the product that failed the expiration check
type ExpiredProductDetails struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	ExpirationDate string `json:"expiration_date"`
}

// StockShortageDetails carries the requested and available quantities
type StockShortageDetails struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
	Shortage    int    `json:"shortage"`
}

// PaymentShortfallDetails carries the amount due and the amount tendered
type PaymentShortfallDetails struct {
	Required decimal.Decimal `json:"required"`
	Received decimal.Decimal `json:"received"`
}

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    KindInternal,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindInvalidArgument,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewDuplicateIDError reports an id that is already registered
func NewDuplicateIDError(resource, id string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindDuplicateID,
		Message: fmt.Sprintf("%s with ID %s already exists", resource, id),
	}
}

// NewInvalidArgumentError creates an invalid argument error with a custom message
func NewInvalidArgumentError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidArgument,
		Message: message,
	}
}

// NewExpiredProductError reports a sale attempt on a product past its expiration date
func NewExpiredProductError(productID, name string, expirationDate time.Time) *AppError {
	date := expirationDate.Format(time.DateOnly)
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindExpiredProduct,
		Message: fmt.Sprintf("Product %s (%s) expired on %s", name, productID, date),
		Details: ExpiredProductDetails{
			ProductID:      productID,
			ProductName:    name,
			ExpirationDate: date,
		},
	}
}

// NewInsufficientStockError reports a requested quantity above the stock on hand
func NewInsufficientStockError(productID, name string, requested, available int) *AppError {
	return &AppError{
		Code: http.StatusConflict,
		Kind: KindInsufficientStock,
		Message: fmt.Sprintf("Insufficient stock for %s (%s): requested %d, available %d",
			name, productID, requested, available),
		Details: StockShortageDetails{
			ProductID:   productID,
			ProductName: name,
			Requested:   requested,
			Available:   available,
			Shortage:    requested - available,
		},
	}
}

// NewInsufficientPaymentError reports a payment below the sale total
func NewInsufficientPaymentError(required, received decimal.Decimal) *AppError {
	return &AppError{
		Code: http.StatusPaymentRequired,
		Kind: KindInsufficientPayment,
		Message: fmt.Sprintf("Insufficient payment amount. Required: %s, Received: %s",
			required.StringFixed(2), received.StringFixed(2)),
		Details: PaymentShortfallDetails{
			Required: required,
			Received: received,
		},
	}
}

// NewPersistenceError wraps a storage failure
func NewPersistenceError(message string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindPersistence,
		Message: message,
		cause:   cause,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
	}
}

// KindOf returns the kind of err, or KindInternal for foreign errors
func KindOf(err error) Kind {
	return GetAppError(err).Kind
}
