package repository

import "errors"

var (
	// ErrDuplicate is returned when a record with the same key already exists
	ErrDuplicate = errors.New("record already exists")
	// ErrRecordNotFound is returned by write paths that target a missing record
	ErrRecordNotFound = errors.New("record not found")
	// ErrQuantityOverflow is returned when an increment would overflow a stock counter
	ErrQuantityOverflow = errors.New("quantity overflow")
)
