package services

import "errors"

var (
	// ErrUnknownPartNumber marks a part number that matches nothing in the
	// catalog. Transactions against it are invalid input.
	ErrUnknownPartNumber = errors.New("part number not found")

	// ErrUnresolvedVariant marks a transaction whose attribute selection
	// does not pin down exactly one variant yet.
	ErrUnresolvedVariant = errors.New("variant not resolved")

	// ErrInsufficientStock marks an outbound movement larger than the
	// on-hand quantity. Wrapped errors carry the on-hand amount.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrDefaultCategory marks an attempt to rename or remove one of the
	// built-in categories.
	ErrDefaultCategory = errors.New("default categories cannot be modified")

	// ErrEmptyEditor marks a mutation submitted without an authenticated
	// editor. Every write is attributed.
	ErrEmptyEditor = errors.New("editor is required")

	// ErrRecordNotFound marks a mutation against a record id that no
	// longer exists.
	ErrRecordNotFound = errors.New("record not found")
)
