package errors

import (
	"errors"
	"fmt"
)

// Kinds of failures surfaced to callers. Specific errors wrap one of them.
var (
	ErrValidation             = errors.New("validation failed")
	ErrNotFound               = errors.New("not found")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrConflict               = errors.New("conflict")
)

var (
	ErrBlankShippingAddress = fmt.Errorf("%w: shipping address must not be blank", ErrValidation)
	ErrEmptyItems           = fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	ErrInvalidPage          = fmt.Errorf("%w: page must not be negative", ErrValidation)
	ErrInvalidPageSize      = fmt.Errorf("%w: page size out of range", ErrValidation)
	ErrInvalidIdentifier    = fmt.Errorf("%w: identifier must be a positive integer", ErrValidation)
	ErrOrderNotFound        = fmt.Errorf("order %w", ErrNotFound)
	ErrVersionConflict      = fmt.Errorf("%w: order was modified concurrently", ErrConflict)
	ErrDuplicateReference   = fmt.Errorf("%w: order reference already exists", ErrConflict)
)

// InvalidQuantityError reports a non-positive quantity on a requested item.
type InvalidQuantityError struct {
	ProductID int64
	Quantity  int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity for product %d must be positive, got %d", e.ProductID, e.Quantity)
}

func (e *InvalidQuantityError) Unwrap() error { return ErrValidation }

// CustomerNotFoundError reports an unknown customer id.
type CustomerNotFoundError struct {
	CustomerID int64
}

func (e *CustomerNotFoundError) Error() string {
	return fmt.Sprintf("customer %d not found", e.CustomerID)
}

func (e *CustomerNotFoundError) Unwrap() error { return ErrNotFound }

// ProductNotFoundError reports an unknown product id.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

func (e *ProductNotFoundError) Unwrap() error { return ErrNotFound }

// InvalidTransitionError reports a status change missing from the transition table.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("status change %s -> %s is not allowed", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidStateTransition }

// UnknownSortFieldError reports a sort field or direction outside the allow-list.
type UnknownSortFieldError struct {
	Field string
}

func (e *UnknownSortFieldError) Error() string {
	return fmt.Sprintf("unsupported sort %q", e.Field)
}

func (e *UnknownSortFieldError) Unwrap() error { return ErrValidation }

// InvalidParameterError reports a malformed query or path parameter.
type InvalidParameterError struct {
	Name  string
	Value string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid value %q for parameter %s", e.Value, e.Name)
}

func (e *InvalidParameterError) Unwrap() error { return ErrValidation }
