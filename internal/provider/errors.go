package provider

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNotFound matches lookups of a required property that has no entry.
	ErrNotFound = errors.New("property not found")
	// ErrTypeMismatch matches values that cannot be converted to the requested type.
	ErrTypeMismatch = errors.New("property type mismatch")
	// ErrInvalidTarget is returned when the destination is not a non-nil pointer.
	ErrInvalidTarget = errors.New("target must be a non-nil pointer")
)

// NotFoundError reports a missing required property.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("property %q not found", e.Name)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// TypeMismatchError reports a present property whose value cannot be
// interpreted as the requested type.
type TypeMismatchError struct {
	Name string
	Type reflect.Type
	Err  error
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("property %q cannot be converted to %s: %v", e.Name, e.Type, e.Err)
}

// Is matches ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

func (e *TypeMismatchError) Unwrap() error {
	return e.Err
}

var errUnsupportedType = errors.New("unsupported target type")
