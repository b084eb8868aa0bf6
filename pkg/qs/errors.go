package qs

import (
	"errors"
	"fmt"
)

// Common encoding and binding errors
var (
	ErrUnsupportedType    = errors.New("unsupported type")
	ErrMarshalText        = errors.New("failed to marshal text value")
	ErrInvalidTarget      = errors.New("invalid bind target")
	ErrFailedToParseQuery = errors.New("failed to parse query parameters")
	ErrUnknownNaming      = errors.New("unknown naming policy")
	ErrUnknownArrayFormat = errors.New("unknown array format")
)

// FieldError reports which query key failed to encode.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
