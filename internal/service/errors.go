// Package service implements the business rules of the API. Handlers only
// translate between HTTP and the functions in here
package service

import "errors"

var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
)

// ValidationError is returned when the input of an operation is rejected.
// Msg is safe to show to clients
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func invalid(msg string) error {
	return &ValidationError{Msg: msg}
}
