package services

import "errors"

var (
	// ErrValidation marks malformed caller input: missing items, a line
	// item without id or qty, a menu item without name or price.
	ErrValidation = errors.New("validation failed")

	// ErrItemRejected marks an order that references a menu item which is
	// unknown or not available.
	ErrItemRejected = errors.New("menu item rejected")
)

// RequestError is a client error carrying the message shown to the caller.
// errors.Is matches it against its Kind.
type RequestError struct {
	Kind    error
	Message string
}

func (e *RequestError) Error() string { return e.Message }

func (e *RequestError) Unwrap() error { return e.Kind }

func invalid(msg string) error { return &RequestError{Kind: ErrValidation, Message: msg} }

func rejected(msg string) error { return &RequestError{Kind: ErrItemRejected, Message: msg} }
