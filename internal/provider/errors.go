// Package provider holds the provider-neutral types shared by the outbound
// HTTP adapters and the services that consume them.
package provider

import (
	"fmt"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
)

// Error is returned by outbound adapters when a remote call fails, either
// with a non-2xx status (StatusCode set) or at the transport/decoding layer.
// It matches domain.ErrProvider and the underlying cause.
type Error struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{domain.ErrProvider}
	}
	return []error{domain.ErrProvider, e.Err}
}

// StatusError builds an Error for an unexpected HTTP status.
func StatusError(name string, status int) *Error {
	return &Error{Provider: name, StatusCode: status}
}

// WrapError builds an Error for a transport or decoding failure.
func WrapError(name, op string, err error) *Error {
	return &Error{Provider: name, Err: fmt.Errorf("%s: %w", op, err)}
}
