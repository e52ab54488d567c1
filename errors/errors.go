package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAuthFailed      = errors.New("authentication failed")
	ErrIncompleteCreds = errors.New("user has incomplete credentials")
	ErrInvalidAuth     = errors.New("invalid session token")
	ErrNotFound        = errors.New("cannot find resource")
	ErrUnauthenticated = errors.New("no credentials attached to request")
	ErrInvalidCreds    = errors.New("Amizone rejected the credentials")
	ErrSchemaMismatch  = errors.New("response does not match the expected schema")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidMac      = errors.New("not a valid MAC address")

	// File errors

	ErrMissingFiles = errors.New("the following files are missing")

	// User errors

	ErrBadCommandUsage = errors.New("amidash: Invalid invocation. See the documentation on command usage")

	// Misc

	ErrInvalidInterfaceType = errors.New("an invalid interface type was passed as argument")
)

// Custom error wrapper
type ErrorWrapper struct {
	Origin string
	Text   string
	Err    error
}

// Alias for func (ErrorWrapper).Error()
func (err ErrorWrapper) AsString() string {
	return err.Error()
}

// When ErrorWrapper is treated as an error type, this is used.
// The error type has Error() as one of its methods
func (err ErrorWrapper) Error() string {
	if err.Err == nil {
		return fmt.Errorf("%v: %v", err.Origin, err.Text).Error()
	}

	return fmt.Errorf("%v: %v: %w", err.Origin, err.Text, err.Err).Error()
}

// Unwrap exposes the wrapped error to errors.Is and errors.As.
func (err ErrorWrapper) Unwrap() error {
	return err.Err
}

// Return ErrorWrapper as an explicit error type.
// This is most useful when working with nil error values. Since ErrorWrapper is a struct,
// it is incompatible with nil values.
func (err ErrorWrapper) AsError() error {
	return ErrorWrapper{
		Origin: err.Origin,
		Text:   err.Text,
		Err:    err.Err,
	}
}

// NewError returns an ErrorWrapper which contains information on which package and/or function
// the error originated, the error text/message, and the error itself
func NewError(origin string, text string, err error) ErrorWrapper {
	return ErrorWrapper{
		Origin: origin,
		Text:   text,
		Err:    err,
	}
}

//
// Reimplement errors module, so only this module needs to be imported to manage errors

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func New(text string) error {
	return errors.New(text)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}
