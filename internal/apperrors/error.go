package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingAPIKey    = errors.New("GOOGLE_API_KEY not found")
	ErrGateway          = errors.New("inference gateway failed")
	ErrUnauthorized     = errors.New("incorrect admin secret")
	ErrUnknownAnalysis  = errors.New("unknown analysis kind")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrEmptyImage       = errors.New("empty image")
)

type ValueError struct {
	caller  string
	message string
	err     error
}

func NewValueError(message string, caller string, err error) error {
	return &ValueError{
		caller:  caller,
		message: message,
		err:     err,
	}
}

func (v *ValueError) Error() string {
	return fmt.Sprintf("%s %s %s", v.caller, v.message, v.err)
}

func (v *ValueError) Unwrap() error {
	return v.err
}

// ValidationError lists the order form fields that failed their format rule.
type ValidationError struct {
	Fields []string
}

func NewValidationError(fields []string) error {
	return &ValidationError{Fields: fields}
}

func (v *ValidationError) Error() string {
	return "invalid order fields: " + strings.Join(v.Fields, ", ")
}
