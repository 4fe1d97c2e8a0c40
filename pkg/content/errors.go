package content

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Construction failures. Every *FieldError unwraps to one of these.
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidFieldValue    = errors.New("invalid field value")
	ErrFieldLimitExceeded   = errors.New("field limit exceeded")
	ErrUnknownFunction      = errors.New("unknown function")
)

// FieldError describes why a single option was rejected.
type FieldError struct {
	// Kind is the sentinel this error unwraps to.
	Kind error

	// Field is the option name, e.g. "object" or "return_format".
	Field string

	// Value is the rejected value, empty for missing fields.
	Value string

	// Limit is the bound that was exceeded, zero otherwise.
	Limit int

	// Message is the human readable reason.
	Message string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is match the sentinel kind.
func (e *FieldError) Unwrap() error {
	return e.Kind
}

func missingField(field string) error {
	return &FieldError{
		Kind:    ErrMissingRequiredField,
		Field:   field,
		Message: fmt.Sprintf("Required %q key not supplied in params", field),
	}
}

func invalidValue(field, value, message string) error {
	return &FieldError{
		Kind:    ErrInvalidFieldValue,
		Field:   field,
		Value:   value,
		Message: message,
	}
}

func limitExceeded(field string, limit int, message string) error {
	return &FieldError{
		Kind:    ErrFieldLimitExceeded,
		Field:   field,
		Limit:   limit,
		Message: message,
	}
}
