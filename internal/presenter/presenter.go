// Package presenter holds the caller-side policy around the note store: one-time seeding of an
// empty store and validation at the edit boundary. Presenters expose data and errors only.
package presenter

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

const (
	WelcomeTitle   = "Welcome"
	WelcomeContent = "Start creating your notes!"

	MsgTitleAndContent = "Please enter a title and content"
	MsgTitle           = "Please enter a title"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError is returned when input is rejected before the store is touched.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string { return e.Message }

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func check(in any, message string) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Message: message, Fields: fields}
}
