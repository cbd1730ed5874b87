package binder

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a request field to its validation messages.
// It is returned by Validate when the struct fails its rules.
type FieldErrors map[string][]string

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for field, messages := range e {
		parts = append(parts, field+": "+strings.Join(messages, ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate checks the bound struct against its `validate` tags. It must run
// after the binders that populate the struct. Field names in the result come
// from the query or form tag of the failing field.
func Validate() func(r *http.Request, v any) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"query", "form"} {
			if name, skip := parseFieldTag(f, tag); !skip && f.Tag.Get(tag) != "" {
				return name
			}
		}
		return strings.ToLower(f.Name)
	})

	return func(_ *http.Request, v any) error {
		err := validate.Struct(v)
		if err == nil {
			return nil
		}

		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return fmt.Errorf("%w: %v", ErrInvalidTarget, err)
		}

		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		out := make(FieldErrors, len(fieldErrs))
		for _, fe := range fieldErrs {
			out[fe.Field()] = append(out[fe.Field()], message(fe))
		}
		return out
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "nefield":
		return "must differ from " + strings.ToLower(fe.Param())
	case "datetime":
		return "must be a date in " + fe.Param() + " format"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed " + fe.Tag() + " rule"
	}
}
