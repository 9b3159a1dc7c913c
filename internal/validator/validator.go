package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"performer-directory-backend/internal/locations"
)

// ValidationError maps request field names (json tags) to messages.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Errors[field]))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// FieldError builds a single-field ValidationError.
func FieldError(field, msg string) *ValidationError {
	return &ValidationError{Errors: map[string]string{field: msg}}
}

type Validator struct {
	validate *validator.Validate
}

func New(dir *locations.Directory) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomRules(v, dir)

	return &Validator{validate: v}
}

// Validate checks a struct and returns *ValidationError for rule failures.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	out := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		out[fieldName(fe)] = message(fe)
	}
	return &ValidationError{Errors: out}
}

// fieldName keeps slice indexes (event_types[1]) but drops the struct prefix.
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email", "relay-email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return "must be one of: " + fe.Param()
	case "us-state":
		return "must be a valid US state code"
	case "us-phone":
		return "must be a valid US phone number"
	case "us-zip":
		return "must be a 5-digit ZIP code"
	case "travel-radius":
		return "must be a valid travel radius"
	case "category":
		return "must be a valid category"
	case "event-type":
		return "must be a valid event type"
	case "payment-status":
		return "must be unpaid, paid or expired"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
