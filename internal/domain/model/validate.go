package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

// FieldError names the first field that failed its validate tag.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (e *FieldError) Error() string {
	switch e.Rule {
	case "required":
		return "missing " + e.Field
	case "gte":
		if e.Param == "0" {
			return e.Field + " must not be negative"
		}
		return fmt.Sprintf("%s must be at least %s", e.Field, e.Param)
	}
	return fmt.Sprintf("%s fails %s", e.Field, e.Rule)
}

// Unwrap classifies every field failure as invalid input.
func (e *FieldError) Unwrap() error { return ErrInvalidInput }

// Validate checks the validate struct tags of v.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	f := fields[0]
	return &FieldError{Field: f.Field(), Rule: f.Tag(), Param: f.Param()}
}
