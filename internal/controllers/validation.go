package controllers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/adamanr/dreamteam/internal/apperror"
	"github.com/go-playground/validator/v10"
)

// NewValidator reports fields by their json (form) names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// validate runs struct validation and converts failures into an
// apperror validation error keyed by form field.
func (d *Dependens) validate(req interface{}) error {
	err := d.Validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, ok := fields[fe.Field()]; ok {
			continue
		}
		fields[fe.Field()] = fieldMessage(fe)
	}

	return apperror.Validation(fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "eqfield":
		return fmt.Sprintf("Field must be equal to %s.", snakeCase(fe.Param()))
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "gt":
		return msgInvalidChoice
	default:
		return "Invalid value."
	}
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}

	return b.String()
}
