// Package validation runs struct-tag validation and converts failures into
// apperr.ValidationError keyed by JSON field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/keralakitchen/kitchen-backend/internal/apperr"
)

var (
	validate    = newValidator()
	clockFormat = regexp.MustCompile(`^(0[1-9]|1[0-2]):[0-5][0-9] (AM|PM)$`)
)

// Layouts accepted by the datetime tag on API fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type enum interface{ Valid() bool }

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// enum accepts any closed string set exposing Valid().
	v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		if e, ok := fl.Field().Interface().(enum); ok {
			return e.Valid()
		}
		return false
	})
	v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockFormat.MatchString(fl.Field().String())
	})
	return v
}

// Struct validates s. It returns nil or an error wrapping apperr.ErrValidation.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	out := &apperr.ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fieldPath(fe)] = message(fe)
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	case "lte":
		return fmt.Sprintf("must be %s or less", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "enum":
		return fmt.Sprintf("unknown value %q", fe.Value())
	case "clock":
		return "must look like 01:30 PM"
	case "datetime":
		switch fe.Param() {
		case DateLayout:
			return "must be a date like 2026-01-31"
		case TimeLayout:
			return "must be a 24-hour time like 12:00"
		}
		return "must match " + fe.Param()
	case "uuid":
		return "must be a valid id"
	case "latitude", "longitude":
		return "must be a valid coordinate"
	}
	return "is invalid"
}
