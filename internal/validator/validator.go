// Package validator checks user input against the superficial ranges the
// bank backend enforces, so obvious mistakes are reported without a request.
package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	instance *validator.Validate
	once     sync.Once
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		// Money fields are validated by value with the numeric tags.
		instance.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		instance.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return instance
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// Struct validates v and flattens the failures into one readable error.
func Struct(v interface{}) error {
	err := get().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = describe(fe)
	}
	return &Error{Fields: msgs}
}

// Error lists the fields that failed validation.
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	return "invalid input: " + strings.Join(e.Fields, ", ")
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "email":
		return fe.Field() + " must be a valid email"
	case "eqfield":
		return fe.Field() + " must match " + strings.ToLower(fe.Param())
	default:
		return fe.Field() + " is invalid"
	}
}
