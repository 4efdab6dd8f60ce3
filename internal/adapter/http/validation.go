package http

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"agricredit-backend/internal/domain/loan"
	"agricredit-backend/internal/domain/receipt"
	"agricredit-backend/internal/domain/user"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// report fields by their json name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// decimals validate as float64 so gt/lte/dec2 apply
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// money has 2 decimal places, quantities 3
	_ = v.RegisterValidation("dec2", maxPlaces(2))
	_ = v.RegisterValidation("dec3", maxPlaces(3))
	_ = v.RegisterValidation("loanstatus", func(fl validator.FieldLevel) bool {
		_, err := loan.ParseStatus(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("receiptstatus", func(fl validator.FieldLevel) bool {
		_, err := receipt.ParseStatus(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		_, err := user.ParseRole(fl.Field().String())
		return err == nil
	})

	return &CustomValidator{v: v}
}

func maxPlaces(n int) validator.Func {
	scale := math.Pow10(n)
	return func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return math.Abs(f-(math.Round(f*scale)/scale)) < 1e-9
	}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "dec2", "dec3":
			out = append(out, FieldError{Field: field, Message: "must have at most " + e.Tag()[3:] + " decimal places"})
		case "loanstatus":
			out = append(out, FieldError{Field: field, Message: "must be one of PENDING, APPROVED, REJECTED, DISBURSED, CLOSED, DEFAULTED"})
		case "receiptstatus":
			out = append(out, FieldError{Field: field, Message: "must be one of ACTIVE, RELEASED, EXPIRED, CANCELLED"})
		case "role":
			out = append(out, FieldError{Field: field, Message: "must be one of FARMER, LENDER, ADMIN"})
		case "email":
			out = append(out, FieldError{Field: field, Message: "must be a valid email address"})
		case "gt":
			out = append(out, FieldError{Field: field, Message: "must be greater than " + e.Param()})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		case "min":
			out = append(out, FieldError{Field: field, Message: "must be at least " + e.Param() + " long"})
		case "len":
			out = append(out, FieldError{Field: field, Message: "must be exactly " + e.Param() + " characters"})
		case "numeric":
			out = append(out, FieldError{Field: field, Message: "must contain digits only"})
		case "max":
			out = append(out, FieldError{Field: field, Message: "must be at most " + e.Param() + " long"})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
