package http

import (
	"math"
	"regexp"

	"github.com/go-playground/validator/v10"
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

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// public ids = 32-char lowercase hex
	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return reHex32.MatchString(fl.Field().String())
	})
	// max 2 decimal places (money arrives as a JSON number)
	_ = v.RegisterValidation("dec2", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return math.Abs(f-(math.Round(f*100)/100)) < 1e-9
	})
	// max 4 decimal places (rates, units)
	_ = v.RegisterValidation("dec4", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return math.Abs(f-(math.Round(f*10000)/10000)) < 1e-9
	})
	// schedule types the engine knows about
	_ = v.RegisterValidation("schedtype", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "annuity", "diff", "interest_only", "manual", "tranches":
			return true
		}
		return false
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "hex32":
			out = append(out, FieldError{Field: field, Message: "must be 32-char lowercase hex"})
		case "dec2":
			out = append(out, FieldError{Field: field, Message: "must have at most 2 decimal places"})
		case "dec4":
			out = append(out, FieldError{Field: field, Message: "must have at most 4 decimal places"})
		case "schedtype":
			out = append(out, FieldError{Field: field, Message: "must be one of annuity, diff, interest_only, manual, tranches"})
		case "datetime":
			out = append(out, FieldError{Field: field, Message: "must be a date in YYYY-MM-DD form"})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "gt":
			out = append(out, FieldError{Field: field, Message: "must be greater than " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
