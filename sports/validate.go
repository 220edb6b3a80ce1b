package sports

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// newValidator returns a validator with the arena tag registered.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("arena", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		for _, a := range arenas {
			if a == name {
				return true
			}
		}
		return false
	})
	return v
}

// check runs struct validation and converts the first failure into a
// *ValidationError.
func check(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fieldError(ve[0])
	}
	return err
}

func fieldError(fe validator.FieldError) *ValidationError {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return invalid(field, "is required")
	case "datetime":
		return invalid(field, "must be a date in the form YYYY-MM-DD")
	case "arena":
		return invalid(field, "must be one of: "+strings.Join(arenas, ", "))
	default:
		return invalid(field, fmt.Sprintf("failed validation (%s)", fe.Tag()))
	}
}

func parseQuantity(s string) (int64, error) {
	q, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, invalid("quantity", "must be a whole number")
	}
	if q < 0 {
		return 0, invalid("quantity", "must not be negative")
	}
	return q, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	p, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, invalid("price", "must be a decimal number")
	}
	if p.IsNegative() {
		return decimal.Zero, invalid("price", "must not be negative")
	}
	// Prices are stored as REAL; accept only values that read back unchanged.
	f := p.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero, invalid("price", "is too large")
	}
	if !decimal.NewFromFloat(f).Equal(p) {
		return decimal.Zero, invalid("price", "has more digits than can be stored")
	}
	return p, nil
}
