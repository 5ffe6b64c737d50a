package dto

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterDecimalValidations installs decimal-aware tags on gin's binding
// engine. The stock numeric tags (gt, gte) do not understand
// decimal.Decimal, so monetary fields use dgt0 (strictly positive) and
// dgte0 (non-negative) instead.
func RegisterDecimalValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("dgt0", decimalGTZero); err != nil {
		return fmt.Errorf("failed to register dgt0: %w", err)
	}
	if err := v.RegisterValidation("dgte0", decimalGTEZero); err != nil {
		return fmt.Errorf("failed to register dgte0: %w", err)
	}
	return nil
}

func decimalGTZero(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && d.IsPositive()
}

func decimalGTEZero(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && !d.IsNegative()
}
