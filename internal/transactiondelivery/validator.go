package transactiondelivery

import (
	"github.com/go-playground/validator/v10"
	"github.com/moabank/bankbook/internal/domain"
)

// ValidIOType validates whether the transaction direction is supported.
var ValidIOType validator.Func = func(fl validator.FieldLevel) bool {
	if t, ok := fl.Field().Interface().(string); ok {
		return domain.IOType(t).Valid()
	}

	return false
}

// ValidMethod validates whether the transaction method is supported.
var ValidMethod validator.Func = func(fl validator.FieldLevel) bool {
	if m, ok := fl.Field().Interface().(string); ok {
		return domain.Method(m).Valid()
	}

	return false
}
