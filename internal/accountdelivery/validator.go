package accountdelivery

import (
	"github.com/go-playground/validator/v10"
	"github.com/moabank/bankbook/internal/domain"
)

// ValidBankCode validates whether the bank code is supported.
var ValidBankCode validator.Func = func(fl validator.FieldLevel) bool {
	if c, ok := fl.Field().Interface().(string); ok {
		return domain.BankCode(c).Valid()
	}

	return false
}

// ValidAccountType validates whether the account type is supported.
var ValidAccountType validator.Func = func(fl validator.FieldLevel) bool {
	if t, ok := fl.Field().Interface().(string); ok {
		return domain.AccountType(t).Valid()
	}

	return false
}
