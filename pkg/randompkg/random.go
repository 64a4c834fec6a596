// Package randompkg provides functionality for generating random test data.
package randompkg

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/moabank/bankbook/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz"
	digits   = "0123456789"
)

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// Float64 is a shortcut for generating a random float between 0 and 1 using crypto/rand.
func Float64() float64 {
	return float64(Intn(1<<32)) / (1 << 32)
}

// FloatBetween generates a random decimal number between min and max rounded to 2 decimals.
func FloatBetween(min, max float64) float64 {
	numInRange := min + Float64()*(max-min)
	return math.Floor(numInRange*100) / 100
}

func pick(charset string, n int) string {
	var sb strings.Builder

	k := len(charset)

	for i := 0; i < n; i++ {
		c := charset[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// String generates a random string of length n.
func String(n int) string {
	return pick(alphabet, n)
}

// Digits generates a random string of n digits.
func Digits(n int) string {
	return pick(digits, n)
}

// AccountNumber generates a random 12-digit account number.
func AccountNumber() string {
	return Digits(12)
}

// MoneyAmountBetween generates a random amount of money between min and max rounded to 2 decimals.
func MoneyAmountBetween(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(FloatBetween(min, max))
}

// BankCode generates a random supported bank code.
func BankCode() domain.BankCode {
	return domain.BankCodes[Intn(len(domain.BankCodes))]
}

// AccountType generates a random supported account type.
func AccountType() domain.AccountType {
	return domain.AccountTypes[Intn(len(domain.AccountTypes))]
}

// IOType generates a random transaction io type.
func IOType() domain.IOType {
	return domain.IOTypes[Intn(len(domain.IOTypes))]
}

// Method generates a random transaction method.
func Method() domain.Method {
	return domain.Methods[Intn(len(domain.Methods))]
}

// Email generates a random email.
func Email() string {
	return fmt.Sprintf("%s@email.com", String(10))
}

// Nickname generates a random nickname.
func Nickname() string {
	return String(8)
}

// PhoneNumber generates a random phone number.
func PhoneNumber() string {
	return "010" + Digits(8)
}
