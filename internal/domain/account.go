// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAlreadyExists indicates that the owner has already registered
	// the same bank code and account number pair.
	ErrAccountAlreadyExists = errors.New("account already registered")
	// ErrOwnerNotFound indicates that the owner for the account is not found.
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrAccountOwnerMismatch indicates that the account belongs to another user.
	ErrAccountOwnerMismatch = errors.New("account belongs to another user")
	// ErrImmutableFieldChanged indicates an attempt to modify an account field
	// that is fixed after creation.
	ErrImmutableFieldChanged = errors.New("owner, bank code, account number and account type cannot be changed")
	// ErrAccountHasTransactions indicates that the account cannot be deleted
	// while its ledger is non-empty.
	ErrAccountHasTransactions = errors.New("account with posted transactions cannot be deleted")
	// ErrUnsupportedBankCode indicates a bank code outside the allowed set.
	ErrUnsupportedBankCode = errors.New("unsupported bank code")
	// ErrUnsupportedAccountType indicates an account type outside the allowed set.
	ErrUnsupportedAccountType = errors.New("unsupported account type")
	// ErrInvalidAccountNumber indicates that the account number contains
	// characters other than digits.
	ErrInvalidAccountNumber = errors.New("account number must contain digits only")
)

// BankCode identifies the bank holding an account.
type BankCode string

// Supported bank codes.
const (
	BankKakao   BankCode = "KAKAO"
	BankKB      BankCode = "KB"
	BankNH      BankCode = "NH"
	BankIBK     BankCode = "IBK"
	BankSC      BankCode = "SC"
	BankHana    BankCode = "HANA"
	BankWoori   BankCode = "WOORI"
	BankShinhan BankCode = "SHINHAN"
	BankEtc     BankCode = "ETC"
)

// BankCodes holds all supported bank codes.
var BankCodes = []BankCode{
	BankKakao,
	BankKB,
	BankNH,
	BankIBK,
	BankSC,
	BankHana,
	BankWoori,
	BankShinhan,
	BankEtc,
}

// Valid returns true if the bank code belongs to the supported set.
func (c BankCode) Valid() bool {
	for _, bc := range BankCodes {
		if c == bc {
			return true
		}
	}

	return false
}

// AccountType classifies an account.
type AccountType string

// Supported account types.
const (
	TypeDemand    AccountType = "DEMAND"
	TypeOverdraft AccountType = "OVERDRAFT"
	TypeSavings   AccountType = "SAVINGS"
	TypeEtc       AccountType = "ETC"
)

// AccountTypes holds all supported account types.
var AccountTypes = []AccountType{
	TypeDemand,
	TypeOverdraft,
	TypeSavings,
	TypeEtc,
}

// Valid returns true if the account type belongs to the supported set.
func (t AccountType) Valid() bool {
	for _, at := range AccountTypes {
		if t == at {
			return true
		}
	}

	return false
}

// Account holds balance data for a registered bank account.
//
// OwnerID, BankCode, AccountNumber and AccountType are fixed at creation.
// Balance changes only through posting a transaction.
type Account struct {
	ID            uuid.UUID       `json:"id"`
	OwnerID       uuid.UUID       `json:"owner_id"`
	BankCode      BankCode        `json:"bank_code"`
	AccountNumber string          `json:"account_number"`
	AccountType   AccountType     `json:"account_type"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateAccountParams is the input data to register an account.
type CreateAccountParams struct {
	OwnerID       uuid.UUID   `json:"owner_id"`
	BankCode      BankCode    `json:"bank_code"`
	AccountNumber string      `json:"account_number"`
	AccountType   AccountType `json:"account_type"`
}

// CheckAccountUpdate compares a candidate account state against the last
// persisted state and rejects any change to the fields that are fixed after
// creation. Every account write path must run it before persisting.
func CheckAccountUpdate(old, candidate Account) error {
	if candidate.OwnerID != old.OwnerID ||
		candidate.BankCode != old.BankCode ||
		candidate.AccountNumber != old.AccountNumber ||
		candidate.AccountType != old.AccountType {
		return ErrImmutableFieldChanged
	}

	return nil
}
