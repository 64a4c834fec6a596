package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrInvalidAmount indicates a zero or negative transaction amount.
	ErrInvalidAmount = errors.New("transaction amount must be greater than zero")
	// ErrUnsupportedIOType indicates a deposit/withdraw type outside the allowed set.
	ErrUnsupportedIOType = errors.New("unsupported transaction io type")
	// ErrUnsupportedMethod indicates a transaction method outside the allowed set.
	ErrUnsupportedMethod = errors.New("unsupported transaction method")
	// ErrInsufficientBalance indicates that the account balance does not cover
	// the withdrawal.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// IOType tells whether a transaction increases or decreases the balance.
type IOType string

// Supported io types.
const (
	Deposit  IOType = "DEPOSIT"
	Withdraw IOType = "WITHDRAW"
)

// IOTypes holds all supported io types.
var IOTypes = []IOType{Deposit, Withdraw}

// Valid returns true if the io type belongs to the supported set.
func (io IOType) Valid() bool {
	for _, t := range IOTypes {
		if io == t {
			return true
		}
	}

	return false
}

// Method records how a transaction was made.
type Method string

// Supported transaction methods.
const (
	MethodCash     Method = "CASH"
	MethodTransfer Method = "TRANSFER"
	MethodAuto     Method = "AUTO"
	MethodCard     Method = "CARD"
	MethodEtc      Method = "ETC"
)

// Methods holds all supported transaction methods.
var Methods = []Method{
	MethodCash,
	MethodTransfer,
	MethodAuto,
	MethodCard,
	MethodEtc,
}

// Valid returns true if the method belongs to the supported set.
func (m Method) Valid() bool {
	for _, tm := range Methods {
		if m == tm {
			return true
		}
	}

	return false
}

// Transaction holds one balance change of an account.
//
// Amount carries the magnitude only, IOType carries the direction.
// Amount, IOType, BalanceAfter and AccountID never change once the entry is
// written; Description and Method are the only editable fields.
type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	AccountID    uuid.UUID       `json:"account_id"`
	Amount       decimal.Decimal `json:"amount"`
	IOType       IOType          `json:"io_type"`
	Method       Method          `json:"method"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PostTransactionParams is the input data for posting a deposit or a withdrawal.
type PostTransactionParams struct {
	AccountID   uuid.UUID       `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	IOType      IOType          `json:"io_type"`
	Method      Method          `json:"method"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"` // zero value defaults to the current time
}

// ListTransactionsParams is the input data to list an owner's transactions,
// newest first. Zero values leave the corresponding filter unset.
type ListTransactionsParams struct {
	AccountID uuid.NullUUID       `json:"account_id"`
	IOType    IOType              `json:"io_type"`
	Method    Method              `json:"method"`
	MinAmount decimal.NullDecimal `json:"min_amount"`
	MaxAmount decimal.NullDecimal `json:"max_amount"`
	From      time.Time           `json:"from"`
	To        time.Time           `json:"to"`
	Limit     int32               `json:"limit"`
	Offset    int32               `json:"offset"`
}

// UpdateTransactionParams is the input data to annotate a transaction.
// A nil Description and an empty Method leave the field unchanged.
type UpdateTransactionParams struct {
	ID          uuid.UUID `json:"id"`
	Description *string   `json:"description"`
	Method      Method    `json:"method"`
}
