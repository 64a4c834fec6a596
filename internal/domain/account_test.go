package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestCheckAccountUpdate(t *testing.T) {
	t.Parallel()

	old := Account{
		ID:            uuid.New(),
		OwnerID:       uuid.New(),
		BankCode:      BankKakao,
		AccountNumber: "123456789012",
		AccountType:   TypeDemand,
		Balance:       decimal.NewFromInt(1_000),
	}

	testCases := []struct {
		name    string
		mutate  func(a *Account)
		wantErr error
	}{
		{
			name:    "BalanceChangeAllowed",
			mutate:  func(a *Account) { a.Balance = decimal.NewFromInt(2_000) },
			wantErr: nil,
		},
		{
			name:    "NoChangeAllowed",
			mutate:  func(a *Account) {},
			wantErr: nil,
		},
		{
			name:    "OwnerChanged",
			mutate:  func(a *Account) { a.OwnerID = uuid.New() },
			wantErr: ErrImmutableFieldChanged,
		},
		{
			name:    "BankCodeChanged",
			mutate:  func(a *Account) { a.BankCode = BankHana },
			wantErr: ErrImmutableFieldChanged,
		},
		{
			name:    "AccountNumberChanged",
			mutate:  func(a *Account) { a.AccountNumber = "999999999999" },
			wantErr: ErrImmutableFieldChanged,
		},
		{
			name:    "AccountTypeChanged",
			mutate:  func(a *Account) { a.AccountType = TypeSavings },
			wantErr: ErrImmutableFieldChanged,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			candidate := old
			tc.mutate(&candidate)

			if err := CheckAccountUpdate(old, candidate); err != tc.wantErr {
				t.Errorf("CheckAccountUpdate() error=%v, want %v", err, tc.wantErr)
			}
		})
	}
}
