// Package helpers provides seed data helpers used in integration tests.
package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/moabank/bankbook/internal/accountrepo"
	"github.com/moabank/bankbook/internal/domain"
	"github.com/moabank/bankbook/internal/transactionrepo"
	"github.com/moabank/bankbook/internal/userrepo"
	"github.com/moabank/bankbook/pkg/dbpkg"
	"github.com/moabank/bankbook/pkg/passpkg"
	"github.com/moabank/bankbook/pkg/randompkg"
	"github.com/shopspring/decimal"
)

// RandomAccount returns an in-memory random account for the given owner.
func RandomAccount(ownerID uuid.UUID) domain.Account {
	return domain.Account{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		BankCode:      randompkg.BankCode(),
		AccountNumber: randompkg.AccountNumber(),
		AccountType:   randompkg.AccountType(),
		Balance:       randompkg.MoneyAmountBetween(1_000, 10_000),
		CreatedAt:     time.Now().Truncate(time.Second).UTC(),
		UpdatedAt:     time.Now().Truncate(time.Second).UTC(),
	}
}

// RandomTransaction returns an in-memory random deposit entry for the given account.
func RandomTransaction(account domain.Account) domain.Transaction {
	amount := randompkg.MoneyAmountBetween(100, 1_000)

	return domain.Transaction{
		ID:           uuid.New(),
		AccountID:    account.ID,
		Amount:       amount,
		IOType:       domain.Deposit,
		Method:       randompkg.Method(),
		BalanceAfter: account.Balance.Add(amount),
		Description:  randompkg.String(12),
		CreatedAt:    time.Now().Truncate(time.Second).UTC(),
	}
}

// SeedUser inserts a random user through the given database handle.
func SeedUser(t *testing.T, db dbpkg.SQLInterface) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	if err != nil {
		t.Fatalf("passpkg.Hash() returned error: %v", err)
	}

	arg := domain.CreateUserParams{
		Email:          randompkg.Email(),
		HashedPassword: hashedPassword,
		Nickname:       randompkg.Nickname(),
		Name:           randompkg.String(8),
		PhoneNumber:    randompkg.PhoneNumber(),
	}

	user, err := userrepo.NewRepoPGS(db).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userrepo Create(%+v) returned error: %v", arg, err)
	}

	return user
}

// SeedAccount inserts a random zero balance account for the given owner.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, owner domain.User) domain.Account {
	t.Helper()

	arg := domain.CreateAccountParams{
		OwnerID:       owner.ID,
		BankCode:      randompkg.BankCode(),
		AccountNumber: randompkg.AccountNumber(),
		AccountType:   randompkg.AccountType(),
	}

	account, err := accountrepo.NewRepoPGS(db).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("accountrepo Create(%+v) returned error: %v", arg, err)
	}

	return account
}

// SeedAccountWithBalance inserts a random account and sets its balance by
// posting an initial deposit so the ledger stays consistent with the balance.
func SeedAccountWithBalance(t *testing.T, db dbpkg.SQLInterface, owner domain.User, balance decimal.Decimal) domain.Account {
	t.Helper()

	account := SeedAccount(t, db, owner)

	arg := domain.PostTransactionParams{
		AccountID: account.ID,
		Amount:    balance,
		IOType:    domain.Deposit,
		Method:    domain.MethodTransfer,
	}

	if _, err := transactionrepo.NewTxRepoPGS(db).Create(context.Background(), arg, balance); err != nil {
		t.Fatalf("transactionrepo Create(%+v) returned error: %v", arg, err)
	}

	account.Balance = balance

	updated, err := accountrepo.NewRepoPGS(db).Update(context.Background(), account)
	if err != nil {
		t.Fatalf("accountrepo Update(%+v) returned error: %v", account, err)
	}

	return updated
}

// SeedTransaction appends a random deposit entry to the given account and
// moves the balance accordingly, returning the created ledger entry.
func SeedTransaction(t *testing.T, db dbpkg.SQLInterface, account domain.Account) domain.Transaction {
	t.Helper()

	arg := domain.PostTransactionParams{
		AccountID:   account.ID,
		Amount:      randompkg.MoneyAmountBetween(100, 1_000),
		IOType:      domain.Deposit,
		Method:      randompkg.Method(),
		Description: randompkg.String(12),
	}

	account.Balance = account.Balance.Add(arg.Amount)

	if _, err := accountrepo.NewRepoPGS(db).Update(context.Background(), account); err != nil {
		t.Fatalf("accountrepo Update(%+v) returned error: %v", account, err)
	}

	transaction, err := transactionrepo.NewTxRepoPGS(db).Create(context.Background(), arg, account.Balance)
	if err != nil {
		t.Fatalf("transactionrepo Create(%+v) returned error: %v", arg, err)
	}

	return transaction
}
