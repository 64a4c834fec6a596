// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/google/uuid"
	"github.com/moabank/bankbook/internal/domain"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Account, error)
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int32) ([]domain.Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account business logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// Create validates and registers an account for the given owner.
func (s *Service) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if !arg.BankCode.Valid() {
		l.Info().Str("bank_code", string(arg.BankCode)).Send()
		return domain.Account{}, domain.ErrUnsupportedBankCode
	}

	if !arg.AccountType.Valid() {
		l.Info().Str("account_type", string(arg.AccountType)).Send()
		return domain.Account{}, domain.ErrUnsupportedAccountType
	}

	if !digitsOnly(arg.AccountNumber) {
		return domain.Account{}, domain.ErrInvalidAccountNumber
	}

	account, err := s.repo.Create(ctx, arg)
	if err != nil {
		return account, err
	}

	return account, nil
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	return account, nil
}

// List returns accounts that are owned by the given user, newest first.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID, pageSize, pageID int32) ([]domain.Account, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	accounts, err := s.repo.List(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

// Delete removes the given owner's account. Accounts with posted
// transactions are refused to keep the ledger history intact.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if account.OwnerID != ownerID {
		return domain.ErrAccountOwnerMismatch
	}

	return s.repo.Delete(ctx, id)
}
