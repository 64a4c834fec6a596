// Package transactionservice manages business logic layer of ledger transactions.
package transactionservice

import (
	"context"

	"github.com/google/uuid"
	"github.com/moabank/bankbook/internal/accountdelivery"
	"github.com/moabank/bankbook/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	PostTransaction(ctx context.Context, arg domain.PostTransactionParams) (domain.Transaction, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Transaction, error)
	List(ctx context.Context, ownerID uuid.UUID, arg domain.ListTransactionsParams) ([]domain.Transaction, error)
	UpdateAnnotation(ctx context.Context, arg domain.UpdateTransactionParams) (domain.Transaction, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo           Repo
	accountService accountdelivery.Service
}

// New returns transaction service struct to manage transaction business logic.
func New(tr Repo, as accountdelivery.Service) *Service {
	return &Service{
		repo:           tr,
		accountService: as,
	}
}

// validPost checks the post request against the caller before any row is touched.
// Balance sufficiency is not checked here: only the repository sees the
// balance under the row lock.
func (s *Service) validPost(ctx context.Context, ownerID uuid.UUID, arg domain.PostTransactionParams) error {
	l := zerolog.Ctx(ctx)

	if arg.Amount.LessThanOrEqual(decimal.Zero) {
		l.Info().Str("amount", arg.Amount.String()).Send()
		return domain.ErrInvalidAmount
	}

	if !arg.IOType.Valid() {
		l.Info().Str("io_type", string(arg.IOType)).Send()
		return domain.ErrUnsupportedIOType
	}

	if !arg.Method.Valid() {
		l.Info().Str("method", string(arg.Method)).Send()
		return domain.ErrUnsupportedMethod
	}

	account, err := s.accountService.Get(ctx, arg.AccountID)
	if err != nil {
		return err
	}

	if account.OwnerID != ownerID {
		return domain.ErrAccountOwnerMismatch
	}

	return nil
}

// Post validates the request and applies one deposit or withdrawal to the
// owner's account, returning the created ledger entry.
func (s *Service) Post(ctx context.Context, ownerID uuid.UUID, arg domain.PostTransactionParams) (domain.Transaction, error) {
	if err := s.validPost(ctx, ownerID, arg); err != nil {
		return domain.Transaction{}, err
	}

	transaction, err := s.repo.PostTransaction(ctx, arg)
	if err != nil {
		return transaction, err
	}

	return transaction, nil
}

// Get returns the owner's transaction with the given id.
func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (domain.Transaction, error) {
	transaction, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Transaction{}, err
	}

	account, err := s.accountService.Get(ctx, transaction.AccountID)
	if err != nil {
		return domain.Transaction{}, err
	}

	if account.OwnerID != ownerID {
		return domain.Transaction{}, domain.ErrTransactionNotFound
	}

	return transaction, nil
}

// List returns the owner's transactions matching the filters, newest first.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID, arg domain.ListTransactionsParams) ([]domain.Transaction, error) {
	if arg.IOType != "" && !arg.IOType.Valid() {
		return nil, domain.ErrUnsupportedIOType
	}

	if arg.Method != "" && !arg.Method.Valid() {
		return nil, domain.ErrUnsupportedMethod
	}

	transactions, err := s.repo.List(ctx, ownerID, arg)
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// UpdateAnnotation changes the description and method of the owner's
// transaction. The financial fields of the entry are never touched.
func (s *Service) UpdateAnnotation(ctx context.Context, ownerID uuid.UUID, arg domain.UpdateTransactionParams) (domain.Transaction, error) {
	if arg.Method != "" && !arg.Method.Valid() {
		return domain.Transaction{}, domain.ErrUnsupportedMethod
	}

	if _, err := s.Get(ctx, ownerID, arg.ID); err != nil {
		return domain.Transaction{}, err
	}

	transaction, err := s.repo.UpdateAnnotation(ctx, arg)
	if err != nil {
		return domain.Transaction{}, err
	}

	return transaction, nil
}
