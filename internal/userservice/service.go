// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/moabank/bankbook/internal/domain"
	"github.com/moabank/bankbook/pkg/errorspkg"
	"github.com/moabank/bankbook/pkg/passpkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, email string) (domain.User, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo Repo
}

// New returns user service struct to manage user business logic.
func New(ur Repo) *Service {
	return &Service{
		repo: ur,
	}
}

// NewUserProfile returns user with removed sensitive data.
func NewUserProfile(u domain.User) domain.UserProfile {
	return domain.UserProfile{
		ID:          u.ID,
		Email:       u.Email,
		Nickname:    u.Nickname,
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
	}
}

// Create creates and returns a user.
func (s *Service) Create(ctx context.Context, email, password, nickname, name, phoneNumber string) (domain.UserProfile, error) {
	l := zerolog.Ctx(ctx)

	var result domain.UserProfile

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	arg := domain.CreateUserParams{
		Email:          email,
		HashedPassword: hashedPassword,
		Nickname:       nickname,
		Name:           name,
		PhoneNumber:    phoneNumber,
	}

	user, err := s.repo.Create(ctx, arg)
	if err != nil {
		return result, err
	}

	return NewUserProfile(user), nil
}

// CheckPassword verifies the email and password pair and returns the user.
func (s *Service) CheckPassword(ctx context.Context, email, password string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	user, err := s.repo.Get(ctx, email)
	if err != nil {
		return domain.User{}, err
	}

	if err := passpkg.Check(password, user.HashedPassword); err != nil {
		l.Info().Err(err).Send()
		return domain.User{}, domain.ErrWrongPassword
	}

	return user, nil
}
