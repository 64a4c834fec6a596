package sessionservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/moabank/bankbook/internal/domain"
	"github.com/moabank/bankbook/pkg/configpkg"
	"github.com/moabank/bankbook/pkg/randompkg"
	"github.com/moabank/bankbook/pkg/tokenpkg"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, repo Repo) *Service {
	t.Helper()

	config := configpkg.Config{
		TokenSymmetricKey:    randompkg.String(32),
		AccessTokenDuration:  time.Minute,
		RefreshTokenDuration: time.Hour,
	}

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	require.NoError(t, err)

	service, err := New(repo, config, tokenMaker)
	require.NoError(t, err)

	return service
}

func TestCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	service := newTestService(t, repo)

	userID := uuid.New()
	email := randompkg.Email()

	arg := domain.CreateSessionParams{
		UserAgent: "test-agent",
		ClientIP:  "127.0.0.1",
	}

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Times(1).
		DoAndReturn(func(_ context.Context, arg domain.CreateSessionParams) (domain.Session, error) {
			return domain.Session{
				ID:           arg.ID,
				UserID:       arg.UserID,
				RefreshToken: arg.RefreshToken,
				UserAgent:    arg.UserAgent,
				ClientIP:     arg.ClientIP,
				ExpiresAt:    arg.ExpiresAt,
			}, nil
		})

	accessToken, accessExpiresAt, sess, err := service.Create(context.Background(), arg, userID, email)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.WithinDuration(t, time.Now().Add(time.Minute), accessExpiresAt, time.Second)

	require.Equal(t, userID, sess.UserID)
	require.NotEmpty(t, sess.RefreshToken)
	require.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Second)

	payload, err := service.TokenMaker.VerifyToken(accessToken)
	require.NoError(t, err)
	require.Equal(t, userID, payload.UserID)
	require.Equal(t, email, payload.Email)
}

func TestRenewAccessToken(t *testing.T) {
	userID := uuid.New()
	email := randompkg.Email()

	testCases := []struct {
		name          string
		setupSession  func(t *testing.T, service *Service, refreshToken string, payload *tokenpkg.Payload) domain.Session
		wantErr       error
		wantRepoCalls int
	}{
		{
			name: "ErrSessionNotFound",
			setupSession: func(t *testing.T, service *Service, refreshToken string, payload *tokenpkg.Payload) domain.Session {
				return domain.Session{}
			},
			wantErr:       domain.ErrSessionNotFound,
			wantRepoCalls: 1,
		},
		{
			name: "ErrBlockedSession",
			setupSession: func(t *testing.T, service *Service, refreshToken string, payload *tokenpkg.Payload) domain.Session {
				return domain.Session{
					ID:           payload.ID,
					UserID:       userID,
					RefreshToken: refreshToken,
					IsBlocked:    true,
					ExpiresAt:    payload.ExpiredAt,
				}
			},
			wantErr:       domain.ErrBlockedSession,
			wantRepoCalls: 1,
		},
		{
			name: "ErrInvalidSessionUser",
			setupSession: func(t *testing.T, service *Service, refreshToken string, payload *tokenpkg.Payload) domain.Session {
				return domain.Session{
					ID:           payload.ID,
					UserID:       uuid.New(),
					RefreshToken: refreshToken,
					ExpiresAt:    payload.ExpiredAt,
				}
			},
			wantErr:       domain.ErrInvalidSessionUser,
			wantRepoCalls: 1,
		},
		{
			name: "ErrMismatchedRefreshToken",
			setupSession: func(t *testing.T, service *Service, refreshToken string, payload *tokenpkg.Payload) domain.Session {
				return domain.Session{
					ID:           payload.ID,
					UserID:       userID,
					RefreshToken: "mismatched",
					ExpiresAt:    payload.ExpiredAt,
				}
			},
			wantErr:       domain.ErrMismatchedRefreshToken,
			wantRepoCalls: 1,
		},
		{
			name: "ErrExpiredSession",
			setupSession: func(t *testing.T, service *Service, refreshToken string, payload *tokenpkg.Payload) domain.Session {
				return domain.Session{
					ID:           payload.ID,
					UserID:       userID,
					RefreshToken: refreshToken,
					ExpiresAt:    time.Now().Add(-time.Minute),
				}
			},
			wantErr:       domain.ErrExpiredSession,
			wantRepoCalls: 1,
		},
		{
			name: "OK",
			setupSession: func(t *testing.T, service *Service, refreshToken string, payload *tokenpkg.Payload) domain.Session {
				return domain.Session{
					ID:           payload.ID,
					UserID:       userID,
					RefreshToken: refreshToken,
					ExpiresAt:    payload.ExpiredAt,
				}
			},
			wantRepoCalls: 1,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			service := newTestService(t, repo)

			refreshToken, payload, err := service.TokenMaker.CreateToken(userID, email, time.Hour)
			require.NoError(t, err)

			sess := tc.setupSession(t, service, refreshToken, payload)

			call := repo.EXPECT().
				Get(gomock.Any(), gomock.Eq(payload.ID)).
				Times(tc.wantRepoCalls)

			if tc.wantErr == domain.ErrSessionNotFound {
				call.Return(domain.Session{}, domain.ErrSessionNotFound)
			} else {
				call.Return(sess, nil)
			}

			accessToken, accessExpiresAt, err := service.RenewAccessToken(context.Background(), refreshToken)
			if tc.wantErr != nil {
				require.EqualError(t, err, tc.wantErr.Error())
				require.Empty(t, accessToken)

				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, accessToken)
			require.WithinDuration(t, time.Now().Add(time.Minute), accessExpiresAt, time.Second)
		})
	}
}

func TestRenewAccessTokenInvalidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	service := newTestService(t, repo)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)

	_, _, err := service.RenewAccessToken(context.Background(), "not-a-token")
	require.Error(t, err)
}
