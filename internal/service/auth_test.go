package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentledger-backend/internal/domain"
	"rentledger-backend/internal/security"
)

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Identity), args.Error(1)
}

func testTokenManager() security.TokenManager {
	return security.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour, 7*24*time.Hour)
}

func TestAuthService_LoginWithIDToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		verifier := new(MockVerifier)
		svc := NewAuthService(userRepo, testTokenManager(), verifier)

		verifier.On("VerifyIDToken", ctx, "good-token").
			Return(&Identity{UID: "fb-uid", Email: "a@example.com", Name: "A"}, nil)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		access, refresh, err := svc.LoginWithIDToken(ctx, "good-token")
		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("VerifierDisabled", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testTokenManager(), nil)

		_, _, err := svc.LoginWithIDToken(ctx, "some-token")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("VerificationFails", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		verifier := new(MockVerifier)
		svc := NewAuthService(userRepo, testTokenManager(), verifier)

		verifier.On("VerifyIDToken", ctx, "bad-token").Return(nil, errors.New("token revoked"))

		_, _, err := svc.LoginWithIDToken(ctx, "bad-token")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("FederatedAccountHasNoPassword", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testTokenManager(), nil)

		userRepo.On("GetByEmail", ctx, "a@example.com").
			Return(&domain.User{ID: "u1", Email: "a@example.com"}, nil)

		_, _, err := svc.Login(ctx, "a@example.com", "anything")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testTokenManager(), nil)

		userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrUserNotFound)

		_, _, err := svc.Login(ctx, "nobody@example.com", "pw")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
