package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"rentledger-backend/internal/domain"
	"rentledger-backend/internal/logger"
	"rentledger-backend/internal/repository"
	"rentledger-backend/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
	verifier IdentityVerifier
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager, verifier IdentityVerifier) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens, verifier: verifier}
}

func (s *authService) Signup(ctx context.Context, name, email, password string) (*domain.User, string, string, error) {
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", "", ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", err
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	logger.Info("user signed up", "user_id", user.ID)
	return user, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", "", ErrInvalidCredentials
	}
	if err != nil {
		return "", "", err
	}
	if user.PasswordHash == "" {
		return "", "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}
	return s.issueTokens(user)
}

// LoginWithIDToken verifies a Firebase ID token and exchanges it for
// local tokens. The user row is upserted so the first federated login
// provisions the account.
func (s *authService) LoginWithIDToken(ctx context.Context, idToken string) (string, string, error) {
	if s.verifier == nil {
		return "", "", domain.ErrUnauthenticated
	}
	identity, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", "", domain.ErrUnauthenticated
	}

	user := &domain.User{
		ID:    identity.UID,
		Email: identity.Email,
		Name:  identity.Name,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", "", err
	}
	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", err
	}
	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *domain.User) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
