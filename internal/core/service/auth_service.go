package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/appforge/auth-api/internal/core/domain"
	"github.com/appforge/auth-api/internal/core/ports"
)

// dummyHash is a valid bcrypt hash of a random string. Login runs a
// verification against it when the email is unknown so that the
// absent-user path costs roughly the same as a wrong-password path.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService orchestrates register, login, refresh and identify. It is the
// sole translator from internal failure causes to the external error
// taxonomy: unknown email, wrong password and disabled account all come out
// as domain.ErrInvalidCredentials.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*domain.User, error) {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The pre-check above is a fast path only; the store's unique email
	// constraint decides races between concurrent registrations.
	return s.repo.Create(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, dummyHash)
			return domain.TokenPair{}, domain.ErrInvalidCredentials
		}
		return domain.TokenPair{}, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return domain.TokenPair{}, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return domain.TokenPair{}, domain.ErrInvalidCredentials
	}

	return s.issuePair(user.Email)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	claims, err := s.tokens.Validate(refreshToken, domain.TokenKindRefresh)
	if err != nil {
		return domain.TokenPair{}, domain.ErrInvalidToken
	}
	return s.issuePair(claims.Subject)
}

func (s *AuthService) Identify(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.tokens.Validate(accessToken, domain.TokenKindAccess)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.repo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthenticated
	}

	return user, nil
}

func (s *AuthService) issuePair(subject string) (domain.TokenPair, error) {
	access, err := s.tokens.IssueAccess(subject)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.tokens.IssueRefresh(subject)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}
