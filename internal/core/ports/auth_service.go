package ports

import (
	"context"

	"github.com/appforge/auth-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, fullName string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error)
	Identify(ctx context.Context, accessToken string) (*domain.User, error)
}
