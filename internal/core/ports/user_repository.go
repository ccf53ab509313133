package ports

import (
	"context"

	"github.com/appforge/auth-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	// FindByEmail returns the user whose email matches exactly, or
	// domain.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create inserts a new user and returns the stored row. A concurrent
	// insert with the same email surfaces as domain.ErrEmailTaken; the
	// store must enforce email uniqueness atomically.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
