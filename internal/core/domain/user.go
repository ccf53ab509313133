package domain

import (
	"errors"
	"time"
)

// User models an account holder. Email is the login handle and the subject
// embedded in issued tokens; PasswordHash never leaves the process.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name,omitempty"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var ErrEmailTaken = errors.New("a user with this email already exists")
var ErrInvalidCredentials = errors.New("incorrect email or password")
var ErrInvalidToken = errors.New("invalid or expired token")
var ErrUnauthenticated = errors.New("could not validate credentials")
var ErrUserNotFound = errors.New("user not found")
