package ports

import "github.com/appforge/auth-api/internal/core/domain"

// TokenService mints and validates signed, expiring, typed tokens.
type TokenService interface {
	IssueAccess(subject string) (string, error)
	IssueRefresh(subject string) (string, error)
	// Validate verifies the signature and expiry and requires the token to
	// carry the given kind. Every failure mode (forged, malformed, expired,
	// wrong kind) collapses to domain.ErrInvalidToken so callers cannot
	// tell them apart.
	Validate(token string, kind domain.TokenKind) (domain.Claims, error)
}
