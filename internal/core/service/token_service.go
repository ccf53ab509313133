package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/appforge/auth-api/internal/core/domain"
)

// JWTTokenService mints and validates HS256-signed tokens. The signing
// secret and TTLs are fixed at construction; rotating the secret
// invalidates everything issued before the rotation.
//
// Tokens are self-contained and never stored server-side. Consequently a
// refresh token handed out before a /auth/refresh call stays valid until
// its natural expiry; there is no revocation list to retire it early.
type JWTTokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewJWTTokenService(secret string, accessTTL, refreshTTL time.Duration) *JWTTokenService {
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &JWTTokenService{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (s *JWTTokenService) IssueAccess(subject string) (string, error) {
	return s.issue(subject, domain.TokenKindAccess, s.accessTTL)
}

func (s *JWTTokenService) IssueRefresh(subject string) (string, error) {
	return s.issue(subject, domain.TokenKindRefresh, s.refreshTTL)
}

func (s *JWTTokenService) issue(subject string, kind domain.TokenKind, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	// jti makes every mint unique; without it two tokens issued within the
	// same second for the same subject would serialize identically.
	claims := jwt.MapClaims{
		"sub":  subject,
		"type": string(kind),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
		"jti":  uuid.NewString(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate parses and verifies the token and requires the expected kind.
// Signature failure, malformed structure, expiry, and wrong kind all return
// the same domain.ErrInvalidToken; no leeway window is applied to exp.
func (s *JWTTokenService) Validate(token string, kind domain.TokenKind) (domain.Claims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return domain.Claims{}, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	typ, _ := claims["type"].(string)
	if sub == "" || typ != string(kind) {
		return domain.Claims{}, domain.ErrInvalidToken
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return domain.Claims{}, domain.ErrInvalidToken
	}

	return domain.Claims{
		Subject:   sub,
		Kind:      domain.TokenKind(typ),
		ExpiresAt: exp.Time,
	}, nil
}
