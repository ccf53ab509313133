package domain

import "time"

// TokenKind discriminates what a signed token may be used for. An access
// token is never accepted where a refresh token is required, and vice versa.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Claims is the decoded payload of a validated token.
type Claims struct {
	Subject   string
	Kind      TokenKind
	ExpiresAt time.Time
}

// TokenPair is what a successful login or refresh hands back to the client.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
