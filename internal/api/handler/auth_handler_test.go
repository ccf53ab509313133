package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/appforge/auth-api/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, email, password, fullName string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (domain.TokenPair, error)
	refreshFn  func(ctx context.Context, refreshToken string) (domain.TokenPair, error)
	identifyFn func(ctx context.Context, accessToken string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, email, password, fullName string) (*domain.User, error) {
	return s.registerFn(ctx, email, password, fullName)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	return s.refreshFn(ctx, refreshToken)
}

func (s *stubAuthService) Identify(ctx context.Context, accessToken string) (*domain.User, error) {
	return s.identifyFn(ctx, accessToken)
}

func newJSONContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, email, password, fullName string) (*domain.User, error) {
			if email != "a@x.com" || password != "pw123456" || fullName != "Alice" {
				t.Fatalf("unexpected args: %s %s %s", email, password, fullName)
			}
			return &domain.User{ID: "u1", Email: email, FullName: fullName, IsActive: true, PasswordHash: "secret-hash"}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/api/v1/auth/register",
		`{"email":"a@x.com","password":"pw123456","full_name":"Alice"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp["id"] != "u1" || resp["email"] != "a@x.com" || resp["is_active"] != true {
		t.Fatalf("unexpected body: %v", resp)
	}
	if strings.Contains(rec.Body.String(), "secret-hash") {
		t.Fatalf("password hash leaked in response")
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	cases := []struct {
		name, body string
	}{
		{"bad email", `{"email":"not-an-email","password":"pw123456"}`},
		{"short password", `{"email":"a@x.com","password":"short"}`},
		{"missing fields", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newJSONContext(t, http.MethodPost, "/api/v1/auth/register", tc.body)
			err := h.Register(c)
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 HTTPError, got %v", err)
			}
		})
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/api/v1/auth/register",
		`{"email":"a@x.com","password":"pw123456"}`)
	if err := h.Register(c); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (domain.TokenPair, error) {
			return domain.TokenPair{AccessToken: "acc", RefreshToken: "ref", TokenType: "bearer"}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/api/v1/auth/login",
		`{"email":"a@x.com","password":"pw123456"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["access_token"] != "acc" || resp["refresh_token"] != "ref" || resp["token_type"] != "bearer" {
		t.Fatalf("unexpected body: %v", resp)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (domain.TokenPair, error) {
			return domain.TokenPair{}, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/api/v1/auth/login",
		`{"email":"a@x.com","password":"wrongpw1"}`)
	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(_ context.Context, token string) (domain.TokenPair, error) {
			if token != "old-refresh" {
				t.Fatalf("unexpected token: %s", token)
			}
			return domain.TokenPair{AccessToken: "acc2", RefreshToken: "ref2", TokenType: "bearer"}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/api/v1/auth/refresh",
		`{"refresh_token":"old-refresh"}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newJSONContext(t, http.MethodGet, "/api/v1/auth/me", "")
	c.Set("current_user", &domain.User{ID: "u1", Email: "a@x.com", IsActive: true})

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["email"] != "a@x.com" {
		t.Fatalf("unexpected body: %v", resp)
	}
}

func TestAuthHandler_Me_WithoutMiddleware(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(t, http.MethodGet, "/api/v1/auth/me", "")
	err := h.Me(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
