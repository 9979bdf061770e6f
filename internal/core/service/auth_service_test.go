package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/domain"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/ports"
)

func newAuthFixture() (*AuthService, *stubUserRepo, *stubCodeStore, *stubMailer) {
	users := newStubUserRepo()
	codes := newStubCodeStore()
	mailer := &stubMailer{}
	svc := NewAuthService(users, codes, mailer, "secret", time.Hour, zerolog.Nop())
	return svc, users, codes, mailer
}

func registerAlice(t *testing.T, svc *AuthService) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), ports.RegisterInput{
		FirstName:  "Alice",
		LastName:   "Smith",
		Email:      "alice@example.com",
		Password:   "pass123",
		RePassword: "pass123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return user
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	user := registerAlice(t, svc)
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Theme != domain.DefaultThemePreference() {
		t.Fatalf("expected default theme, got %+v", user.Theme)
	}
}

func TestAuthService_Register_PasswordMismatch(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		FirstName:  "Bob",
		Email:      "bob@example.com",
		Password:   "pass123",
		RePassword: "pass124",
	})
	if !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "x@example.com"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	registerAlice(t, svc)
	_, err := svc.Register(context.Background(), ports.RegisterInput{
		FirstName:  "Alice",
		Email:      "alice@example.com",
		Password:   "other",
		RePassword: "other",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	registered := registerAlice(t, svc)

	token, user, err := svc.Login(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != registered.ID {
		t.Fatalf("expected sub %q, got %v", registered.ID, claims["sub"])
	}
	if claims["email"] != "alice@example.com" {
		t.Fatalf("unexpected email claim: %v", claims["email"])
	}
	if claims["first_name"] != "Alice" {
		t.Fatalf("unexpected first_name claim: %v", claims["first_name"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	registerAlice(t, svc)

	if _, _, err := svc.Login(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownAccount(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	// Missing accounts are indistinguishable from wrong passwords.
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ForgotPassword_IssuesCode(t *testing.T) {
	svc, _, codes, mailer := newAuthFixture()
	registerAlice(t, svc)

	if err := svc.ForgotPassword(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}

	code, ok := codes.codes["alice@example.com"]
	if !ok {
		t.Fatalf("expected a stored code")
	}
	if len(code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", code)
	}
	if ttl := codes.ttls["alice@example.com"]; ttl != 10*time.Minute {
		t.Fatalf("expected 10 minute ttl, got %v", ttl)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(mailer.sent))
	}
	if !strings.Contains(mailer.sent[0].Body, code) {
		t.Fatalf("email body does not carry the code")
	}
}

func TestAuthService_ForgotPassword_UnknownAccount(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	if err := svc.ForgotPassword(context.Background(), "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_ResetPassword_Success(t *testing.T) {
	svc, _, codes, _ := newAuthFixture()
	registerAlice(t, svc)

	_ = codes.Set(context.Background(), "alice@example.com", "123456", time.Minute)

	if err := svc.ResetPassword(context.Background(), "alice@example.com", "123456", "newpass"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	// Old password no longer works, new one does.
	if _, _, err := svc.Login(context.Background(), "alice@example.com", "pass123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected old password rejected, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "alice@example.com", "newpass"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	// The code is single-use.
	if err := svc.ResetPassword(context.Background(), "alice@example.com", "123456", "again"); !errors.Is(err, domain.ErrInvalidResetCode) {
		t.Fatalf("expected ErrInvalidResetCode on reuse, got %v", err)
	}
}

func TestAuthService_ResetPassword_WrongCode(t *testing.T) {
	svc, _, codes, _ := newAuthFixture()
	registerAlice(t, svc)

	_ = codes.Set(context.Background(), "alice@example.com", "123456", time.Minute)

	if err := svc.ResetPassword(context.Background(), "alice@example.com", "654321", "newpass"); !errors.Is(err, domain.ErrInvalidResetCode) {
		t.Fatalf("expected ErrInvalidResetCode, got %v", err)
	}
}

func TestAuthService_ResetPassword_NoCodeIssued(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	registerAlice(t, svc)

	if err := svc.ResetPassword(context.Background(), "alice@example.com", "000000", "newpass"); !errors.Is(err, domain.ErrInvalidResetCode) {
		t.Fatalf("expected ErrInvalidResetCode, got %v", err)
	}
}
