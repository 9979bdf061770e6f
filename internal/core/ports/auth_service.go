package ports

import (
	"context"
	"time"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/domain"
)

// RegisterInput carries a new account's details.
type RegisterInput struct {
	FirstName        string
	LastName         string
	Email            string
	Password         string
	RePassword       string
	DateOfBirth      time.Time
	SecurityQuestion string
}

// AuthService implements registration, login and password reset.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// ForgotPassword issues a short-lived one-time code and emails it.
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword validates the one-time code and replaces the password.
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}
