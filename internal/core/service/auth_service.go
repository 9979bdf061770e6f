package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/domain"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/ports"
)

const resetCodeTTL = 10 * time.Minute

// AuthService implements registration, login and the one-time-code password
// reset flow.
type AuthService struct {
	users     ports.UserRepository
	codes     ports.ResetCodeStore
	mailer    ports.Mailer
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	codes ports.ResetCodeStore,
	mailer ports.Mailer,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		codes:     codes,
		mailer:    mailer,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if in.Password != in.RePassword {
		return nil, domain.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Email:            in.Email,
		PasswordHash:     string(hash),
		DateOfBirth:      in.DateOfBirth,
		SecurityQuestion: in.SecurityQuestion,
		Theme:            domain.DefaultThemePreference(),
		CreatedAt:        time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// A missing account and a wrong password look the same to the caller.
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := generateResetCode()
	if err != nil {
		return fmt.Errorf("generate reset code: %w", err)
	}

	if err := s.codes.Set(ctx, user.Email, code, resetCodeTTL); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}

	body := fmt.Sprintf("Your Connectly one-time code is: %s\nIt expires in 10 minutes.", code)
	if err := s.mailer.Send(ctx, user.Email, "Connectly OTP", body); err != nil {
		return fmt.Errorf("send reset code: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset code issued")
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	ok, err := s.codes.Validate(ctx, user.Email, code)
	if err != nil {
		return fmt.Errorf("validate reset code: %w", err)
	}
	if !ok {
		return domain.ErrInvalidResetCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, user.Email, string(hash)); err != nil {
		return err
	}

	if err := s.codes.Clear(ctx, user.Email); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to clear reset code")
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":        user.ID,
		"email":      user.Email,
		"first_name": user.FirstName,
		"exp":        time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// generateResetCode returns a 6-digit numeric one-time code.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
