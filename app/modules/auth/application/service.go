package authservice

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	authjwt "github.com/apvc-club/stake-reservations/app/modules/auth/infrastructure/jwt"
	"github.com/apvc-club/stake-reservations/config"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// LoginResult is a successful admin login.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service defines the authentication operations.
type Service interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

// AuthServiceImpl validates the configured admin credential pair and issues
// session tokens. This replaces the old localStorage admin flag with a real
// session bound to a signed token.
type AuthServiceImpl struct {
	admin    config.AdminConfig
	provider *authjwt.Provider
	logger   *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(admin config.AdminConfig, provider *authjwt.Provider, logger *slog.Logger) Service {
	return &AuthServiceImpl{
		admin:    admin,
		provider: provider,
		logger:   logger,
	}
}

// Login checks the credential pair in constant time and returns a token on
// success.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) == 1
	if !userOK || !passOK {
		s.logger.WarnContext(ctx, "Rejected admin login attempt", slog.String("username", username))
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.provider.Generate(username, authjwt.RoleAdmin)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Admin logged in", slog.String("username", username))
	return &LoginResult{Token: token, ExpiresAt: expiresAt}, nil
}
