package authservice

import (
	"context"
	"testing"
	"time"

	authjwt "github.com/apvc-club/stake-reservations/app/modules/auth/infrastructure/jwt"
	"github.com/apvc-club/stake-reservations/config"
	"github.com/apvc-club/stake-reservations/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() Service {
	obs := observability.NewNoOp()
	provider := authjwt.NewProvider("test-secret", "stake-reservations", time.Hour)
	admin := config.AdminConfig{Username: "admin", Password: "s3cret"}
	return NewAuthService(admin, provider, obs.Logger)
}

func TestLoginSuccess(t *testing.T) {
	svc := newTestService()

	result, err := svc.Login(context.Background(), "admin", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.True(t, result.ExpiresAt.After(time.Now()))
}

func TestLoginRejected(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "wrong"},
		{"wrong username", "root", "s3cret"},
		{"both wrong", "root", "wrong"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.username, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}
