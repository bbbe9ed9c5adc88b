package authhandlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authservice "github.com/apvc-club/stake-reservations/app/modules/auth/application"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	result *authservice.LoginResult
	err    error
}

func (f *fakeAuthService) Login(context.Context, string, string) (*authservice.LoginResult, error) {
	return f.result, f.err
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		expires := time.Now().Add(time.Hour)
		h := NewAuthHandlers(&fakeAuthService{
			result: &authservice.LoginResult{Token: "tok", ExpiresAt: expires},
		})

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"username":"admin","password":"s3cret"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var result authservice.LoginResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
		assert.Equal(t, "tok", result.Token)
	})

	t.Run("bad credentials", func(t *testing.T) {
		h := NewAuthHandlers(&fakeAuthService{err: authservice.ErrInvalidCredentials})

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"username":"admin","password":"wrong"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		h := NewAuthHandlers(&fakeAuthService{})

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
