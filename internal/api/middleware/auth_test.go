package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"loan-ledger/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	secret := "testsecret"

	cfg := config.AuthConfig{
		Enabled:   true,
		JWTSecret: secret,
	}

	var gotSubject string
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject, _ = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	sign := func(t *testing.T, method jwt.SigningMethod, claims jwt.MapClaims, key interface{}) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	t.Run("should allow request when middleware is disabled", func(t *testing.T) {
		disabled := cfg
		disabled.Enabled = false

		rec := httptest.NewRecorder()
		AuthMiddleware(disabled, logger)(nextHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should reject request with missing Authorization header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AuthMiddleware(cfg, logger)(nextHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
	})

	t.Run("should reject request with wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()

		AuthMiddleware(cfg, logger)(nextHandler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject request with invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer invalidtoken")
		rec := httptest.NewRecorder()

		AuthMiddleware(cfg, logger)(nextHandler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject expired token", func(t *testing.T) {
		token := sign(t, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "teller", "exp": time.Now().Add(-time.Minute).Unix()}, []byte(secret))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		AuthMiddleware(cfg, logger)(nextHandler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject token signed with another algorithm", func(t *testing.T) {
		token := sign(t, jwt.SigningMethodHS512, jwt.MapClaims{"sub": "teller"}, []byte(secret))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		AuthMiddleware(cfg, logger)(nextHandler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should allow request with valid token", func(t *testing.T) {
		token := sign(t, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1234567890"}, []byte(secret))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		AuthMiddleware(cfg, logger)(nextHandler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "1234567890", gotSubject)
	})
}
