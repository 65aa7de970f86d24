package middlewares_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sonuudigital/storefront/internal/auth"
	"github.com/sonuudigital/storefront/internal/logs"
	"github.com/sonuudigital/storefront/internal/middlewares"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTManager(t *testing.T) *auth.JWTManager {
	t.Helper()

	privKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	privKeyBytes, err := x509.MarshalECPrivateKey(privKey)
	require.NoError(t, err)
	privKeyPem := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: privKeyBytes})

	pubKeyBytes, err := x509.MarshalPKIXPublicKey(&privKey.PublicKey)
	require.NoError(t, err)
	pubKeyPem := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubKeyBytes})

	jwtManager, err := auth.NewJWTManager(privKeyPem, pubKeyPem, "test-issuer", "test-audience", 15*time.Minute)
	require.NoError(t, err)
	return jwtManager
}

func setupAuthTest(t *testing.T) (*auth.JWTManager, http.Handler) {
	t.Helper()
	jwtManager := newTestJWTManager(t)
	logger := logs.NewSlogLogger()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middlewares.GetUserClaims(r)
		assert.True(t, ok)
		assert.Equal(t, auth.RoleAdmin, claims.Role)
		w.WriteHeader(http.StatusOK)
	})

	return jwtManager, middlewares.AdminAuthMiddleware(jwtManager, logger)(next)
}

func TestAdminAuthMiddleware(t *testing.T) {
	t.Run("Valid admin token", testAuthValidAdminToken)
	t.Run("Missing header", testAuthMissingHeader)
	t.Run("Malformed header", testAuthMalformedHeader)
	t.Run("Invalid token", testAuthInvalidToken)
	t.Run("Non-admin role", testAuthNonAdminRole)
}

func testAuthValidAdminToken(t *testing.T) {
	jwtManager, handler := setupAuthTest(t)

	token, err := jwtManager.GenerateToken("admin-1", "admin@example.com", auth.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/metrics", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func testAuthMissingHeader(t *testing.T) {
	_, handler := setupAuthTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/metrics", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func testAuthMalformedHeader(t *testing.T) {
	_, handler := setupAuthTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/metrics", nil)
	req.Header.Set("Authorization", "Token abc")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func testAuthInvalidToken(t *testing.T) {
	_, handler := setupAuthTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/metrics", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func testAuthNonAdminRole(t *testing.T) {
	jwtManager, handler := setupAuthTest(t)

	token, err := jwtManager.GenerateToken("user-1", "user@example.com", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/metrics", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
