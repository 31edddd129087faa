package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trucred/score-service/internal/config"
)

func signedToken(t *testing.T, secret string, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedRouter(cfg *config.Config, adminID *string) *mux.Router {
	r := mux.NewRouter()
	r.Use(AuthMiddleware(cfg))
	r.HandleFunc("/admin/assessments", func(w http.ResponseWriter, r *http.Request) {
		*adminID, _ = r.Context().Value("adminID").(string)
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func TestAuthMiddlewareAllowsValidToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	var adminID string
	router := protectedRouter(cfg, &adminID)

	req := httptest.NewRequest(http.MethodGet, "/admin/assessments", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "test-secret", time.Hour))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", adminID)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	var adminID string
	router := protectedRouter(cfg, &adminID)

	req := httptest.NewRequest(http.MethodGet, "/admin/assessments", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsWrongSecret(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	var adminID string
	router := protectedRouter(cfg, &adminID)

	req := httptest.NewRequest(http.MethodGet, "/admin/assessments", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "other-secret", time.Hour))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	var adminID string
	router := protectedRouter(cfg, &adminID)

	req := httptest.NewRequest(http.MethodGet, "/admin/assessments", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "test-secret", -time.Hour))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
