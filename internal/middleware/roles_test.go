package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Scoheart/lostfound-backend/internal/config"
	"github.com/Scoheart/lostfound-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCfg() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		JWTHeader: "Authorization",
		JWTPrefix: "Bearer",
	}
}

func signToken(t *testing.T, secret, role string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":      uuid.New().String(),
		"username": "tester",
		"role":     role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newProtectedApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Get("/admin", JWTProtected(cfg), RequireRoles(models.RoleAdmin, models.RoleSysadmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestJWTProtected_MissingToken(t *testing.T) {
	cfg := testCfg()
	app := newProtectedApp(cfg)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtected_BadSignature(t *testing.T) {
	cfg := testCfg()
	app := newProtectedApp(cfg)

	token := signToken(t, "wrong-secret", models.RoleAdmin)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoles(t *testing.T) {
	cfg := testCfg()
	app := newProtectedApp(cfg)

	// a resident token is rejected with 403
	token := signToken(t, cfg.JWTSecret, models.RoleResident)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// admin and sysadmin pass
	for _, role := range []string{models.RoleAdmin, models.RoleSysadmin} {
		token = signToken(t, cfg.JWTSecret, role)
		req = httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err = app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}
