package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func guardedApp() *fiber.App {
	app := fiber.New()
	app.Get("/admin", AdminMiddleware(secret), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func statusFor(t *testing.T, authorization string) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/admin", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := guardedApp().Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAdminMiddleware(t *testing.T) {
	admin, err := SignAdminToken(secret, "ops", jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	require.NoError(t, err)

	user, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "user"}).SignedString([]byte(secret))
	require.NoError(t, err)

	forged, err := SignAdminToken("other-secret", "ops", nil)
	require.NoError(t, err)

	expired, err := SignAdminToken(secret, "ops", jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, statusFor(t, "Bearer "+admin))
	assert.Equal(t, fiber.StatusOK, statusFor(t, admin))
	assert.Equal(t, fiber.StatusUnauthorized, statusFor(t, ""))
	assert.Equal(t, fiber.StatusForbidden, statusFor(t, "Bearer "+user))
	assert.Equal(t, fiber.StatusUnauthorized, statusFor(t, "Bearer "+forged))
	assert.Equal(t, fiber.StatusUnauthorized, statusFor(t, "Bearer "+expired))
	assert.Equal(t, fiber.StatusUnauthorized, statusFor(t, "Bearer garbage"))
}
