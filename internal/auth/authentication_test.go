package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// authProbe returns an app running only the authentication filter, with a
// terminal handler reporting whether a principal was installed.
func authProbe(tm *TokenManager) (*fiber.App, *UserDetails) {
	app := fiber.New()
	filter := NewAuthenticationFilter(tm, zap.NewNop())
	app.Use(filter.Handle)

	var seen UserDetails
	app.Get("/probe", func(c *fiber.Ctx) error {
		if principal, ok := PrincipalFromContext(c); ok {
			seen = *principal
			return c.SendString("authenticated")
		}
		return c.SendString("anonymous")
	})
	return app, &seen
}

func probeBody(t *testing.T, app *fiber.App, header string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if header != "" {
		req.Header.Set(fiber.HeaderAuthorization, header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	buf := make([]byte, 64)
	n, _ := resp.Body.Read(buf)
	return string(buf[:n])
}

func TestAuthenticationPassesThroughWithoutHeader(t *testing.T) {
	app, _ := authProbe(newTestManager(t))
	assert.Equal(t, "anonymous", probeBody(t, app, ""))
}

func TestAuthenticationPassesThroughNonBearerScheme(t *testing.T) {
	app, _ := authProbe(newTestManager(t))
	assert.Equal(t, "anonymous", probeBody(t, app, "Basic dXNlcjpwYXNz"))
}

func TestAuthenticationPassesThroughInvalidToken(t *testing.T) {
	app, _ := authProbe(newTestManager(t))
	assert.Equal(t, "anonymous", probeBody(t, app, "Bearer not-a-jwt"))
}

func TestAuthenticationPassesThroughExpiredToken(t *testing.T) {
	tm := newTestManager(t)
	expired := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}
	token, _ := signedToken(t, expired, ProfileAdmin)

	app, _ := authProbe(tm)
	assert.Equal(t, "anonymous", probeBody(t, app, "Bearer "+token))
}

func TestAuthenticationInstallsPrincipal(t *testing.T) {
	tm := newTestManager(t)
	token, details := signedToken(t, tm, ProfileMechanic)

	app, seen := authProbe(tm)
	assert.Equal(t, "authenticated", probeBody(t, app, "Bearer "+token))
	assert.Equal(t, details.Username, seen.Username)
	assert.Equal(t, details.PersonID, seen.PersonID)
	assert.Equal(t, details.Profile, seen.Profile)
}
