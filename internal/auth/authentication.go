package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const bearerScheme = "Bearer"

// AuthenticationFilter establishes who is calling. It never rejects a
// request: a missing, malformed or stale token simply leaves the request
// unauthenticated and control always reaches the next stage. Deciding whether
// an unauthenticated caller may proceed is the authorization filter's job.
type AuthenticationFilter struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewAuthenticationFilter constructs the filter.
func NewAuthenticationFilter(tokens *TokenManager, logger *zap.Logger) *AuthenticationFilter {
	return &AuthenticationFilter{tokens: tokens, logger: logger}
}

// Handle implements the per-request state machine.
func (f *AuthenticationFilter) Handle(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return c.Next()
	}

	details, err := f.tokens.Decode(token)
	if err != nil {
		// Decode failures are not surfaced here; the request proceeds
		// unauthenticated.
		ClearPrincipal(c)
		f.logger.Debug("token rejected", zap.Error(err))
		return c.Next()
	}

	if !f.tokens.IsStillValid(token, details) {
		ClearPrincipal(c)
		return c.Next()
	}

	SetPrincipal(c, details)
	return c.Next()
}

// bearerToken extracts the token from the Authorization header, reporting
// false for absent headers or non-bearer schemes.
func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) {
		return "", false
	}
	return parts[1], true
}
