package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Path segments reserved for staff, checked in both spellings used across the
// mesh.
var restrictedSegments = []string{"execucoes", "execucao", "execution"}

// AuthorizationFilter issues the terminal allow/deny decision. It inspects the
// token itself through the TokenManager's extraction helpers, so it works even
// when deployed without the authentication filter. Runs strictly after
// authentication for a given request.
type AuthorizationFilter struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewAuthorizationFilter constructs the filter.
func NewAuthorizationFilter(tokens *TokenManager, logger *zap.Logger) *AuthorizationFilter {
	return &AuthorizationFilter{tokens: tokens, logger: logger}
}

// Handle applies the role hierarchy and method/path restrictions.
func (f *AuthorizationFilter) Handle(c *fiber.Ctx) error {
	// Reset the request attributes before deciding; an allow below is the
	// only way they get set.
	c.Locals(LocalPersonID, nil)
	c.Locals(LocalProfile, nil)

	token, ok := bearerToken(c)
	if !ok {
		// No opinion without a bearer token; other mechanisms decide.
		return c.Next()
	}

	profile, err := f.tokens.ExtractProfile(token)
	if err != nil {
		// Insufficient information to restrict.
		f.logger.Debug("profile extraction failed", zap.Error(err))
		return c.Next()
	}
	personID, err := f.tokens.ExtractPersonID(token)
	if err != nil {
		f.logger.Debug("person id extraction failed", zap.Error(err))
		return c.Next()
	}

	switch profile {
	case ProfileAdmin, ProfileMechanic:
		return f.allow(c, personID, profile)
	}

	// CLIENTE and unrecognized profiles share the restrictive path.
	if restrictedPath(c.Path()) {
		return f.deny(c, "perfil sem acesso a execucoes")
	}
	if c.Method() != fiber.MethodGet {
		return f.deny(c, "perfil permite apenas leitura")
	}
	return f.allow(c, personID, profile)
}

func (f *AuthorizationFilter) allow(c *fiber.Ctx, personID, profile string) error {
	c.Locals(LocalPersonID, personID)
	c.Locals(LocalProfile, profile)
	return c.Next()
}

func (f *AuthorizationFilter) deny(c *fiber.Ctx, reason string) error {
	f.logger.Info("access denied",
		zap.String("path", c.Path()),
		zap.String("method", c.Method()),
		zap.String("reason", reason),
	)
	// Terminal: the chain is not invoked past this point.
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error": fiber.Map{"code": "FORBIDDEN", "message": reason},
	})
}

func restrictedPath(path string) bool {
	lower := strings.ToLower(path)
	for _, segment := range restrictedSegments {
		if strings.Contains(lower, segment) {
			return true
		}
	}
	return false
}
