package auth

import "github.com/gofiber/fiber/v2"

// Locals keys. The principal is request-scoped state written by the
// authentication filter; pessoaId/perfil are the attributes the authorization
// filter resolves for downstream handlers.
const (
	principalKey = "auth_principal"

	// LocalPersonID is the resolved caller person id, string UUID form.
	LocalPersonID = "pessoaId"
	// LocalProfile is the resolved caller access profile.
	LocalProfile = "perfil"
)

// SetPrincipal installs the authenticated principal for this request.
func SetPrincipal(c *fiber.Ctx, details *UserDetails) {
	c.Locals(principalKey, details)
}

// ClearPrincipal removes any principal bound to this request. Filters call it
// before making decisions so a reused worker never leaks a prior request's
// identity.
func ClearPrincipal(c *fiber.Ctx) {
	c.Locals(principalKey, (*UserDetails)(nil))
}

// PrincipalFromContext retrieves the authenticated caller, if any.
func PrincipalFromContext(c *fiber.Ctx) (*UserDetails, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	details, ok := val.(*UserDetails)
	if !ok || details == nil {
		return nil, false
	}
	return details, true
}

// CallerPersonID returns the person id attribute set by the authorization
// filter, empty when the request carried no readable token.
func CallerPersonID(c *fiber.Ctx) string {
	if val, ok := c.Locals(LocalPersonID).(string); ok {
		return val
	}
	return ""
}

// CallerProfile returns the profile attribute set by the authorization filter.
func CallerProfile(c *fiber.Ctx) string {
	if val, ok := c.Locals(LocalProfile).(string); ok {
		return val
	}
	return ""
}
