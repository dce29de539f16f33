package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/Night40050/support-copilot/pkg/util/errorutil"
)

// RequireScope ensures the authenticated service holds scope.
func RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.HasScope(scope) {
			return c.Next()
		}
		return apperrors.NewForbidden("token lacks scope " + scope)
	}
}
