// internals/middlewares/auth/role_middleware.go
package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "tutorku_backend/internals/helpers"
)

// OnlyRolesSlice membatasi akses ke role tertentu.
// Dipakai setelah AuthMiddleware (role sudah ada di locals).
func OnlyRolesSlice(message string, roles []string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := helper.GetRoleFromToken(c)
		if _, ok := allowed[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, message)
		}
		return c.Next()
	}
}
