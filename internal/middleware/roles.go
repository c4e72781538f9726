package middleware

import (
	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/identity"
	"github.com/gofiber/fiber/v2"
)

// RequireRoles allows only callers whose token role is in the given set.
// It must run after JWTProtected.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		id, err := identity.Current(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).
				JSON(dto.Fail("未授权，请先登录", fiber.StatusUnauthorized))
		}
		if _, ok := allowed[id.Role]; !ok {
			return c.Status(fiber.StatusForbidden).
				JSON(dto.Fail("权限不足", fiber.StatusForbidden))
		}
		return c.Next()
	}
}
