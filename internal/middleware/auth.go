package middleware

import (
	"github.com/Scoheart/lostfound-backend/internal/config"
	"github.com/Scoheart/lostfound-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JWTProtected validates the bearer token and stores the parsed token in
// c.Locals("user") for identity.Current.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		TokenLookup: "header:" + cfg.JWTHeader,
		AuthScheme:  cfg.JWTPrefix,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).
				JSON(dto.Fail("未授权，请先登录", fiber.StatusUnauthorized))
		},
	})
}
