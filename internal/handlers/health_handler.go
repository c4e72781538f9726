package handlers

import (
	"github.com/Scoheart/lostfound-backend/internal/database"
	"github.com/gofiber/fiber/v2"
)

// Health handles GET /health. It reports degraded when the database is
// unreachable so load balancers can pull the instance.
func Health(c *fiber.Ctx) error {
	if err := database.Ping(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "degraded",
			"database": "down",
		})
	}
	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": "up",
	})
}
