package handlers

import (
	"errors"
	"log/slog"

	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ok writes a success envelope.
func ok(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(dto.Success(message, data))
}

// created writes a success envelope with 201.
func created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(dto.Success(message, data))
}

// fail maps a service error to its HTTP status and writes a failure
// envelope. Unclassified errors become 500 with a generic message; the
// detail goes to the log only.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrBadRequest):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrConflict):
		status = fiber.StatusConflict
	}

	if status == fiber.StatusInternalServerError {
		slog.Error("request failed",
			"path", c.Path(), "method", c.Method(), "error", err.Error())
		return c.Status(status).JSON(dto.Fail("服务器内部错误", status))
	}
	return c.Status(status).JSON(dto.Fail(err.Error(), status))
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(message, fiber.StatusBadRequest))
}

// parseBody binds the JSON body, answering 400 on malformed input.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return services.BadRequest("请求参数格式不正确")
	}
	return nil
}

// paramUUID parses a uuid path parameter.
func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, services.BadRequest("无效的ID格式")
	}
	return id, nil
}

// pageParams reads 1-indexed pagination from the query string. Out-of-range
// values are clamped rather than rejected.
func pageParams(c *fiber.Ctx) (page, size int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	size = c.QueryInt("size", 10)
	if size < 1 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return page, size
}
