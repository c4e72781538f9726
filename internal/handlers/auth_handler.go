package handlers

import (
	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	user, err := h.auth.Register(&req)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "注册成功", user)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	resp, err := h.auth.Login(&req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "登录成功", resp)
}
