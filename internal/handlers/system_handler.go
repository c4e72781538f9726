package handlers

import (
	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/models"
	"github.com/Scoheart/lostfound-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SystemHandler serves one-time setup endpoints.
type SystemHandler struct {
	db    *gorm.DB
	users *services.UserService
}

func NewSystemHandler(db *gorm.DB, users *services.UserService) *SystemHandler {
	return &SystemHandler{db: db, users: users}
}

// InitAdmin handles POST /api/system/init-admin. It creates the first
// sysadmin account and refuses once any sysadmin exists, so the endpoint
// is only useful on a fresh install.
func (h *SystemHandler) InitAdmin(c *fiber.Ctx) error {
	var count int64
	h.db.Model(&models.User{}).Where("role = ?", models.RoleSysadmin).Count(&count)
	if count > 0 {
		return fail(c, services.Conflict("系统管理员已存在，无法重复初始化"))
	}

	var req dto.RegisterAdminRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	user, err := h.users.CreateAccount(req.Username, req.Email, req.Password, models.RoleSysadmin, nil)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "系统管理员初始化成功", services.ToAdminDto(user))
}
