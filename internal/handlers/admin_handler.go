package handlers

import (
	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/models"
	"github.com/Scoheart/lostfound-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the sysadmin account-management panel: community
// admin accounts and the full user roster.
type AdminHandler struct {
	users *services.UserService
}

func NewAdminHandler(users *services.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// RegisterAdmin handles POST /api/sysadmin/admins.
func (h *AdminHandler) RegisterAdmin(c *fiber.Ctx) error {
	var req dto.RegisterAdminRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleAdmin
	}
	if role != models.RoleAdmin && role != models.RoleSysadmin {
		return badRequest(c, "无效的管理员角色: "+role)
	}

	user, err := h.users.CreateAccount(req.Username, req.Email, req.Password, role, nil)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "管理员账户创建成功", services.ToAdminDto(user))
}

// ListAdmins handles GET /api/sysadmin/admins.
func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	page, size := pageParams(c)
	search := c.Query("search")

	users, total, err := h.users.List([]string{models.RoleAdmin, models.RoleSysadmin}, search, nil, page, size)
	if err != nil {
		return fail(c, err)
	}

	dtos := make([]dto.AdminUserDto, 0, len(users))
	for i := range users {
		dtos = append(dtos, services.ToAdminDto(&users[i]))
	}
	return ok(c, "获取成功", dto.NewPagedResponse(dtos, page, size, total))
}

// ListUsers handles GET /api/sysadmin/users with role/search/status filters.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	page, size := pageParams(c)
	search := c.Query("search")

	var roles []string
	if role := c.Query("role"); role != "" {
		roles = []string{role}
	}

	var enabled *bool
	if v := c.Query("isEnabled"); v != "" {
		b := v == "true"
		enabled = &b
	}

	users, total, err := h.users.List(roles, search, enabled, page, size)
	if err != nil {
		return fail(c, err)
	}

	dtos := make([]dto.AdminUserDto, 0, len(users))
	for i := range users {
		dtos = append(dtos, services.ToAdminDto(&users[i]))
	}
	return ok(c, "获取成功", dto.NewPagedResponse(dtos, page, size, total))
}

// GetUser handles GET /api/sysadmin/users/:id.
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	user, err := h.users.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", services.ToAdminDto(user))
}

// CreateUser handles POST /api/sysadmin/users.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleResident
	}
	extra := map[string]interface{}{
		"phone":    req.Phone,
		"realName": req.RealName,
		"address":  req.Address,
	}

	user, err := h.users.CreateAccount(req.Username, req.Email, req.Password, role, extra)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "用户创建成功", services.ToAdminDto(user))
}

// UpdateUser handles PUT /api/sysadmin/users/:id.
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req dto.UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	user, err := h.users.UpdateAccount(id, &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "用户信息更新成功", services.ToAdminDto(user))
}

// UpdateUserStatus handles PUT /api/sysadmin/users/:id/status.
func (h *AdminHandler) UpdateUserStatus(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req dto.UpdateStatusRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	if req.IsEnabled == nil {
		return badRequest(c, "isEnabled不能为空")
	}

	user, err := h.users.SetEnabled(id, *req.IsEnabled)
	if err != nil {
		return fail(c, err)
	}

	message := "账户已启用"
	if !*req.IsEnabled {
		message = "账户已禁用"
	}
	return ok(c, message, services.ToAdminDto(user))
}

// ResetUserPassword handles PUT /api/sysadmin/users/:id/password.
func (h *AdminHandler) ResetUserPassword(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req dto.ResetPasswordRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	if err := h.users.ResetPassword(id, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return ok(c, "密码重置成功", nil)
}

// DeleteAdmin handles DELETE /api/sysadmin/admins/:id. Only community
// admin accounts can be deleted here.
func (h *AdminHandler) DeleteAdmin(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.users.Delete(id, models.RoleAdmin); err != nil {
		return fail(c, err)
	}
	return ok(c, "管理员账户已删除", nil)
}

// DeleteUser handles DELETE /api/sysadmin/users/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.users.Delete(id); err != nil {
		return fail(c, err)
	}
	return ok(c, "用户已删除", nil)
}
