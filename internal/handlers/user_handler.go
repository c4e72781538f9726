package handlers

import (
	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/identity"
	"github.com/Scoheart/lostfound-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// UserHandler serves the logged-in user's own profile endpoints.
type UserHandler struct {
	users *services.UserService
	files *services.FileService
}

func NewUserHandler(users *services.UserService, files *services.FileService) *UserHandler {
	return &UserHandler{users: users, files: files}
}

// Me handles GET /api/users/me.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}

	user, err := h.users.GetByID(id.UserID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", user)
}

// UpdateMe handles PUT /api/users/me.
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}

	var req dto.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	user, err := h.users.UpdateProfile(id.UserID, &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "个人资料更新成功", user)
}

// ChangePassword handles PUT /api/users/me/password.
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}

	var req dto.ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	if err := h.users.ChangePassword(id.UserID, &req); err != nil {
		return fail(c, err)
	}
	return ok(c, "密码修改成功", nil)
}

// UploadAvatar handles POST /api/users/me/avatar. The file is stored and
// the account's avatar URL updated in one step.
func (h *UserHandler) UploadAvatar(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}

	file, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "请选择要上传的文件")
	}

	resp, err := h.files.Save(file)
	if err != nil {
		return fail(c, err)
	}
	if err := h.users.SetAvatar(id.UserID, resp.FileURL); err != nil {
		return fail(c, err)
	}
	return ok(c, "头像上传成功", resp)
}

// GetByID handles GET /api/users/:id (public profile view).
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	userID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		return fail(c, err)
	}
	// Public view exposes display fields only.
	return ok(c, "获取成功", fiber.Map{
		"id":        user.ID,
		"username":  user.Username,
		"avatar":    user.Avatar,
		"createdAt": user.CreatedAt,
	})
}
