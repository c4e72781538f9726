package handlers

import (
	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/models"
	"github.com/Scoheart/lostfound-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ResidentHandler serves the community admin panel for resident accounts:
// listing, locking and unlocking.
type ResidentHandler struct {
	users *services.UserService
}

func NewResidentHandler(users *services.UserService) *ResidentHandler {
	return &ResidentHandler{users: users}
}

// List handles GET /api/admin/residents.
func (h *ResidentHandler) List(c *fiber.Ctx) error {
	page, size := pageParams(c)
	search := c.Query("search")

	var enabled *bool
	if v := c.Query("isEnabled"); v != "" {
		b := v == "true"
		enabled = &b
	}

	users, total, err := h.users.List([]string{models.RoleResident}, search, enabled, page, size)
	if err != nil {
		return fail(c, err)
	}

	dtos := make([]dto.AdminUserDto, 0, len(users))
	for i := range users {
		dtos = append(dtos, services.ToAdminDto(&users[i]))
	}
	return ok(c, "获取成功", dto.NewPagedResponse(dtos, page, size, total))
}

// Get handles GET /api/admin/residents/:id.
func (h *ResidentHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	user, err := h.users.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	if user.Role != models.RoleResident {
		return fail(c, services.NotFound("居民账户不存在"))
	}
	return ok(c, "获取成功", services.ToAdminDto(user))
}

// UpdateStatus handles PUT /api/admin/residents/:id/status.
func (h *ResidentHandler) UpdateStatus(c *fiber.Ctx) error {
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

	user, err := h.users.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	if user.Role != models.RoleResident {
		return fail(c, services.NotFound("居民账户不存在"))
	}

	updated, err := h.users.SetEnabled(id, *req.IsEnabled)
	if err != nil {
		return fail(c, err)
	}

	message := "账户已启用"
	if !*req.IsEnabled {
		message = "账户已禁用"
	}
	return ok(c, message, services.ToAdminDto(updated))
}

type lockRequest struct {
	Days   int    `json:"days"`
	Reason string `json:"reason"`
}

// Lock handles PUT /api/admin/residents/:id/lock.
func (h *ResidentHandler) Lock(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req lockRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	if req.Days <= 0 {
		return badRequest(c, "锁定天数必须大于0")
	}

	if err := h.users.Lock(nil, id, req.Days, req.Reason); err != nil {
		return fail(c, err)
	}
	return ok(c, "账户已锁定", nil)
}

// Unlock handles PUT /api/admin/residents/:id/unlock.
func (h *ResidentHandler) Unlock(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.users.Unlock(id); err != nil {
		return fail(c, err)
	}
	return ok(c, "账户已解锁", nil)
}
