package handlers

import (
	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/identity"
	"github.com/Scoheart/lostfound-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AnnouncementHandler struct {
	announcements *services.AnnouncementService
}

func NewAnnouncementHandler(announcements *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcements}
}

// ListPublic handles GET /api/announcements (published only, sticky first).
func (h *AnnouncementHandler) ListPublic(c *fiber.Ctx) error {
	page, size := pageParams(c)

	announcements, total, err := h.announcements.ListPublic(page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", dto.NewPagedResponse(announcements, page, size, total))
}

// GetPublic handles GET /api/announcements/:id.
func (h *AnnouncementHandler) GetPublic(c *fiber.Ctx) error {
	announcementID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	announcement, err := h.announcements.GetByID(announcementID, true)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", announcement)
}

// Create handles POST /api/admin/announcements.
func (h *AnnouncementHandler) Create(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}

	var req dto.CreateAnnouncementRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	announcement, err := h.announcements.Create(id.UserID, &req)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "公告发布成功", announcement)
}

// ListAdmin handles GET /api/admin/announcements (drafts included).
func (h *AnnouncementHandler) ListAdmin(c *fiber.Ctx) error {
	page, size := pageParams(c)

	announcements, total, err := h.announcements.ListAdmin(c.Query("keyword"), c.Query("status"), page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", dto.NewPagedResponse(announcements, page, size, total))
}

// ListMine handles GET /api/admin/announcements/my.
func (h *AnnouncementHandler) ListMine(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	page, size := pageParams(c)

	announcements, total, err := h.announcements.ListByAdmin(id.UserID, page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", dto.NewPagedResponse(announcements, page, size, total))
}

// GetAdmin handles GET /api/admin/announcements/:id.
func (h *AnnouncementHandler) GetAdmin(c *fiber.Ctx) error {
	announcementID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	announcement, err := h.announcements.GetByID(announcementID, false)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", announcement)
}

// Update handles PUT /api/admin/announcements/:id.
func (h *AnnouncementHandler) Update(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	announcementID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req dto.UpdateAnnouncementRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	announcement, err := h.announcements.Update(announcementID, &req, id.UserID, id.IsSysadmin())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "公告更新成功", announcement)
}

// Delete handles DELETE /api/admin/announcements/:id.
func (h *AnnouncementHandler) Delete(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	announcementID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.announcements.Delete(announcementID, id.UserID, id.IsSysadmin()); err != nil {
		return fail(c, err)
	}
	return ok(c, "公告已删除", nil)
}
