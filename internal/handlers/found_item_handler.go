package handlers

import (
	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/identity"
	"github.com/Scoheart/lostfound-backend/internal/models"
	"github.com/Scoheart/lostfound-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type FoundItemHandler struct {
	items *services.FoundItemService
}

func NewFoundItemHandler(items *services.FoundItemService) *FoundItemHandler {
	return &FoundItemHandler{items: items}
}

// Create handles POST /api/found-items.
func (h *FoundItemHandler) Create(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}

	var item models.FoundItem
	if err := parseBody(c, &item); err != nil {
		return fail(c, err)
	}
	item.UserID = id.UserID

	if err := h.items.Create(&item); err != nil {
		return fail(c, err)
	}
	item.Username = id.Username
	return created(c, "失物招领发布成功", item)
}

// List handles GET /api/found-items.
func (h *FoundItemHandler) List(c *fiber.Ctx) error {
	page, size := pageParams(c)

	items, total, err := h.items.List(c.Query("category"), c.Query("status"), c.Query("keyword"), page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", dto.NewPagedResponse(items, page, size, total))
}

// Get handles GET /api/found-items/:id.
func (h *FoundItemHandler) Get(c *fiber.Ctx) error {
	itemID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	item, err := h.items.GetByID(itemID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", item)
}

// ListMine handles GET /api/found-items/my.
func (h *FoundItemHandler) ListMine(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	page, size := pageParams(c)

	items, total, err := h.items.ListByUser(id.UserID, page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", dto.NewPagedResponse(items, page, size, total))
}

// Update handles PUT /api/found-items/:id.
func (h *FoundItemHandler) Update(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	itemID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var updated models.FoundItem
	if err := parseBody(c, &updated); err != nil {
		return fail(c, err)
	}

	item, err := h.items.Update(itemID, &updated, id.UserID, id.IsAdmin())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "失物招领更新成功", item)
}

// UpdateStatus handles PUT /api/found-items/:id/status.
func (h *FoundItemHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	itemID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req dto.UpdateItemStatusRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	item, err := h.items.UpdateStatus(itemID, req.Status, id.UserID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "状态更新成功", item)
}

// Delete handles DELETE /api/found-items/:id.
func (h *FoundItemHandler) Delete(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	itemID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.items.Delete(itemID, id.UserID, id.IsAdmin()); err != nil {
		return fail(c, err)
	}
	return ok(c, "失物招领已删除", nil)
}
