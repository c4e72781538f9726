package handlers

import (
	"time"

	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/identity"
	"github.com/Scoheart/lostfound-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ClaimHandler struct {
	claims *services.ClaimService
}

func NewClaimHandler(claims *services.ClaimService) *ClaimHandler {
	return &ClaimHandler{claims: claims}
}

// Apply handles POST /api/found-items/:id/claims.
func (h *ClaimHandler) Apply(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	itemID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req dto.ClaimRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	application, err := h.claims.Apply(itemID, id.UserID, req.Description)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "认领申请提交成功", application)
}

// Approve handles PUT /api/claims/:id/approve.
func (h *ClaimHandler) Approve(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	appID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	application, err := h.claims.Approve(appID, id.UserID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "认领申请已批准", application)
}

// Reject handles PUT /api/claims/:id/reject.
func (h *ClaimHandler) Reject(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	appID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	application, err := h.claims.Reject(appID, id.UserID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "认领申请已拒绝", application)
}

// Get handles GET /api/claims/:id. The applicant, the item owner and
// admins may view an application.
func (h *ClaimHandler) Get(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	appID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	application, err := h.claims.GetByID(appID)
	if err != nil {
		return fail(c, err)
	}
	if application.ApplicantID != id.UserID && application.OwnerID != id.UserID && !id.IsAdmin() {
		return fail(c, services.Forbidden("您没有权限查看该认领申请"))
	}
	return ok(c, "获取成功", application)
}

// ListMine handles GET /api/claims/my (applications I submitted).
func (h *ClaimHandler) ListMine(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	page, size := pageParams(c)

	applications, total, err := h.claims.ListByApplicant(id.UserID, c.Query("status"), page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", dto.NewPagedResponse(applications, page, size, total))
}

// ListReceived handles GET /api/claims/received (applications against my
// found items).
func (h *ClaimHandler) ListReceived(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	page, size := pageParams(c)

	applications, total, err := h.claims.ListForOwner(id.UserID, c.Query("status"), page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", dto.NewPagedResponse(applications, page, size, total))
}

// ListByItem handles GET /api/found-items/:id/claims (item owner or admin).
func (h *ClaimHandler) ListByItem(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	itemID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	page, size := pageParams(c)

	applications, total, err := h.claims.ListByFoundItem(itemID, id.UserID, id.IsAdmin(), page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", dto.NewPagedResponse(applications, page, size, total))
}

// ListAll handles GET /api/admin/claims with status/date/title/applicant
// filters.
func (h *ClaimHandler) ListAll(c *fiber.Ctx) error {
	page, size := pageParams(c)

	filter := dto.ClaimListFilter{
		Status:        c.Query("status"),
		ItemTitle:     c.Query("itemTitle"),
		ApplicantName: c.Query("applicantName"),
	}
	if v := c.Query("startDate"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.StartDate = &t
		}
	}
	if v := c.Query("endDate"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			end := t.Add(24*time.Hour - time.Nanosecond)
			filter.EndDate = &end
		}
	}

	applications, total, err := h.claims.ListAll(&filter, page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", dto.NewPagedResponse(applications, page, size, total))
}

// Delete handles DELETE /api/admin/claims/:id.
func (h *ClaimHandler) Delete(c *fiber.Ctx) error {
	appID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.claims.Delete(appID); err != nil {
		return fail(c, err)
	}
	return ok(c, "认领申请已删除", nil)
}
