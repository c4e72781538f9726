package handlers

import (
	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/identity"
	"github.com/Scoheart/lostfound-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Create handles POST /api/reports.
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}

	var req dto.ReportRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	if req.Reason == "" {
		return badRequest(c, "举报原因不能为空")
	}

	report, err := h.reports.Create(id.UserID, &req)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "举报提交成功", report)
}

// ListMine handles GET /api/reports/my.
func (h *ReportHandler) ListMine(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	page, size := pageParams(c)

	reports, total, err := h.reports.ListByReporter(id.UserID, page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", dto.NewPagedResponse(reports, page, size, total))
}

// ListAdmin handles GET /api/admin/reports, the moderation queue.
func (h *ReportHandler) ListAdmin(c *fiber.Ctx) error {
	page, size := pageParams(c)

	result, err := h.reports.ListAdmin(c.Query("status"), c.Query("reportType"), page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", result)
}

// Get handles GET /api/admin/reports/:id.
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	reportID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	report, err := h.reports.GetByID(reportID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", report)
}

// ListByItem handles GET /api/admin/reports/item/:type/:itemId, every
// report ever filed against one piece of content.
func (h *ReportHandler) ListByItem(c *fiber.Ctx) error {
	itemID, err := paramUUID(c, "itemId")
	if err != nil {
		return fail(c, err)
	}

	reports, err := h.reports.ListByItem(c.Params("type"), itemID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", reports)
}

// Resolve handles PUT /api/admin/reports/:id/resolve.
func (h *ReportHandler) Resolve(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	reportID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req dto.ReportResolutionRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	report, err := h.reports.Resolve(reportID, id.UserID, &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "举报处理成功", report)
}
