package handlers

import (
	"github.com/Scoheart/lostfound-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// UploadHandler accepts image uploads for item notices and posts.
type UploadHandler struct {
	files *services.FileService
}

func NewUploadHandler(files *services.FileService) *UploadHandler {
	return &UploadHandler{files: files}
}

// Upload handles POST /api/upload/image.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "请选择要上传的文件")
	}

	resp, err := h.files.Save(file)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "文件上传成功", resp)
}
