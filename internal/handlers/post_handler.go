package handlers

import (
	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/identity"
	"github.com/Scoheart/lostfound-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PostHandler struct {
	posts *services.PostService
}

func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// Create handles POST /api/posts.
func (h *PostHandler) Create(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}

	var req dto.CreatePostRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	post, err := h.posts.Create(id.UserID, &req)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "帖子发布成功", post)
}

// List handles GET /api/posts.
func (h *PostHandler) List(c *fiber.Ctx) error {
	page, size := pageParams(c)

	posts, total, err := h.posts.List(c.Query("keyword"), page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", dto.NewPagedResponse(posts, page, size, total))
}

// Get handles GET /api/posts/:id.
func (h *PostHandler) Get(c *fiber.Ctx) error {
	postID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	post, err := h.posts.GetByID(postID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", post)
}

// ListMine handles GET /api/posts/my.
func (h *PostHandler) ListMine(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	page, size := pageParams(c)

	posts, total, err := h.posts.ListByUser(id.UserID, page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", dto.NewPagedResponse(posts, page, size, total))
}

// ListByUser handles GET /api/posts/user/:userId.
func (h *PostHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := paramUUID(c, "userId")
	if err != nil {
		return fail(c, err)
	}
	page, size := pageParams(c)

	posts, total, err := h.posts.ListByUser(userID, page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", dto.NewPagedResponse(posts, page, size, total))
}

// Update handles PUT /api/posts/:id.
func (h *PostHandler) Update(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	postID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req dto.UpdatePostRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	post, err := h.posts.Update(postID, &req, id.UserID, id.IsAdmin())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "帖子更新成功", post)
}

// Delete handles DELETE /api/posts/:id.
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	postID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.posts.Delete(postID, id.UserID, id.IsAdmin()); err != nil {
		return fail(c, err)
	}
	return ok(c, "帖子已删除", nil)
}
