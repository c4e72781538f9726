package handlers

import (
	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/identity"
	"github.com/Scoheart/lostfound-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ItemCommentHandler serves comments on lost and found item notices.
type ItemCommentHandler struct {
	comments *services.ItemCommentService
}

func NewItemCommentHandler(comments *services.ItemCommentService) *ItemCommentHandler {
	return &ItemCommentHandler{comments: comments}
}

// Create handles POST /api/comments/items.
func (h *ItemCommentHandler) Create(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}

	var req dto.CreateItemCommentRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return badRequest(c, "无效的物品ID格式")
	}

	comment, err := h.comments.Create(itemID, req.ItemType, id.UserID, req.Content)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "留言成功", comment)
}

// ListByItem handles GET /api/comments/items/:itemType/:itemId.
func (h *ItemCommentHandler) ListByItem(c *fiber.Ctx) error {
	itemID, err := paramUUID(c, "itemId")
	if err != nil {
		return fail(c, err)
	}
	page, size := pageParams(c)

	comments, total, err := h.comments.ListByItem(itemID, c.Params("itemType"), page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", dto.NewPagedResponse(comments, page, size, total))
}

// ListMine handles GET /api/comments/items/my.
func (h *ItemCommentHandler) ListMine(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	page, size := pageParams(c)

	comments, total, err := h.comments.ListByUser(id.UserID, page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", dto.NewPagedResponse(comments, page, size, total))
}

// Delete handles DELETE /api/comments/items/:id.
func (h *ItemCommentHandler) Delete(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	commentID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.comments.Delete(commentID, id.UserID, id.IsAdmin()); err != nil {
		return fail(c, err)
	}
	return ok(c, "留言已删除", nil)
}

// PostCommentHandler serves replies on forum posts.
type PostCommentHandler struct {
	comments *services.PostCommentService
}

func NewPostCommentHandler(comments *services.PostCommentService) *PostCommentHandler {
	return &PostCommentHandler{comments: comments}
}

// Create handles POST /api/comments/posts.
func (h *PostCommentHandler) Create(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}

	var req dto.CreatePostCommentRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		return badRequest(c, "无效的帖子ID格式")
	}

	comment, err := h.comments.Create(postID, id.UserID, req.Content)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "评论成功", comment)
}

// ListByPost handles GET /api/comments/posts/:postId.
func (h *PostCommentHandler) ListByPost(c *fiber.Ctx) error {
	postID, err := paramUUID(c, "postId")
	if err != nil {
		return fail(c, err)
	}
	page, size := pageParams(c)

	comments, total, err := h.comments.ListByPost(postID, page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", dto.NewPagedResponse(comments, page, size, total))
}

// ListMine handles GET /api/comments/posts/my.
func (h *PostCommentHandler) ListMine(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	page, size := pageParams(c)

	comments, total, err := h.comments.ListByUser(id.UserID, page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "获取成功", dto.NewPagedResponse(comments, page, size, total))
}

// Delete handles DELETE /api/comments/posts/:id.
func (h *PostCommentHandler) Delete(c *fiber.Ctx) error {
	id, err := identity.Current(c)
	if err != nil {
		return fail(c, services.Unauthorized("未登录"))
	}
	commentID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.comments.Delete(commentID, id.UserID, id.IsAdmin()); err != nil {
		return fail(c, err)
	}
	return ok(c, "评论已删除", nil)
}
