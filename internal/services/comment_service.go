package services

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Scoheart/lostfound-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemCommentService manages messages left on lost and found item notices.
type ItemCommentService struct {
	db *gorm.DB
}

func NewItemCommentService(db *gorm.DB) *ItemCommentService {
	return &ItemCommentService{db: db}
}

// Create adds a comment to an item. The item must exist for the given kind.
func (s *ItemCommentService) Create(itemID uuid.UUID, itemType string, userID uuid.UUID, content string) (*models.ItemComment, error) {
	if content = strings.TrimSpace(content); content == "" {
		return nil, BadRequest("留言内容不能为空")
	}
	if len([]rune(content)) > 500 {
		return nil, BadRequest("留言内容不能超过500个字符")
	}

	switch itemType {
	case models.ItemKindLost:
		var count int64
		s.db.Model(&models.LostItem{}).Where("id = ?", itemID).Count(&count)
		if count == 0 {
			return nil, NotFound("寻物启事不存在")
		}
	case models.ItemKindFound:
		var count int64
		s.db.Model(&models.FoundItem{}).Where("id = ?", itemID).Count(&count)
		if count == 0 {
			return nil, NotFound("失物招领不存在")
		}
	default:
		return nil, BadRequest("无效的物品类型: " + itemType)
	}

	comment := models.ItemComment{
		ItemID:   itemID,
		ItemType: itemType,
		Content:  content,
		UserID:   userID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.fillUser(&comment)
	return &comment, nil
}

func (s *ItemCommentService) GetByID(id uuid.UUID) (*models.ItemComment, error) {
	var comment models.ItemComment
	if err := s.db.First(&comment, "id = ?", id).Error; err != nil {
		return nil, NotFound("留言不存在")
	}
	s.fillUser(&comment)
	return &comment, nil
}

// ListByItem returns an item's comments, newest first.
func (s *ItemCommentService) ListByItem(itemID uuid.UUID, itemType string, page, size int) ([]models.ItemComment, int64, error) {
	query := s.db.Model(&models.ItemComment{}).
		Where("item_id = ? AND item_type = ?", itemID, itemType)

	var total int64
	query.Count(&total)

	var comments []models.ItemComment
	err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	for i := range comments {
		s.fillUser(&comments[i])
	}
	return comments, total, nil
}

// ListByUser returns the comments a user has left across all items.
func (s *ItemCommentService) ListByUser(userID uuid.UUID, page, size int) ([]models.ItemComment, int64, error) {
	query := s.db.Model(&models.ItemComment{}).Where("user_id = ?", userID)

	var total int64
	query.Count(&total)

	var comments []models.ItemComment
	err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	for i := range comments {
		s.fillUser(&comments[i])
	}
	return comments, total, nil
}

// Delete removes a comment. The author or an admin may delete; reports
// against the comment go with it.
func (s *ItemCommentService) Delete(id uuid.UUID, actorID uuid.UUID, actorIsAdmin bool) error {
	comment, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if comment.UserID != actorID && !actorIsAdmin {
		return Forbidden("您没有权限删除该留言")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("report_type = ? AND reported_item_id = ?", models.ReportTypeComment, id).Delete(&models.Report{})
		if err := tx.Delete(comment).Error; err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}
		slog.Info("item comment deleted", "comment_id", id.String(), "actor_id", actorID.String())
		return nil
	})
}

func (s *ItemCommentService) fillUser(comment *models.ItemComment) {
	var user models.User
	if err := s.db.Select("username", "avatar").First(&user, "id = ?", comment.UserID).Error; err == nil {
		comment.Username = user.Username
		comment.UserAvatar = user.Avatar
	}
}

// PostCommentService manages replies on forum posts.
type PostCommentService struct {
	db *gorm.DB
}

func NewPostCommentService(db *gorm.DB) *PostCommentService {
	return &PostCommentService{db: db}
}

func (s *PostCommentService) Create(postID, userID uuid.UUID, content string) (*models.PostComment, error) {
	if content = strings.TrimSpace(content); content == "" {
		return nil, BadRequest("评论内容不能为空")
	}
	if len([]rune(content)) > 500 {
		return nil, BadRequest("评论内容不能超过500个字符")
	}

	var count int64
	s.db.Model(&models.Post{}).Where("id = ?", postID).Count(&count)
	if count == 0 {
		return nil, NotFound("帖子不存在")
	}

	comment := models.PostComment{
		PostID:  postID,
		Content: content,
		UserID:  userID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.fillUser(&comment)
	return &comment, nil
}

func (s *PostCommentService) GetByID(id uuid.UUID) (*models.PostComment, error) {
	var comment models.PostComment
	if err := s.db.First(&comment, "id = ?", id).Error; err != nil {
		return nil, NotFound("评论不存在")
	}
	s.fillUser(&comment)
	return &comment, nil
}

func (s *PostCommentService) ListByPost(postID uuid.UUID, page, size int) ([]models.PostComment, int64, error) {
	query := s.db.Model(&models.PostComment{}).Where("post_id = ?", postID)

	var total int64
	query.Count(&total)

	var comments []models.PostComment
	err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	for i := range comments {
		s.fillUser(&comments[i])
	}
	return comments, total, nil
}

func (s *PostCommentService) ListByUser(userID uuid.UUID, page, size int) ([]models.PostComment, int64, error) {
	query := s.db.Model(&models.PostComment{}).Where("user_id = ?", userID)

	var total int64
	query.Count(&total)

	var comments []models.PostComment
	err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	for i := range comments {
		s.fillUser(&comments[i])
	}
	return comments, total, nil
}

func (s *PostCommentService) Delete(id uuid.UUID, actorID uuid.UUID, actorIsAdmin bool) error {
	comment, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if comment.UserID != actorID && !actorIsAdmin {
		return Forbidden("您没有权限删除该评论")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("report_type = ? AND reported_item_id = ?", models.ReportTypeComment, id).Delete(&models.Report{})
		if err := tx.Delete(comment).Error; err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}
		slog.Info("post comment deleted", "comment_id", id.String(), "actor_id", actorID.String())
		return nil
	})
}

func (s *PostCommentService) fillUser(comment *models.PostComment) {
	var user models.User
	if err := s.db.Select("username", "avatar").First(&user, "id = ?", comment.UserID).Error; err == nil {
		comment.Username = user.Username
		comment.UserAvatar = user.Avatar
	}
}
