package services

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostService manages the neighborhood forum posts.
type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

func (s *PostService) Create(userID uuid.UUID, req *dto.CreatePostRequest) (*models.Post, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, BadRequest("标题不能为空")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, BadRequest("内容不能为空")
	}

	post := models.Post{
		Title:   title,
		Content: req.Content,
		UserID:  userID,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	slog.Info("post created", "post_id", post.ID.String(), "user_id", userID.String())
	s.fillUser(&post)
	return &post, nil
}

func (s *PostService) GetByID(id uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, "id = ?", id).Error; err != nil {
		return nil, NotFound("帖子不存在")
	}
	s.fillUser(&post)
	return &post, nil
}

// List returns a page of posts, optionally filtered by title keyword.
func (s *PostService) List(keyword string, page, size int) ([]models.Post, int64, error) {
	query := s.db.Model(&models.Post{})
	if keyword = strings.TrimSpace(keyword); keyword != "" {
		query = query.Where("title LIKE ?", "%"+keyword+"%")
	}

	var total int64
	query.Count(&total)

	var posts []models.Post
	err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	for i := range posts {
		s.fillUser(&posts[i])
	}
	return posts, total, nil
}

func (s *PostService) ListByUser(userID uuid.UUID, page, size int) ([]models.Post, int64, error) {
	query := s.db.Model(&models.Post{}).Where("user_id = ?", userID)

	var total int64
	query.Count(&total)

	var posts []models.Post
	err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	for i := range posts {
		s.fillUser(&posts[i])
	}
	return posts, total, nil
}

// Update edits a post. Only the author or an admin may update.
func (s *PostService) Update(id uuid.UUID, req *dto.UpdatePostRequest, actorID uuid.UUID, actorIsAdmin bool) (*models.Post, error) {
	post, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post.UserID != actorID && !actorIsAdmin {
		return nil, Forbidden("您没有权限修改该帖子")
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, BadRequest("标题不能为空")
		}
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, BadRequest("内容不能为空")
		}
		updates["content"] = *req.Content
	}
	if len(updates) == 0 {
		return post, nil
	}

	if err := s.db.Model(post).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes a post with its comments and reports.
func (s *PostService) Delete(id uuid.UUID, actorID uuid.UUID, actorIsAdmin bool) error {
	post, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if post.UserID != actorID && !actorIsAdmin {
		return Forbidden("您没有权限删除该帖子")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("post_id = ?", id).Delete(&models.PostComment{})
		tx.Where("report_type = ? AND reported_item_id = ?", models.ReportTypePost, id).Delete(&models.Report{})
		if err := tx.Delete(post).Error; err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
		slog.Info("post deleted", "post_id", id.String(), "actor_id", actorID.String())
		return nil
	})
}

func (s *PostService) fillUser(post *models.Post) {
	var user models.User
	if err := s.db.Select("username", "avatar").First(&user, "id = ?", post.UserID).Error; err == nil {
		post.Username = user.Username
		post.UserAvatar = user.Avatar
	}
}
