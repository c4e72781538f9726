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

// AnnouncementService manages admin broadcast notices. Residents only ever
// see published announcements; drafts stay inside the admin panel.
type AnnouncementService struct {
	db *gorm.DB
}

func NewAnnouncementService(db *gorm.DB) *AnnouncementService {
	return &AnnouncementService{db: db}
}

func (s *AnnouncementService) Create(adminID uuid.UUID, req *dto.CreateAnnouncementRequest) (*models.Announcement, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, BadRequest("标题不能为空")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, BadRequest("内容不能为空")
	}

	status := req.Status
	if status == "" {
		status = models.AnnouncementStatusPublished
	}
	if status != models.AnnouncementStatusPublished && status != models.AnnouncementStatusDraft {
		return nil, BadRequest("无效的公告状态: " + status)
	}

	announcement := models.Announcement{
		Title:    title,
		Content:  req.Content,
		AdminID:  adminID,
		IsSticky: req.IsSticky,
		Status:   status,
	}
	if err := s.db.Create(&announcement).Error; err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	slog.Info("announcement created",
		"announcement_id", announcement.ID.String(), "admin_id", adminID.String())
	s.fillAdminName(&announcement)
	return &announcement, nil
}

// GetByID returns one announcement. When publicOnly is set, drafts behave
// as if they do not exist.
func (s *AnnouncementService) GetByID(id uuid.UUID, publicOnly bool) (*models.Announcement, error) {
	var announcement models.Announcement
	if err := s.db.First(&announcement, "id = ?", id).Error; err != nil {
		return nil, NotFound("公告不存在")
	}
	if publicOnly && announcement.Status != models.AnnouncementStatusPublished {
		return nil, NotFound("公告不存在")
	}
	s.fillAdminName(&announcement)
	return &announcement, nil
}

// ListPublic returns published announcements, sticky first, then newest.
func (s *AnnouncementService) ListPublic(page, size int) ([]models.Announcement, int64, error) {
	query := s.db.Model(&models.Announcement{}).
		Where("status = ?", models.AnnouncementStatusPublished)

	var total int64
	query.Count(&total)

	var announcements []models.Announcement
	err := query.Order("is_sticky DESC, created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&announcements).Error
	if err != nil {
		return nil, 0, err
	}
	for i := range announcements {
		s.fillAdminName(&announcements[i])
	}
	return announcements, total, nil
}

// ListAdmin returns every announcement, drafts included, with optional
// keyword and status filters.
func (s *AnnouncementService) ListAdmin(keyword, status string, page, size int) ([]models.Announcement, int64, error) {
	query := s.db.Model(&models.Announcement{})
	if keyword = strings.TrimSpace(keyword); keyword != "" {
		query = query.Where("title LIKE ?", "%"+keyword+"%")
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var announcements []models.Announcement
	err := query.Order("is_sticky DESC, created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&announcements).Error
	if err != nil {
		return nil, 0, err
	}
	for i := range announcements {
		s.fillAdminName(&announcements[i])
	}
	return announcements, total, nil
}

// ListByAdmin returns the announcements one admin has authored.
func (s *AnnouncementService) ListByAdmin(adminID uuid.UUID, page, size int) ([]models.Announcement, int64, error) {
	query := s.db.Model(&models.Announcement{}).Where("admin_id = ?", adminID)

	var total int64
	query.Count(&total)

	var announcements []models.Announcement
	err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&announcements).Error
	if err != nil {
		return nil, 0, err
	}
	for i := range announcements {
		s.fillAdminName(&announcements[i])
	}
	return announcements, total, nil
}

// Update edits an announcement. The author or a sysadmin may update.
func (s *AnnouncementService) Update(id uuid.UUID, req *dto.UpdateAnnouncementRequest, actorID uuid.UUID, actorIsSysadmin bool) (*models.Announcement, error) {
	announcement, err := s.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	if announcement.AdminID != actorID && !actorIsSysadmin {
		return nil, Forbidden("您没有权限修改该公告")
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
	if req.IsSticky != nil {
		updates["is_sticky"] = *req.IsSticky
	}
	if req.Status != nil {
		if *req.Status != models.AnnouncementStatusPublished && *req.Status != models.AnnouncementStatusDraft {
			return nil, BadRequest("无效的公告状态: " + *req.Status)
		}
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		return announcement, nil
	}

	if err := s.db.Model(announcement).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update announcement: %w", err)
	}
	return s.GetByID(id, false)
}

// Delete removes an announcement. The author or a sysadmin may delete.
func (s *AnnouncementService) Delete(id uuid.UUID, actorID uuid.UUID, actorIsSysadmin bool) error {
	announcement, err := s.GetByID(id, false)
	if err != nil {
		return err
	}
	if announcement.AdminID != actorID && !actorIsSysadmin {
		return Forbidden("您没有权限删除该公告")
	}

	if err := s.db.Delete(announcement).Error; err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	slog.Info("announcement deleted", "announcement_id", id.String(), "actor_id", actorID.String())
	return nil
}

func (s *AnnouncementService) fillAdminName(announcement *models.Announcement) {
	var admin models.User
	if err := s.db.Select("username").First(&admin, "id = ?", announcement.AdminID).Error; err == nil {
		announcement.AdminName = admin.Username
	}
}
