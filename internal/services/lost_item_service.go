package services

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Scoheart/lostfound-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LostItemService struct {
	db *gorm.DB
}

func NewLostItemService(db *gorm.DB) *LostItemService {
	return &LostItemService{db: db}
}

func (s *LostItemService) Create(item *models.LostItem) error {
	if strings.TrimSpace(item.Title) == "" {
		return BadRequest("标题不能为空")
	}
	item.Status = models.LostStatusPending
	if err := s.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create lost item: %w", err)
	}
	slog.Info("lost item created", "item_id", item.ID.String(), "user_id", item.UserID.String())
	return nil
}

func (s *LostItemService) GetByID(id uuid.UUID) (*models.LostItem, error) {
	var item models.LostItem
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, NotFound("寻物启事不存在")
	}
	s.fillUsername(&item)
	return &item, nil
}

// List returns a filtered page ordered newest first.
func (s *LostItemService) List(category, status, keyword string, page, size int) ([]models.LostItem, int64, error) {
	query := s.db.Model(&models.LostItem{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if keyword = strings.TrimSpace(keyword); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	var items []models.LostItem
	err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		s.fillUsername(&items[i])
	}
	return items, total, nil
}

func (s *LostItemService) ListByUser(userID uuid.UUID, page, size int) ([]models.LostItem, int64, error) {
	query := s.db.Model(&models.LostItem{}).Where("user_id = ?", userID)

	var total int64
	query.Count(&total)

	var items []models.LostItem
	err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&items).Error
	return items, total, err
}

// Update replaces the mutable fields. Only the owner or an admin may update.
func (s *LostItemService) Update(id uuid.UUID, updated *models.LostItem, actorID uuid.UUID, actorIsAdmin bool) (*models.LostItem, error) {
	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item.UserID != actorID && !actorIsAdmin {
		return nil, Forbidden("您没有权限修改该寻物启事")
	}

	updates := map[string]interface{}{
		"title":         updated.Title,
		"description":   updated.Description,
		"lost_date":     updated.LostDate,
		"lost_location": updated.LostLocation,
		"category":      updated.Category,
		"images":        updated.Images,
		"reward":        updated.Reward,
		"contact_info":  updated.ContactInfo,
	}
	if err := s.db.Model(item).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update lost item: %w", err)
	}
	return s.GetByID(id)
}

// UpdateStatus transitions a notice between pending, found and closed.
// Only the owner may change the status.
func (s *LostItemService) UpdateStatus(id uuid.UUID, status string, actorID uuid.UUID) (*models.LostItem, error) {
	if status != models.LostStatusPending && status != models.LostStatusFound && status != models.LostStatusClosed {
		return nil, BadRequest("无效的状态: " + status)
	}

	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item.UserID != actorID {
		return nil, Forbidden("您没有权限修改该寻物启事的状态")
	}

	if err := s.db.Model(item).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	item.Status = status
	return item, nil
}

// Delete removes the notice along with its comments and reports.
func (s *LostItemService) Delete(id uuid.UUID, actorID uuid.UUID, actorIsAdmin bool) error {
	item, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if item.UserID != actorID && !actorIsAdmin {
		return Forbidden("您没有权限删除该寻物启事")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("item_id = ? AND item_type = ?", id, models.ItemKindLost).Delete(&models.ItemComment{})
		tx.Where("report_type = ? AND reported_item_id = ?", models.ReportTypeLostItem, id).Delete(&models.Report{})
		return tx.Delete(item).Error
	})
}

func (s *LostItemService) fillUsername(item *models.LostItem) {
	var user models.User
	if err := s.db.Select("username").First(&user, "id = ?", item.UserID).Error; err == nil {
		item.Username = user.Username
	}
}
