package services

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Scoheart/lostfound-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FoundItemService struct {
	db *gorm.DB
}

func NewFoundItemService(db *gorm.DB) *FoundItemService {
	return &FoundItemService{db: db}
}

func (s *FoundItemService) Create(item *models.FoundItem) error {
	if strings.TrimSpace(item.Title) == "" {
		return BadRequest("标题不能为空")
	}
	item.Status = models.FoundStatusPending
	if err := s.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create found item: %w", err)
	}
	slog.Info("found item created", "item_id", item.ID.String(), "user_id", item.UserID.String())
	return nil
}

func (s *FoundItemService) GetByID(id uuid.UUID) (*models.FoundItem, error) {
	var item models.FoundItem
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, NotFound("失物招领不存在")
	}
	s.fillUsername(&item)
	return &item, nil
}

func (s *FoundItemService) List(category, status, keyword string, page, size int) ([]models.FoundItem, int64, error) {
	query := s.db.Model(&models.FoundItem{})
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

	var items []models.FoundItem
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

func (s *FoundItemService) ListByUser(userID uuid.UUID, page, size int) ([]models.FoundItem, int64, error) {
	query := s.db.Model(&models.FoundItem{}).Where("user_id = ?", userID)

	var total int64
	query.Count(&total)

	var items []models.FoundItem
	err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&items).Error
	return items, total, err
}

func (s *FoundItemService) Update(id uuid.UUID, updated *models.FoundItem, actorID uuid.UUID, actorIsAdmin bool) (*models.FoundItem, error) {
	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item.UserID != actorID && !actorIsAdmin {
		return nil, Forbidden("您没有权限修改该失物招领")
	}

	updates := map[string]interface{}{
		"title":              updated.Title,
		"description":        updated.Description,
		"found_date":         updated.FoundDate,
		"found_location":     updated.FoundLocation,
		"storage_location":   updated.StorageLocation,
		"category":           updated.Category,
		"images":             updated.Images,
		"contact_info":       updated.ContactInfo,
		"claim_requirements": updated.ClaimRequirements,
	}
	if err := s.db.Model(item).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update found item: %w", err)
	}
	return s.GetByID(id)
}

// UpdateStatus transitions a notice between pending, claimed and closed.
// "processing" belongs to the claim workflow and cannot be set here.
func (s *FoundItemService) UpdateStatus(id uuid.UUID, status string, actorID uuid.UUID) (*models.FoundItem, error) {
	if status != models.FoundStatusPending && status != models.FoundStatusClaimed && status != models.FoundStatusClosed {
		return nil, BadRequest("无效的状态: " + status)
	}

	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item.UserID != actorID {
		return nil, Forbidden("您没有权限修改该失物招领的状态")
	}

	if err := s.db.Model(item).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	item.Status = status
	return item, nil
}

// Delete removes the notice along with its claim applications, comments and
// reports.
func (s *FoundItemService) Delete(id uuid.UUID, actorID uuid.UUID, actorIsAdmin bool) error {
	item, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if item.UserID != actorID && !actorIsAdmin {
		return Forbidden("您没有权限删除该失物招领")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("found_item_id = ?", id).Delete(&models.ClaimApplication{})
		tx.Where("item_id = ? AND item_type = ?", id, models.ItemKindFound).Delete(&models.ItemComment{})
		tx.Where("report_type = ? AND reported_item_id = ?", models.ReportTypeFoundItem, id).Delete(&models.Report{})
		return tx.Delete(item).Error
	})
}

func (s *FoundItemService) fillUsername(item *models.FoundItem) {
	var user models.User
	if err := s.db.Select("username").First(&user, "id = ?", item.UserID).Error; err == nil {
		item.Username = user.Username
	}
}
