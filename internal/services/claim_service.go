package services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClaimService drives the claim workflow state machine:
// found item pending → processing → {claimed | pending},
// application pending → {approved | rejected}.
type ClaimService struct {
	db *gorm.DB
}

func NewClaimService(db *gorm.DB) *ClaimService {
	return &ClaimService{db: db}
}

// Apply submits a claim for a found item. The item must still be pending,
// the applicant must not be the item's owner, and the applicant must not
// already hold an active (pending or approved) application for this item.
// A rejected applicant may apply again. Creating the application and moving
// the item to processing happen in one transaction.
func (s *ClaimService) Apply(foundItemID, applicantID uuid.UUID, description string) (*dto.ClaimApplicationDto, error) {
	if len(strings.TrimSpace(description)) < 10 {
		return nil, BadRequest("申请说明不能少于10个字符")
	}

	var application models.ClaimApplication
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item models.FoundItem
		if err := tx.First(&item, "id = ?", foundItemID).Error; err != nil {
			return NotFound("失物招领不存在")
		}
		if item.Status != models.FoundStatusPending {
			return BadRequest("该失物招领当前不可认领，状态: " + item.Status)
		}
		if item.UserID == applicantID {
			return BadRequest("不能认领自己发布的失物招领")
		}

		var active int64
		tx.Model(&models.ClaimApplication{}).
			Where("found_item_id = ? AND applicant_id = ? AND status IN ?",
				foundItemID, applicantID, models.ActiveClaimStatuses).
			Count(&active)
		if active > 0 {
			return Conflict("您已有未处理或已批准的认领申请，请勿重复申请")
		}

		application = models.ClaimApplication{
			FoundItemID: foundItemID,
			ApplicantID: applicantID,
			Description: description,
			Status:      models.ClaimStatusPending,
		}
		if err := tx.Create(&application).Error; err != nil {
			return fmt.Errorf("failed to create claim application: %w", err)
		}

		return tx.Model(&item).Update("status", models.FoundStatusProcessing).Error
	})
	if err != nil {
		return nil, err
	}

	slog.Info("claim application submitted",
		"application_id", application.ID.String(),
		"found_item_id", foundItemID.String(),
		"applicant_id", applicantID.String())
	return s.toDto(&application)
}

// Approve accepts a pending application. Only the found item's owner may
// approve; the application goes to approved and the item to claimed in one
// transaction.
func (s *ClaimService) Approve(applicationID, actorID uuid.UUID) (*dto.ClaimApplicationDto, error) {
	return s.process(applicationID, actorID, models.ClaimStatusApproved, models.FoundStatusClaimed)
}

// Reject declines a pending application and returns the item to pending so
// others (or the same applicant) can apply again.
func (s *ClaimService) Reject(applicationID, actorID uuid.UUID) (*dto.ClaimApplicationDto, error) {
	return s.process(applicationID, actorID, models.ClaimStatusRejected, models.FoundStatusPending)
}

func (s *ClaimService) process(applicationID, actorID uuid.UUID, appStatus, itemStatus string) (*dto.ClaimApplicationDto, error) {
	var application models.ClaimApplication
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&application, "id = ?", applicationID).Error; err != nil {
			return NotFound("认领申请不存在")
		}

		var item models.FoundItem
		if err := tx.First(&item, "id = ?", application.FoundItemID).Error; err != nil {
			return NotFound("失物招领不存在")
		}
		if item.UserID != actorID {
			return Forbidden("您没有权限处理该认领申请")
		}
		if application.Status != models.ClaimStatusPending {
			return BadRequest("该认领申请已经被处理过，当前状态: " + application.Status)
		}
		if item.Status != models.FoundStatusProcessing {
			return BadRequest("该失物招领状态不是'认领中'，当前状态: " + item.Status)
		}

		now := time.Now()
		err := tx.Model(&application).Updates(map[string]interface{}{
			"status":       appStatus,
			"processed_at": now,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to update claim application: %w", err)
		}
		application.Status = appStatus
		application.ProcessedAt = &now

		return tx.Model(&item).Update("status", itemStatus).Error
	})
	if err != nil {
		return nil, err
	}

	slog.Info("claim application processed",
		"application_id", applicationID.String(), "status", appStatus)
	return s.toDto(&application)
}

func (s *ClaimService) GetByID(applicationID uuid.UUID) (*dto.ClaimApplicationDto, error) {
	var application models.ClaimApplication
	if err := s.db.First(&application, "id = ?", applicationID).Error; err != nil {
		return nil, NotFound("认领申请不存在")
	}
	return s.toDto(&application)
}

// ListByApplicant returns the applications a user has submitted.
func (s *ClaimService) ListByApplicant(userID uuid.UUID, status string, page, size int) ([]dto.ClaimApplicationDto, int64, error) {
	query := s.db.Model(&models.ClaimApplication{}).Where("applicant_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	return s.listPage(query, page, size)
}

// ListForOwner returns the applications against a user's found items.
func (s *ClaimService) ListForOwner(ownerID uuid.UUID, status string, page, size int) ([]dto.ClaimApplicationDto, int64, error) {
	query := s.db.Model(&models.ClaimApplication{}).
		Where("found_item_id IN (?)", s.db.Model(&models.FoundItem{}).Select("id").Where("user_id = ?", ownerID))
	if status != "" {
		query = query.Where("status = ?", status)
	}
	return s.listPage(query, page, size)
}

// ListByFoundItem returns one item's applications. Only the item's owner and
// admins may list them, even when the item has none yet.
func (s *ClaimService) ListByFoundItem(foundItemID, callerID uuid.UUID, isAdmin bool, page, size int) ([]dto.ClaimApplicationDto, int64, error) {
	var item models.FoundItem
	if err := s.db.Select("user_id").First(&item, "id = ?", foundItemID).Error; err != nil {
		return nil, 0, NotFound("失物招领不存在")
	}
	if !isAdmin && item.UserID != callerID {
		return nil, 0, Forbidden("您没有权限查看该失物招领的认领申请")
	}

	query := s.db.Model(&models.ClaimApplication{}).Where("found_item_id = ?", foundItemID)
	return s.listPage(query, page, size)
}

// ListAll is the admin view over every application, with optional filters.
func (s *ClaimService) ListAll(filter *dto.ClaimListFilter, page, size int) ([]dto.ClaimApplicationDto, int64, error) {
	query := s.db.Model(&models.ClaimApplication{})
	if filter != nil {
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.StartDate != nil {
			query = query.Where("claim_applications.created_at >= ?", *filter.StartDate)
		}
		if filter.EndDate != nil {
			query = query.Where("claim_applications.created_at <= ?", *filter.EndDate)
		}
		if filter.ItemTitle != "" {
			query = query.Where("found_item_id IN (?)",
				s.db.Model(&models.FoundItem{}).Select("id").Where("title LIKE ?", "%"+filter.ItemTitle+"%"))
		}
		if filter.ApplicantName != "" {
			query = query.Where("applicant_id IN (?)",
				s.db.Model(&models.User{}).Select("id").Where("username LIKE ?", "%"+filter.ApplicantName+"%"))
		}
	}
	return s.listPage(query, page, size)
}

// Delete removes an application (admin). Deleting an approved application
// reverts its found item from claimed back to pending in the same
// transaction, so the item becomes claimable again.
func (s *ClaimService) Delete(applicationID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var application models.ClaimApplication
		if err := tx.First(&application, "id = ?", applicationID).Error; err != nil {
			return NotFound("认领申请不存在")
		}

		if application.Status == models.ClaimStatusApproved {
			var item models.FoundItem
			if err := tx.First(&item, "id = ?", application.FoundItemID).Error; err == nil {
				if item.Status == models.FoundStatusClaimed {
					if err := tx.Model(&item).Update("status", models.FoundStatusPending).Error; err != nil {
						return fmt.Errorf("failed to revert found item status: %w", err)
					}
				}
			}
		}

		if err := tx.Delete(&application).Error; err != nil {
			return fmt.Errorf("failed to delete claim application: %w", err)
		}
		slog.Info("claim application deleted", "application_id", applicationID.String())
		return nil
	})
}

func (s *ClaimService) listPage(query *gorm.DB, page, size int) ([]dto.ClaimApplicationDto, int64, error) {
	var total int64
	query.Count(&total)

	var applications []models.ClaimApplication
	err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&applications).Error
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]dto.ClaimApplicationDto, 0, len(applications))
	for i := range applications {
		d, err := s.toDto(&applications[i])
		if err != nil {
			return nil, 0, err
		}
		dtos = append(dtos, *d)
	}
	return dtos, total, nil
}

// toDto enriches an application with applicant, owner and item context.
// Lookups are best-effort so a deleted item does not break listings.
func (s *ClaimService) toDto(application *models.ClaimApplication) (*dto.ClaimApplicationDto, error) {
	d := dto.ClaimApplicationDto{
		ID:          application.ID,
		FoundItemID: application.FoundItemID,
		ApplicantID: application.ApplicantID,
		Description: application.Description,
		Status:      application.Status,
		CreatedAt:   application.CreatedAt,
		UpdatedAt:   application.UpdatedAt,
		ProcessedAt: application.ProcessedAt,
	}

	var item models.FoundItem
	if err := s.db.First(&item, "id = ?", application.FoundItemID).Error; err == nil {
		d.FoundItemTitle = item.Title
		d.OwnerID = item.UserID
		if len(item.Images) > 0 {
			d.FoundItemImage = item.Images[0]
		}
		var owner models.User
		if err := s.db.Select("username").First(&owner, "id = ?", item.UserID).Error; err == nil {
			d.OwnerName = owner.Username
		}
	}

	var applicant models.User
	if err := s.db.Select("username", "phone").First(&applicant, "id = ?", application.ApplicantID).Error; err == nil {
		d.ApplicantName = applicant.Username
		d.ApplicantContact = applicant.Phone
	}

	return &d, nil
}
