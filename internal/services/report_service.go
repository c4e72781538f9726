package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportService handles content reports and their moderation outcomes.
// Resolution actions (content removal, account bans and locks) run in the
// same transaction as the report status change.
type ReportService struct {
	db    *gorm.DB
	users *UserService
}

func NewReportService(db *gorm.DB, users *UserService) *ReportService {
	return &ReportService{db: db, users: users}
}

// Create files a report against a piece of content. The reported user is
// resolved from the content itself so the reporter cannot forge it.
// Self-reporting is rejected, and one reporter may report a given piece of
// content only once, no matter how the earlier report was handled.
func (s *ReportService) Create(reporterID uuid.UUID, req *dto.ReportRequest) (*dto.ReportDto, error) {
	ownerID, err := s.contentOwner(req.ReportType, req.ReportedItemID)
	if err != nil {
		return nil, err
	}
	if ownerID == reporterID {
		return nil, BadRequest("不能举报自己发布的内容")
	}

	var existing int64
	s.db.Model(&models.Report{}).
		Where("reporter_id = ? AND report_type = ? AND reported_item_id = ?",
			reporterID, req.ReportType, req.ReportedItemID).
		Count(&existing)
	if existing > 0 {
		return nil, Conflict("您已举报过该内容，请勿重复举报")
	}

	report := models.Report{
		ReportType:     req.ReportType,
		ReportedItemID: req.ReportedItemID,
		ReporterID:     reporterID,
		ReportedUserID: ownerID,
		Reason:         req.Reason,
		Status:         models.ReportStatusPending,
	}
	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	slog.Info("report filed",
		"report_id", report.ID.String(),
		"report_type", report.ReportType,
		"reported_item_id", report.ReportedItemID.String())
	return s.toDto(&report), nil
}

// contentOwner looks up the author of the reported content by type.
func (s *ReportService) contentOwner(reportType string, itemID uuid.UUID) (uuid.UUID, error) {
	switch reportType {
	case models.ReportTypeLostItem:
		var item models.LostItem
		if err := s.db.Select("user_id").First(&item, "id = ?", itemID).Error; err != nil {
			return uuid.Nil, NotFound("被举报的寻物启事不存在")
		}
		return item.UserID, nil
	case models.ReportTypeFoundItem:
		var item models.FoundItem
		if err := s.db.Select("user_id").First(&item, "id = ?", itemID).Error; err != nil {
			return uuid.Nil, NotFound("被举报的失物招领不存在")
		}
		return item.UserID, nil
	case models.ReportTypeComment:
		var comment models.ItemComment
		if err := s.db.Select("user_id").First(&comment, "id = ?", itemID).Error; err != nil {
			var postComment models.PostComment
			if err := s.db.Select("user_id").First(&postComment, "id = ?", itemID).Error; err != nil {
				return uuid.Nil, NotFound("被举报的留言不存在")
			}
			return postComment.UserID, nil
		}
		return comment.UserID, nil
	case models.ReportTypePost:
		var post models.Post
		if err := s.db.Select("user_id").First(&post, "id = ?", itemID).Error; err != nil {
			return uuid.Nil, NotFound("被举报的帖子不存在")
		}
		return post.UserID, nil
	default:
		return uuid.Nil, BadRequest("无效的举报类型: " + reportType)
	}
}

// Resolve closes a report as RESOLVED or REJECTED and applies the chosen
// action against the reported content or user. Only pending reports can be
// resolved, and a report can only be resolved once.
func (s *ReportService) Resolve(reportID, adminID uuid.UUID, req *dto.ReportResolutionRequest) (*dto.ReportDto, error) {
	if req.Status != models.ReportStatusResolved && req.Status != models.ReportStatusRejected {
		return nil, BadRequest("无效的处理状态: " + req.Status)
	}

	var report models.Report
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&report, "id = ?", reportID).Error; err != nil {
			return NotFound("举报记录不存在")
		}
		if report.Status != models.ReportStatusPending {
			return BadRequest("该举报已经被处理过，当前状态: " + report.Status)
		}

		if req.Status == models.ReportStatusResolved {
			if err := s.applyAction(tx, &report, req); err != nil {
				return err
			}
		}

		now := time.Now()
		err := tx.Model(&report).Updates(map[string]interface{}{
			"status":               req.Status,
			"resolution_notes":     req.ResolutionNotes,
			"resolved_by_admin_id": adminID,
			"resolved_at":          now,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to resolve report: %w", err)
		}
		report.Status = req.Status
		report.ResolutionNotes = req.ResolutionNotes
		report.ResolvedByAdminID = &adminID
		report.ResolvedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("report resolved",
		"report_id", reportID.String(),
		"status", req.Status,
		"action", req.ActionType)
	return s.toDto(&report), nil
}

func (s *ReportService) applyAction(tx *gorm.DB, report *models.Report, req *dto.ReportResolutionRequest) error {
	switch req.ActionType {
	case "", models.ReportActionNone:
		return nil
	case models.ReportActionContentDelete:
		return s.deleteContent(tx, report.ReportType, report.ReportedItemID)
	case models.ReportActionUserWarning:
		// Warnings are recorded in the resolution notes only.
		return nil
	case models.ReportActionUserBan:
		if req.ActionDays <= 0 {
			return BadRequest("封禁天数必须大于0")
		}
		return s.users.Ban(tx, report.ReportedUserID, req.ActionDays, "违反平台规则: "+req.ResolutionNotes)
	case models.ReportActionUserLock:
		if req.ActionDays <= 0 {
			return BadRequest("锁定天数必须大于0")
		}
		return s.users.Lock(tx, report.ReportedUserID, req.ActionDays, "违反平台规则: "+req.ResolutionNotes)
	default:
		return BadRequest("无效的处理动作: " + req.ActionType)
	}
}

// deleteContent removes the reported content and its dependents. Other
// reports against the same content are cleaned up with it.
func (s *ReportService) deleteContent(tx *gorm.DB, reportType string, itemID uuid.UUID) error {
	switch reportType {
	case models.ReportTypeLostItem:
		tx.Where("item_id = ? AND item_type = ?", itemID, models.ItemKindLost).Delete(&models.ItemComment{})
		return tx.Where("id = ?", itemID).Delete(&models.LostItem{}).Error
	case models.ReportTypeFoundItem:
		tx.Where("found_item_id = ?", itemID).Delete(&models.ClaimApplication{})
		tx.Where("item_id = ? AND item_type = ?", itemID, models.ItemKindFound).Delete(&models.ItemComment{})
		return tx.Where("id = ?", itemID).Delete(&models.FoundItem{}).Error
	case models.ReportTypeComment:
		if err := tx.Where("id = ?", itemID).Delete(&models.ItemComment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", itemID).Delete(&models.PostComment{}).Error
	case models.ReportTypePost:
		tx.Where("post_id = ?", itemID).Delete(&models.PostComment{})
		return tx.Where("id = ?", itemID).Delete(&models.Post{}).Error
	default:
		return BadRequest("无效的举报类型: " + reportType)
	}
}

func (s *ReportService) GetByID(reportID uuid.UUID) (*dto.ReportDto, error) {
	var report models.Report
	if err := s.db.First(&report, "id = ?", reportID).Error; err != nil {
		return nil, NotFound("举报记录不存在")
	}
	return s.toDto(&report), nil
}

// ListAdmin returns the moderation queue with an overall pending count.
func (s *ReportService) ListAdmin(status, reportType string, page, size int) (*dto.ReportPageDto, error) {
	query := s.db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if reportType != "" {
		query = query.Where("report_type = ?", reportType)
	}

	var total int64
	query.Count(&total)

	var reports []models.Report
	err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}

	var pendingCount int64
	s.db.Model(&models.Report{}).Where("status = ?", models.ReportStatusPending).Count(&pendingCount)

	dtos := make([]dto.ReportDto, 0, len(reports))
	for i := range reports {
		dtos = append(dtos, *s.toDto(&reports[i]))
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return &dto.ReportPageDto{
		Reports:             dtos,
		CurrentPage:         page,
		PageSize:            size,
		TotalItems:          total,
		TotalPages:          totalPages,
		PendingReportsCount: pendingCount,
	}, nil
}

// ListByReporter returns the reports a user has filed.
func (s *ReportService) ListByReporter(reporterID uuid.UUID, page, size int) ([]dto.ReportDto, int64, error) {
	query := s.db.Model(&models.Report{}).Where("reporter_id = ?", reporterID)

	var total int64
	query.Count(&total)

	var reports []models.Report
	err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]dto.ReportDto, 0, len(reports))
	for i := range reports {
		dtos = append(dtos, *s.toDto(&reports[i]))
	}
	return dtos, total, nil
}

// ListByItem returns all reports against one piece of content.
func (s *ReportService) ListByItem(reportType string, itemID uuid.UUID) ([]dto.ReportDto, error) {
	var reports []models.Report
	err := s.db.Where("report_type = ? AND reported_item_id = ?", reportType, itemID).
		Order("created_at DESC").Find(&reports).Error
	if err != nil {
		return nil, err
	}

	dtos := make([]dto.ReportDto, 0, len(reports))
	for i := range reports {
		dtos = append(dtos, *s.toDto(&reports[i]))
	}
	return dtos, nil
}

// toDto enriches a report with usernames and a content title snapshot.
// Lookups are best-effort; deleted content degrades to a placeholder title.
func (s *ReportService) toDto(report *models.Report) *dto.ReportDto {
	d := dto.ReportDto{
		ID:                report.ID,
		ReportType:        report.ReportType,
		ReportedItemID:    report.ReportedItemID,
		ReporterID:        report.ReporterID,
		ReportedUserID:    report.ReportedUserID,
		Reason:            report.Reason,
		Status:            report.Status,
		ResolutionNotes:   report.ResolutionNotes,
		ResolvedByAdminID: report.ResolvedByAdminID,
		ResolvedAt:        report.ResolvedAt,
		CreatedAt:         report.CreatedAt,
	}

	var reporter models.User
	if err := s.db.Select("username").First(&reporter, "id = ?", report.ReporterID).Error; err == nil {
		d.ReporterUsername = reporter.Username
	}
	var reported models.User
	if err := s.db.Select("username").First(&reported, "id = ?", report.ReportedUserID).Error; err == nil {
		d.ReportedUsername = reported.Username
	}
	if report.ResolvedByAdminID != nil {
		var admin models.User
		if err := s.db.Select("username").First(&admin, "id = ?", *report.ResolvedByAdminID).Error; err == nil {
			d.ResolvedByAdminUsername = admin.Username
		}
	}
	d.ReportedItemTitle = s.contentTitle(report.ReportType, report.ReportedItemID)

	return &d
}

func (s *ReportService) contentTitle(reportType string, itemID uuid.UUID) string {
	switch reportType {
	case models.ReportTypeLostItem:
		var item models.LostItem
		if err := s.db.Select("title").First(&item, "id = ?", itemID).Error; err == nil {
			return item.Title
		}
		return "寻物启事ID: " + itemID.String() + " (已删除)"
	case models.ReportTypeFoundItem:
		var item models.FoundItem
		if err := s.db.Select("title").First(&item, "id = ?", itemID).Error; err == nil {
			return item.Title
		}
		return "失物招领ID: " + itemID.String() + " (已删除)"
	case models.ReportTypeComment:
		var comment models.ItemComment
		if err := s.db.Select("content").First(&comment, "id = ?", itemID).Error; err == nil {
			return truncate(comment.Content, 50)
		}
		var postComment models.PostComment
		if err := s.db.Select("content").First(&postComment, "id = ?", itemID).Error; err == nil {
			return truncate(postComment.Content, 50)
		}
		return "留言ID: " + itemID.String() + " (已删除)"
	case models.ReportTypePost:
		var post models.Post
		if err := s.db.Select("title").First(&post, "id = ?", itemID).Error; err == nil {
			return post.Title
		}
		return "帖子ID: " + itemID.String() + " (已删除)"
	}
	return ""
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
