package services

import (
	"testing"
	"time"

	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, NewUserService(db))
	author := createUser(t, db, "author", models.RoleResident)
	reporter := createUser(t, db, "reporter", models.RoleResident)
	item := createLostItem(t, db, author.ID)

	report, err := svc.Create(reporter.ID, &dto.ReportRequest{
		ReportType:     models.ReportTypeLostItem,
		ReportedItemID: item.ID,
		Reason:         "虚假信息",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, report.Status)
	assert.Equal(t, author.ID, report.ReportedUserID)
	assert.Equal(t, "author", report.ReportedUsername)
	assert.Equal(t, item.Title, report.ReportedItemTitle)

	// duplicate report by the same reporter
	_, err = svc.Create(reporter.ID, &dto.ReportRequest{
		ReportType:     models.ReportTypeLostItem,
		ReportedItemID: item.ID,
		Reason:         "再次举报",
	})
	assert.ErrorIs(t, err, ErrConflict)

	// still blocked after the first report has been handled
	admin := createUser(t, db, "admin", models.RoleAdmin)
	_, err = svc.Resolve(report.ID, admin.ID, &dto.ReportResolutionRequest{
		Status:          models.ReportStatusRejected,
		ResolutionNotes: "不成立",
	})
	require.NoError(t, err)
	_, err = svc.Create(reporter.ID, &dto.ReportRequest{
		ReportType:     models.ReportTypeLostItem,
		ReportedItemID: item.ID,
		Reason:         "第三次举报",
	})
	assert.ErrorIs(t, err, ErrConflict)

	// self-report
	_, err = svc.Create(author.ID, &dto.ReportRequest{
		ReportType:     models.ReportTypeLostItem,
		ReportedItemID: item.ID,
		Reason:         "测试",
	})
	assert.ErrorIs(t, err, ErrBadRequest)

	// missing content
	_, err = svc.Create(reporter.ID, &dto.ReportRequest{
		ReportType:     models.ReportTypePost,
		ReportedItemID: item.ID,
		Reason:         "测试",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportResolve_ContentDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, NewUserService(db))
	author := createUser(t, db, "author", models.RoleResident)
	reporter := createUser(t, db, "reporter", models.RoleResident)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	item := createLostItem(t, db, author.ID)

	report, err := svc.Create(reporter.ID, &dto.ReportRequest{
		ReportType:     models.ReportTypeLostItem,
		ReportedItemID: item.ID,
		Reason:         "违规内容",
	})
	require.NoError(t, err)

	resolved, err := svc.Resolve(report.ID, admin.ID, &dto.ReportResolutionRequest{
		Status:          models.ReportStatusResolved,
		ResolutionNotes: "内容已删除",
		ActionType:      models.ReportActionContentDelete,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusResolved, resolved.Status)
	assert.NotNil(t, resolved.ResolvedAt)
	assert.Equal(t, "admin", resolved.ResolvedByAdminUsername)

	var count int64
	db.Model(&models.LostItem{}).Where("id = ?", item.ID).Count(&count)
	assert.Zero(t, count)

	// the deleted content degrades to a placeholder title
	got, err := svc.GetByID(report.ID)
	require.NoError(t, err)
	assert.Contains(t, got.ReportedItemTitle, "已删除")

	// a report can only be resolved once
	_, err = svc.Resolve(report.ID, admin.ID, &dto.ReportResolutionRequest{
		Status: models.ReportStatusResolved,
	})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestReportResolve_UserLock(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	svc := NewReportService(db, users)
	author := createUser(t, db, "author", models.RoleResident)
	reporter := createUser(t, db, "reporter", models.RoleResident)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	item := createLostItem(t, db, author.ID)

	report, err := svc.Create(reporter.ID, &dto.ReportRequest{
		ReportType:     models.ReportTypeLostItem,
		ReportedItemID: item.ID,
		Reason:         "恶意骚扰",
	})
	require.NoError(t, err)

	// lock requires a positive day count
	_, err = svc.Resolve(report.ID, admin.ID, &dto.ReportResolutionRequest{
		Status:     models.ReportStatusResolved,
		ActionType: models.ReportActionUserLock,
	})
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.Resolve(report.ID, admin.ID, &dto.ReportResolutionRequest{
		Status:          models.ReportStatusResolved,
		ResolutionNotes: "锁定7天",
		ActionType:      models.ReportActionUserLock,
		ActionDays:      7,
	})
	require.NoError(t, err)

	locked, err := users.GetByID(author.ID)
	require.NoError(t, err)
	assert.True(t, locked.Locked())
}

func TestReportResolve_UserBan(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	svc := NewReportService(db, users)
	author := createUser(t, db, "author", models.RoleResident)
	reporter := createUser(t, db, "reporter", models.RoleResident)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	item := createLostItem(t, db, author.ID)

	report, err := svc.Create(reporter.ID, &dto.ReportRequest{
		ReportType:     models.ReportTypeLostItem,
		ReportedItemID: item.ID,
		Reason:         "屡次发布违规内容",
	})
	require.NoError(t, err)

	// a ban requires a positive day count
	_, err = svc.Resolve(report.ID, admin.ID, &dto.ReportResolutionRequest{
		Status:     models.ReportStatusResolved,
		ActionType: models.ReportActionUserBan,
	})
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.Resolve(report.ID, admin.ID, &dto.ReportResolutionRequest{
		Status:          models.ReportStatusResolved,
		ResolutionNotes: "封禁30天",
		ActionType:      models.ReportActionUserBan,
		ActionDays:      30,
	})
	require.NoError(t, err)

	// the ban is time-bounded, the account itself stays enabled
	banned, err := users.GetByID(author.ID)
	require.NoError(t, err)
	assert.True(t, banned.Banned())
	assert.True(t, banned.IsEnabled)
	require.NotNil(t, banned.BanEndTime)
	assert.True(t, banned.BanEndTime.After(time.Now()))
}

func TestReportResolve_UserBan_SysadminImmune(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, NewUserService(db))
	sysadmin := createUser(t, db, "root", models.RoleSysadmin)
	reporter := createUser(t, db, "reporter", models.RoleResident)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	item := createLostItem(t, db, sysadmin.ID)

	report, err := svc.Create(reporter.ID, &dto.ReportRequest{
		ReportType:     models.ReportTypeLostItem,
		ReportedItemID: item.ID,
		Reason:         "测试",
	})
	require.NoError(t, err)

	_, err = svc.Resolve(report.ID, admin.ID, &dto.ReportResolutionRequest{
		Status:          models.ReportStatusResolved,
		ResolutionNotes: "封禁",
		ActionType:      models.ReportActionUserBan,
		ActionDays:      7,
	})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestReportResolve_Rejected_NoAction(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, NewUserService(db))
	author := createUser(t, db, "author", models.RoleResident)
	reporter := createUser(t, db, "reporter", models.RoleResident)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	item := createLostItem(t, db, author.ID)

	report, err := svc.Create(reporter.ID, &dto.ReportRequest{
		ReportType:     models.ReportTypeLostItem,
		ReportedItemID: item.ID,
		Reason:         "看不顺眼",
	})
	require.NoError(t, err)

	// rejecting a report never applies the action
	rejected, err := svc.Resolve(report.ID, admin.ID, &dto.ReportResolutionRequest{
		Status:          models.ReportStatusRejected,
		ResolutionNotes: "举报不成立",
		ActionType:      models.ReportActionContentDelete,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusRejected, rejected.Status)

	var count int64
	db.Model(&models.LostItem{}).Where("id = ?", item.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestReportListAdmin_PendingCount(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, NewUserService(db))
	author := createUser(t, db, "author", models.RoleResident)
	reporterA := createUser(t, db, "reporterA", models.RoleResident)
	reporterB := createUser(t, db, "reporterB", models.RoleResident)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	item := createLostItem(t, db, author.ID)

	first, err := svc.Create(reporterA.ID, &dto.ReportRequest{
		ReportType:     models.ReportTypeLostItem,
		ReportedItemID: item.ID,
		Reason:         "举报A",
	})
	require.NoError(t, err)
	_, err = svc.Create(reporterB.ID, &dto.ReportRequest{
		ReportType:     models.ReportTypeLostItem,
		ReportedItemID: item.ID,
		Reason:         "举报B",
	})
	require.NoError(t, err)

	_, err = svc.Resolve(first.ID, admin.ID, &dto.ReportResolutionRequest{
		Status:          models.ReportStatusRejected,
		ResolutionNotes: "不成立",
	})
	require.NoError(t, err)

	page, err := svc.ListAdmin("", "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.TotalItems)
	assert.EqualValues(t, 1, page.PendingReportsCount)

	pending, err := svc.ListAdmin(models.ReportStatusPending, "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending.TotalItems)
}
